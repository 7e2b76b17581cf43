package attendance

import (
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

// NotAvailable is rendered for clock times and employee fields that are absent.
const NotAvailable = "N/A"

type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// RecordView is the presentation shape shared by history listings and reports.
type RecordView struct {
	Date         string   `json:"date"`
	Day          string   `json:"day"`
	CheckInTime  string   `json:"check_in_time"`
	CheckOutTime string   `json:"check_out_time"`
	WorkingHours string   `json:"working_hours"`
	Status       Status   `json:"status"`
	EmployeeID   string   `json:"employee_id"`
	Name         string   `json:"name"`
	Department   string   `json:"department"`
	Location     Location `json:"location"`
}

// NewRecordView derives display fields from a record. Clock times are shown
// in tz; the calendar date is used as stored.
func NewRecordView(rec AttendanceRecord, tz *time.Location) RecordView {
	v := RecordView{
		Date:         rec.Date.Format(validator.DateLayout),
		Day:          rec.Date.Weekday().String(),
		CheckInTime:  clock(rec.CheckInTime, tz),
		CheckOutTime: clock(rec.CheckOutTime, tz),
		WorkingHours: rec.WorkingHours.StringFixed(2),
		Status:       rec.Status,
		EmployeeID:   NotAvailable,
		Name:         NotAvailable,
		Department:   NotAvailable,
		Location: Location{
			Lat: rec.CheckInLocation.Latitude(),
			Lng: rec.CheckInLocation.Longitude(),
		},
	}
	if rec.Employee != nil {
		v.EmployeeID = rec.Employee.EmployeeCode
		v.Name = rec.Employee.Name
		if d := rec.Employee.DepartmentName(); d != "" {
			v.Department = d
		}
	}
	return v
}

func clock(t *time.Time, tz *time.Location) string {
	if t == nil {
		return NotAvailable
	}
	if tz == nil {
		tz = time.UTC
	}
	return t.In(tz).Format("15:04")
}
