package report

import (
	"context"
	"sort"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/shopspring/decimal"
)

// fakeReportRepo behaves like the store: range, status and employee are
// applied, newest date first.
type fakeReportRepo struct {
	records []attendance.AttendanceRecord
	calls   int
	err     error
}

func (f *fakeReportRepo) FindAttendance(ctx context.Context, q attendance.Query) ([]attendance.AttendanceRecord, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	var out []attendance.AttendanceRecord
	for _, r := range f.records {
		if q.Start != nil && r.Date.Before(*q.Start) {
			continue
		}
		if q.End != nil && r.Date.After(*q.End) {
			continue
		}
		if q.Status != nil && r.Status != *q.Status {
			continue
		}
		if q.EmployeeID != nil && r.EmployeeID != *q.EmployeeID {
			continue
		}
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func at(date string, hh, mm int) *time.Time {
	t := day(date).Add(time.Duration(hh)*time.Hour + time.Duration(mm)*time.Minute)
	return &t
}

func strPtr(s string) *string { return &s }

var (
	empAyu  = &employee.Employee{ID: "11111111-1111-1111-1111-111111111111", EmployeeCode: "EMP-001", Name: "Ayu", Department: strPtr("Engineering")}
	empBima = &employee.Employee{ID: "22222222-2222-2222-2222-222222222222", EmployeeCode: "EMP-002", Name: "Bima, Jr.", Department: strPtr("Finance")}
)

func record(emp *employee.Employee, date string, in, out *time.Time, status attendance.Status) attendance.AttendanceRecord {
	rec := attendance.AttendanceRecord{
		ID:               "rec-" + date + "-" + string(status),
		Date:             day(date),
		CheckInTime:      in,
		CheckOutTime:     out,
		CheckInLocation:  attendance.NewPoint(-6.2, 106.816666),
		CheckOutLocation: attendance.UnsetPoint(),
		Status:           status,
		WorkingHours:     decimal.Zero,
		Employee:         emp,
	}
	if emp != nil {
		rec.EmployeeID = emp.ID
	} else {
		rec.EmployeeID = "99999999-9999-9999-9999-999999999999"
	}
	if in != nil && out != nil {
		rec.WorkingHours = attendance.HoursBetween(*in, *out)
	}
	return rec
}

// sampleRecords covers every status, a missing check-out and an employee
// that no longer resolves.
func sampleRecords() []attendance.AttendanceRecord {
	return []attendance.AttendanceRecord{
		record(empAyu, "2024-03-01", at("2024-03-01", 9, 0), at("2024-03-01", 17, 30), attendance.StatusPresent),
		record(empBima, "2024-03-01", at("2024-03-01", 9, 40), at("2024-03-01", 17, 0), attendance.StatusLate),
		record(empAyu, "2024-03-02", at("2024-03-02", 9, 0), at("2024-03-02", 13, 0), attendance.StatusHalfDay),
		record(empBima, "2024-03-02", nil, nil, attendance.StatusAbsent),
		record(empAyu, "2024-03-03", at("2024-03-03", 8, 55), nil, attendance.StatusPresent),
		record(nil, "2024-03-03", at("2024-03-03", 10, 0), at("2024-03-03", 18, 20), attendance.StatusLate),
	}
}
