package attendance

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
	StatusLate    Status = "late"
	StatusHalfDay Status = "half day"
)

var Statuses = []Status{StatusPresent, StatusAbsent, StatusLate, StatusHalfDay}

func (s Status) IsValid() bool {
	switch s {
	case StatusPresent, StatusAbsent, StatusLate, StatusHalfDay:
		return true
	}
	return false
}

// GeoPoint is a GeoJSON point. Coordinates are ordered [longitude, latitude].
type GeoPoint struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

// UnsetPoint is stored as the check-out location until check-out happens.
func UnsetPoint() GeoPoint {
	return GeoPoint{Type: "Point", Coordinates: []float64{0, 0}}
}

func NewPoint(lat, lng float64) GeoPoint {
	return GeoPoint{Type: "Point", Coordinates: []float64{lng, lat}}
}

func (p GeoPoint) Validate() error {
	if p.Type != "Point" {
		return fmt.Errorf("%w: type must be Point", ErrInvalidLocation)
	}
	if len(p.Coordinates) != 2 {
		return fmt.Errorf("%w: coordinates must be [longitude, latitude]", ErrInvalidLocation)
	}
	if lng := p.Coordinates[0]; lng < -180 || lng > 180 {
		return fmt.Errorf("%w: longitude must be between -180 and 180", ErrInvalidLocation)
	}
	if lat := p.Coordinates[1]; lat < -90 || lat > 90 {
		return fmt.Errorf("%w: latitude must be between -90 and 90", ErrInvalidLocation)
	}
	return nil
}

func (p GeoPoint) Longitude() float64 {
	if len(p.Coordinates) != 2 {
		return 0
	}
	return p.Coordinates[0]
}

func (p GeoPoint) Latitude() float64 {
	if len(p.Coordinates) != 2 {
		return 0
	}
	return p.Coordinates[1]
}

// DeviceInfo is whatever the client reports about the device. Keys are not
// fixed; values may be scalars or nested objects.
type DeviceInfo map[string]any

type AttendanceRecord struct {
	ID               string
	EmployeeID       string
	Date             time.Time
	CheckInTime      *time.Time
	CheckOutTime     *time.Time
	CheckInLocation  GeoPoint
	CheckOutLocation GeoPoint
	CheckInDevice    DeviceInfo
	CheckOutDevice   DeviceInfo
	Status           Status
	WorkingHours     decimal.Decimal
	CreatedAt        time.Time
	UpdatedAt        time.Time

	// Populated from employees; nil when the reference does not resolve.
	Employee *employee.Employee
}

// HoursBetween returns the elapsed hours from in to out rounded to two
// decimals, or zero when out is not after in.
func HoursBetween(in, out time.Time) decimal.Decimal {
	if !out.After(in) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(out.Sub(in).Hours()).Round(2)
}
