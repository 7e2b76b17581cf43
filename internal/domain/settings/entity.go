package settings

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/utils"
	"github.com/shopspring/decimal"
)

// AttendanceSettings is the attendance policy for one department, or the
// company-wide default when Department is nil.
type AttendanceSettings struct {
	ID                  string
	Department          *string
	WorkStartTime       string // HH:MM
	WorkEndTime         string // HH:MM
	GracePeriodMinutes  int
	HalfDayHours        decimal.Decimal
	FullDayHours        decimal.Decimal
	GeoFencingEnabled   bool
	OfficeLocation      *attendance.GeoPoint
	AllowedRadiusMeters decimal.Decimal
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Default is used when neither a department nor a company-wide row exists.
func Default() AttendanceSettings {
	return AttendanceSettings{
		WorkStartTime:       "09:00",
		WorkEndTime:         "17:00",
		GracePeriodMinutes:  15,
		HalfDayHours:        decimal.NewFromInt(4),
		FullDayHours:        decimal.NewFromInt(8),
		AllowedRadiusMeters: decimal.NewFromInt(100),
	}
}

// ClassifyCheckIn reports late when the check-in happens after the work
// start plus the grace period on the same local day.
func (s AttendanceSettings) ClassifyCheckIn(checkIn time.Time, tz *time.Location) (attendance.Status, error) {
	local := checkIn.In(tz)
	start, err := time.ParseInLocation("15:04", s.WorkStartTime, tz)
	if err != nil {
		return "", fmt.Errorf("invalid work start time %q: %w", s.WorkStartTime, err)
	}
	deadline := time.Date(local.Year(), local.Month(), local.Day(), start.Hour(), start.Minute(), 0, 0, tz).
		Add(time.Duration(s.GracePeriodMinutes) * time.Minute)
	if local.After(deadline) {
		return attendance.StatusLate, nil
	}
	return attendance.StatusPresent, nil
}

// ClassifyCheckOut grades a finished day by hours worked. At or above
// FullDayHours the check-in status stands, late included. Between
// HalfDayHours and FullDayHours the day is a half day. Below HalfDayHours
// the day counts as absent.
func (s AttendanceSettings) ClassifyCheckOut(previous attendance.Status, worked decimal.Decimal) attendance.Status {
	if previous == attendance.StatusAbsent || s.FullDayHours.IsZero() {
		return previous
	}
	switch {
	case !worked.LessThan(s.FullDayHours):
		return previous
	case !worked.LessThan(s.HalfDayHours):
		return attendance.StatusHalfDay
	default:
		return attendance.StatusAbsent
	}
}

// WithinFence reports whether p lies inside the configured geo-fence. It is
// always true when fencing is off or no office location is set.
func (s AttendanceSettings) WithinFence(p attendance.GeoPoint) bool {
	if !s.GeoFencingEnabled || s.OfficeLocation == nil {
		return true
	}
	d := utils.CalculateHaversineDistance(
		s.OfficeLocation.Latitude(), s.OfficeLocation.Longitude(),
		p.Latitude(), p.Longitude(),
	)
	return decimal.NewFromFloat(d).LessThanOrEqual(s.AllowedRadiusMeters)
}
