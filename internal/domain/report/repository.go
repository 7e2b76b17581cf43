package report

import (
	"context"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
)

// ReportRepository defines the interface for report data access
type ReportRepository interface {
	// FindAttendance returns every record matching q with the employee
	// populated, newest date first.
	FindAttendance(ctx context.Context, q attendance.Query) ([]attendance.AttendanceRecord, error)
}
