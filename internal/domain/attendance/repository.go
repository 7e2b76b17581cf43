package attendance

import (
	"context"
	"time"
)

// Query narrows attendance lookups. Nil fields are not filtered on; a zero
// Limit returns every match.
type Query struct {
	EmployeeID *string
	Start      *time.Time
	End        *time.Time
	Status     *Status
	Limit      int
	Offset     int
}

type AttendanceRepository interface {
	Create(ctx context.Context, record AttendanceRecord) (AttendanceRecord, error)
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (AttendanceRecord, error)
	UpdateCheckOut(ctx context.Context, record AttendanceRecord) (AttendanceRecord, error)
	Find(ctx context.Context, q Query) ([]AttendanceRecord, error)
	Count(ctx context.Context, q Query) (int64, error)
	// MarkAbsent inserts an absent record for every employee that has no
	// record on date and is not on approved leave that day.
	MarkAbsent(ctx context.Context, date time.Time) (int64, error)
}
