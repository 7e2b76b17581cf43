package leave

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type LeaveTypeRepository interface {
	GetByID(ctx context.Context, id string) (LeaveType, error)
	GetByCodes(ctx context.Context, codes []string) ([]LeaveType, error)
	List(ctx context.Context, activeOnly bool) ([]LeaveType, error)
	Create(ctx context.Context, leaveType LeaveType) (LeaveType, error)
}

// ApplicationQuery filters an employee's applications. Nil fields are ignored.
type ApplicationQuery struct {
	EmployeeID  string
	Status      *Status
	LeaveTypeID *string
	Year        *int
	Limit       int
	Offset      int
}

type LeaveApplicationRepository interface {
	Create(ctx context.Context, application LeaveApplication) (LeaveApplication, error)
	// GetByIDForEmployee returns ErrLeaveApplicationNotFound unless the
	// application exists and belongs to employeeID.
	GetByIDForEmployee(ctx context.Context, id, employeeID string) (LeaveApplication, error)
	// HasOverlap reports whether a live (pending or approved) application of
	// the employee intersects [start, end].
	HasOverlap(ctx context.Context, employeeID string, start, end time.Time) (bool, error)
	// DeletePending removes a pending application. ErrLeaveApplicationNotFound
	// when no pending row with that id exists.
	DeletePending(ctx context.Context, id string) error
	List(ctx context.Context, q ApplicationQuery) ([]LeaveApplication, int64, error)
}

type AttachmentRepository interface {
	Create(ctx context.Context, attachment Attachment) (Attachment, error)
	ListByApplication(ctx context.Context, applicationID string) ([]Attachment, error)
}

type StatusHistoryRepository interface {
	Record(ctx context.Context, change StatusChange) error
	ListByApplication(ctx context.Context, applicationID string) ([]StatusChange, error)
}

type LeaveBalanceRepository interface {
	// Apply adds delta to counter in a single statement, creating the row
	// with allocated when it does not exist yet. Counters are floored at zero.
	Apply(ctx context.Context, key BalanceKey, counter BalanceCounter, delta, allocated decimal.Decimal) (LeaveBalance, error)
	ListByEmployee(ctx context.Context, employeeID string, year int) ([]LeaveBalance, error)
}
