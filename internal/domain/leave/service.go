package leave

import (
	"context"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/auth"
)

type LeaveService interface {
	// Submit may return a created application together with an error wrapping
	// ErrAttachmentNotStored; the application is persisted in that case.
	Submit(ctx context.Context, caller auth.Caller, req SubmitLeaveRequest) (LeaveApplication, error)
	Cancel(ctx context.Context, caller auth.Caller, applicationID string) (CancelResponse, error)
	History(ctx context.Context, caller auth.Caller, filter HistoryFilter) (ListResponse, error)
	Get(ctx context.Context, caller auth.Caller, applicationID string) (LeaveApplication, error)
	Balances(ctx context.Context, caller auth.Caller, year int) ([]LeaveBalance, error)

	CreateLeaveType(ctx context.Context, req CreateLeaveTypeRequest) (LeaveType, error)
	ListLeaveTypes(ctx context.Context, includeInactive bool) ([]LeaveType, error)
}
