package attendance

import (
	"context"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/auth"
)

type AttendanceService interface {
	CheckIn(ctx context.Context, caller auth.Caller, req CheckInRequest) (AttendanceRecord, error)
	CheckOut(ctx context.Context, caller auth.Caller, req CheckOutRequest) (AttendanceRecord, error)
	History(ctx context.Context, caller auth.Caller, filter HistoryFilter) (ListResponse, error)
}
