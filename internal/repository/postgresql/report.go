package postgresql

import (
	"context"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
)

type reportRepositoryImpl struct {
	db *database.DB
}

func NewReportRepository(db *database.DB) report.ReportRepository {
	return &reportRepositoryImpl{db: db}
}

// FindAttendance implements report.ReportRepository. Every matching row is
// returned with its employee joined in.
func (r *reportRepositoryImpl) FindAttendance(ctx context.Context, q attendance.Query) ([]attendance.AttendanceRecord, error) {
	q.Limit, q.Offset = 0, 0
	return findAttendance(ctx, GetQuerier(ctx, r.db), q)
}
