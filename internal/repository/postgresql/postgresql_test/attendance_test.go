package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-backend-go/internal/repository/postgresql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttendanceRepository_MarkAbsent(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()

	present, err := setup.CreateEmployee(ctx, "EMP-001", "Ayu", nil)
	require.NoError(t, err)
	onLeave, err := setup.CreateEmployee(ctx, "EMP-002", "Budi", nil)
	require.NoError(t, err)
	missing, err := setup.CreateEmployee(ctx, "EMP-003", "Citra", nil)
	require.NoError(t, err)

	repo := postgresql.NewAttendanceRepository(setup.DB)
	checkIn := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	_, err = repo.Create(ctx, attendance.AttendanceRecord{
		EmployeeID:       present,
		Date:             date(10),
		CheckInTime:      &checkIn,
		CheckInLocation:  attendance.NewPoint(-6.2, 106.8),
		CheckOutLocation: attendance.UnsetPoint(),
		Status:           attendance.StatusPresent,
		WorkingHours:     decimal.Zero,
	})
	require.NoError(t, err)

	lt, err := postgresql.NewLeaveTypeRepository(setup.DB).Create(ctx, leave.LeaveType{
		Name: "Casual Leave", Code: "CL", AnnualQuota: decimal.NewFromInt(8), RequiresApproval: true, IsActive: true,
	})
	require.NoError(t, err)
	_, err = postgresql.NewLeaveApplicationRepository(setup.DB).Create(ctx, leave.LeaveApplication{
		EmployeeID:  onLeave,
		LeaveTypeID: lt.ID,
		StartDate:   date(9),
		EndDate:     date(11),
		Duration:    leave.InclusiveDays(date(9), date(11)),
		Reason:      "family",
		Status:      leave.StatusApproved,
		AppliedOn:   time.Now(),
	})
	require.NoError(t, err)

	marked, err := repo.MarkAbsent(ctx, date(10))
	require.NoError(t, err)
	assert.Equal(t, int64(1), marked)

	rec, err := repo.GetByEmployeeAndDate(ctx, missing, date(10))
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusAbsent, rec.Status)
	assert.Nil(t, rec.CheckInTime)
	assert.True(t, rec.WorkingHours.IsZero())

	_, err = repo.GetByEmployeeAndDate(ctx, onLeave, date(10))
	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)

	again, err := repo.MarkAbsent(ctx, date(10))
	require.NoError(t, err)
	assert.Zero(t, again)
}
