package postgresql_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-backend-go/internal/repository/postgresql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(day int) time.Time {
	return time.Date(2026, 3, day, 0, 0, 0, 0, time.UTC)
}

func TestLeaveApplicationRepository_OverlapConstraint(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()

	empID, err := setup.CreateEmployee(ctx, "EMP-001", "Ayu", nil)
	require.NoError(t, err)
	lt, err := postgresql.NewLeaveTypeRepository(setup.DB).Create(ctx, leave.LeaveType{
		Name: "Casual Leave", Code: "CL", AnnualQuota: decimal.NewFromInt(8), RequiresApproval: true, IsActive: true,
	})
	require.NoError(t, err)

	repo := postgresql.NewLeaveApplicationRepository(setup.DB)
	newApp := func(start, end int) leave.LeaveApplication {
		return leave.LeaveApplication{
			EmployeeID:  empID,
			LeaveTypeID: lt.ID,
			StartDate:   date(start),
			EndDate:     date(end),
			Duration:    leave.InclusiveDays(date(start), date(end)),
			Reason:      "rest",
			Status:      leave.StatusPending,
			AppliedOn:   time.Now(),
		}
	}

	first, err := repo.Create(ctx, newApp(10, 15))
	require.NoError(t, err)

	overlap, err := repo.HasOverlap(ctx, empID, date(12), date(20))
	require.NoError(t, err)
	assert.True(t, overlap)

	_, err = repo.Create(ctx, newApp(12, 20))
	assert.ErrorIs(t, err, leave.ErrOverlappingLeave)

	_, err = repo.Create(ctx, newApp(16, 20))
	require.NoError(t, err)

	got, err := repo.GetByIDForEmployee(ctx, first.ID, empID)
	require.NoError(t, err)
	assert.Equal(t, "CL", *got.LeaveTypeCode)
	assert.Equal(t, "6", got.Duration.String())

	require.NoError(t, repo.DeletePending(ctx, first.ID))
	assert.ErrorIs(t, repo.DeletePending(ctx, first.ID), leave.ErrLeaveApplicationNotFound)

	apps, total, err := repo.List(ctx, leave.ApplicationQuery{EmployeeID: empID, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, apps, 1)
}

func TestLeaveBalanceRepository_ApplyIsAtomic(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()

	empID, err := setup.CreateEmployee(ctx, "EMP-002", "Bima", nil)
	require.NoError(t, err)
	lt, err := postgresql.NewLeaveTypeRepository(setup.DB).Create(ctx, leave.LeaveType{
		Name: "Casual Leave", Code: "CL", AnnualQuota: decimal.NewFromInt(8), IsActive: true,
	})
	require.NoError(t, err)

	repo := postgresql.NewLeaveBalanceRepository(setup.DB)
	key := leave.BalanceKey{EmployeeID: empID, LeaveTypeID: lt.ID, Year: 2026}

	b, err := repo.Apply(ctx, key, leave.CounterPending, decimal.NewFromInt(3), lt.AnnualQuota)
	require.NoError(t, err)
	assert.Equal(t, "5", b.Available().String())

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Apply(ctx, key, leave.CounterPending, decimal.NewFromInt(1), lt.AnnualQuota)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	b, err = repo.Apply(ctx, key, leave.CounterPending, decimal.NewFromInt(-20), decimal.Zero)
	require.NoError(t, err)
	assert.True(t, b.Pending.IsZero())
	assert.Equal(t, "8", b.Available().String())

	balances, err := repo.ListByEmployee(ctx, empID, 2026)
	require.NoError(t, err)
	require.Len(t, balances, 1)
	assert.Equal(t, "CL", *balances[0].LeaveTypeCode)
}
