package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/shopspring/decimal"
)

type leaveBalanceRepositoryImpl struct {
	db *database.DB
}

func NewLeaveBalanceRepository(db *database.DB) leave.LeaveBalanceRepository {
	return &leaveBalanceRepositoryImpl{db: db}
}

// balanceColumn maps a counter to its column. Only these names are ever
// interpolated into SQL.
func balanceColumn(c leave.BalanceCounter) (string, error) {
	switch c {
	case leave.CounterPending:
		return "pending", nil
	case leave.CounterUsed:
		return "used", nil
	}
	return "", fmt.Errorf("unknown balance counter %q", c)
}

const leaveBalanceReturning = `
	id, employee_id, leave_type_id, year, allocated, used, pending,
	adjustment, adjustment_reason, updated_at`

// Apply implements leave.LeaveBalanceRepository. The increment happens in one
// upsert so concurrent submissions and cancellations never lose updates.
func (r *leaveBalanceRepositoryImpl) Apply(ctx context.Context, key leave.BalanceKey, counter leave.BalanceCounter, delta, allocated decimal.Decimal) (leave.LeaveBalance, error) {
	col, err := balanceColumn(counter)
	if err != nil {
		return leave.LeaveBalance{}, err
	}
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		INSERT INTO leave_balances (employee_id, leave_type_id, year, allocated, %[1]s)
		VALUES ($1, $2, $3, $4, GREATEST($5::numeric, 0))
		ON CONFLICT (employee_id, leave_type_id, year) DO UPDATE
		SET %[1]s = GREATEST(leave_balances.%[1]s + $5::numeric, 0),
			updated_at = NOW()
		RETURNING %[2]s
	`, col, leaveBalanceReturning)

	var b leave.LeaveBalance
	err = q.QueryRow(ctx, query, key.EmployeeID, key.LeaveTypeID, key.Year, allocated, delta).Scan(
		&b.ID,
		&b.EmployeeID,
		&b.LeaveTypeID,
		&b.Year,
		&b.Allocated,
		&b.Used,
		&b.Pending,
		&b.Adjustment,
		&b.AdjustmentReason,
		&b.UpdatedAt,
	)
	if err != nil {
		return leave.LeaveBalance{}, err
	}
	return b, nil
}

// ListByEmployee implements leave.LeaveBalanceRepository.
func (r *leaveBalanceRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string, year int) ([]leave.LeaveBalance, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT lb.id, lb.employee_id, lb.leave_type_id, lb.year, lb.allocated, lb.used, lb.pending,
			lb.adjustment, lb.adjustment_reason, lb.updated_at, lt.name, lt.code
		FROM leave_balances lb
		LEFT JOIN leave_types lt ON lt.id = lb.leave_type_id
		WHERE lb.employee_id = $1 AND lb.year = $2
		ORDER BY lt.name
	`, employeeID, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var balances []leave.LeaveBalance
	for rows.Next() {
		var b leave.LeaveBalance
		err := rows.Scan(
			&b.ID,
			&b.EmployeeID,
			&b.LeaveTypeID,
			&b.Year,
			&b.Allocated,
			&b.Used,
			&b.Pending,
			&b.Adjustment,
			&b.AdjustmentReason,
			&b.UpdatedAt,
			&b.LeaveTypeName,
			&b.LeaveTypeCode,
		)
		if err != nil {
			return nil, err
		}
		balances = append(balances, b)
	}
	return balances, rows.Err()
}
