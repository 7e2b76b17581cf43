package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leaveApplicationRepositoryImpl struct {
	db *database.DB
}

func NewLeaveApplicationRepository(db *database.DB) leave.LeaveApplicationRepository {
	return &leaveApplicationRepositoryImpl{db: db}
}

const leaveApplicationColumns = `
	la.id, la.employee_id, la.leave_type_id, la.start_date, la.end_date, la.duration,
	la.reason, la.status, la.applied_on, la.approved_by, la.approved_at, la.remarks,
	la.created_at, la.updated_at,
	lt.name, lt.code, ap.name`

const leaveApplicationFrom = `
	FROM leave_applications la
	LEFT JOIN leave_types lt ON lt.id = la.leave_type_id
	LEFT JOIN employees ap ON ap.id = la.approved_by`

func scanLeaveApplication(row pgx.Row) (leave.LeaveApplication, error) {
	var la leave.LeaveApplication
	err := row.Scan(
		&la.ID,
		&la.EmployeeID,
		&la.LeaveTypeID,
		&la.StartDate,
		&la.EndDate,
		&la.Duration,
		&la.Reason,
		&la.Status,
		&la.AppliedOn,
		&la.ApprovedBy,
		&la.ApprovedAt,
		&la.Remarks,
		&la.CreatedAt,
		&la.UpdatedAt,
		&la.LeaveTypeName,
		&la.LeaveTypeCode,
		&la.ApproverName,
	)
	return la, err
}

// Create implements leave.LeaveApplicationRepository.
func (r *leaveApplicationRepositoryImpl) Create(ctx context.Context, la leave.LeaveApplication) (leave.LeaveApplication, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_applications (
			employee_id, leave_type_id, start_date, end_date, duration, reason, status, applied_on
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`
	err := q.QueryRow(ctx, query,
		la.EmployeeID,
		la.LeaveTypeID,
		la.StartDate,
		la.EndDate,
		la.Duration,
		la.Reason,
		string(la.Status),
		la.AppliedOn,
	).Scan(&la.ID, &la.CreatedAt, &la.UpdatedAt)
	if err != nil {
		if constraintViolation(err, pgExclusionViolation, "excl_leave_overlap") {
			return leave.LeaveApplication{}, leave.ErrOverlappingLeave
		}
		return leave.LeaveApplication{}, err
	}
	return la, nil
}

// GetByIDForEmployee implements leave.LeaveApplicationRepository.
func (r *leaveApplicationRepositoryImpl) GetByIDForEmployee(ctx context.Context, id, employeeID string) (leave.LeaveApplication, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveApplicationColumns + leaveApplicationFrom + `
		WHERE la.id = $1 AND la.employee_id = $2`

	la, err := scanLeaveApplication(q.QueryRow(ctx, query, id, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveApplication{}, leave.ErrLeaveApplicationNotFound
		}
		return leave.LeaveApplication{}, err
	}
	return la, nil
}

// HasOverlap implements leave.LeaveApplicationRepository.
func (r *leaveApplicationRepositoryImpl) HasOverlap(ctx context.Context, employeeID string, start, end time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM leave_applications
			WHERE employee_id = $1
				AND status IN ('pending', 'approved')
				AND start_date <= $3
				AND end_date >= $2
		)
	`
	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, start, end).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// DeletePending implements leave.LeaveApplicationRepository.
func (r *leaveApplicationRepositoryImpl) DeletePending(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM leave_applications WHERE id = $1 AND status = 'pending'`, id)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return leave.ErrLeaveApplicationNotFound
	}
	return nil
}

// List implements leave.LeaveApplicationRepository.
func (r *leaveApplicationRepositoryImpl) List(ctx context.Context, lq leave.ApplicationQuery) ([]leave.LeaveApplication, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := "WHERE la.employee_id = $1"
	args := []any{lq.EmployeeID}
	argIdx := 2

	if lq.Status != nil {
		where += fmt.Sprintf(" AND la.status = $%d", argIdx)
		args = append(args, string(*lq.Status))
		argIdx++
	}
	if lq.LeaveTypeID != nil {
		where += fmt.Sprintf(" AND la.leave_type_id = $%d", argIdx)
		args = append(args, *lq.LeaveTypeID)
		argIdx++
	}
	if lq.Year != nil {
		where += fmt.Sprintf(" AND EXTRACT(YEAR FROM la.start_date) = $%d", argIdx)
		args = append(args, *lq.Year)
		argIdx++
	}

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM leave_applications la `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT %s %s %s
		ORDER BY la.start_date DESC, la.applied_on DESC
		LIMIT $%d OFFSET $%d`, leaveApplicationColumns, leaveApplicationFrom, where, argIdx, argIdx+1)
	args = append(args, lq.Limit, lq.Offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var applications []leave.LeaveApplication
	for rows.Next() {
		la, err := scanLeaveApplication(rows)
		if err != nil {
			return nil, 0, err
		}
		applications = append(applications, la)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return applications, total, nil
}
