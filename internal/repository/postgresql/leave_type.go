package postgresql

import (
	"context"
	"errors"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leaveTypeRepositoryImpl struct {
	db *database.DB
}

func NewLeaveTypeRepository(db *database.DB) leave.LeaveTypeRepository {
	return &leaveTypeRepositoryImpl{db: db}
}

const leaveTypeColumns = `
	id, name, code, description, annual_quota, requires_approval,
	requires_documentation, documentation_threshold_days, max_consecutive_days,
	is_active, created_at, updated_at`

func scanLeaveType(row pgx.Row) (leave.LeaveType, error) {
	var lt leave.LeaveType
	err := row.Scan(
		&lt.ID,
		&lt.Name,
		&lt.Code,
		&lt.Description,
		&lt.AnnualQuota,
		&lt.RequiresApproval,
		&lt.RequiresDocumentation,
		&lt.DocumentationThresholdDays,
		&lt.MaxConsecutiveDays,
		&lt.IsActive,
		&lt.CreatedAt,
		&lt.UpdatedAt,
	)
	return lt, err
}

func (r *leaveTypeRepositoryImpl) queryLeaveTypes(ctx context.Context, query string, args ...any) ([]leave.LeaveType, error) {
	rows, err := GetQuerier(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var types []leave.LeaveType
	for rows.Next() {
		lt, err := scanLeaveType(rows)
		if err != nil {
			return nil, err
		}
		types = append(types, lt)
	}
	return types, rows.Err()
}

// GetByID implements leave.LeaveTypeRepository.
func (r *leaveTypeRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)

	lt, err := scanLeaveType(q.QueryRow(ctx, `SELECT `+leaveTypeColumns+` FROM leave_types WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveType{}, leave.ErrUnknownLeaveType
		}
		return leave.LeaveType{}, err
	}
	return lt, nil
}

// GetByCodes implements leave.LeaveTypeRepository.
func (r *leaveTypeRepositoryImpl) GetByCodes(ctx context.Context, codes []string) ([]leave.LeaveType, error) {
	return r.queryLeaveTypes(ctx, `SELECT `+leaveTypeColumns+` FROM leave_types WHERE code = ANY($1) ORDER BY code`, codes)
}

// List implements leave.LeaveTypeRepository.
func (r *leaveTypeRepositoryImpl) List(ctx context.Context, activeOnly bool) ([]leave.LeaveType, error) {
	return r.queryLeaveTypes(ctx, `
		SELECT `+leaveTypeColumns+`
		FROM leave_types
		WHERE ($1 = FALSE OR is_active)
		ORDER BY name
	`, activeOnly)
}

// Create implements leave.LeaveTypeRepository.
func (r *leaveTypeRepositoryImpl) Create(ctx context.Context, lt leave.LeaveType) (leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_types (
			name, code, description, annual_quota, requires_approval,
			requires_documentation, documentation_threshold_days, max_consecutive_days, is_active
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`
	err := q.QueryRow(ctx, query,
		lt.Name,
		lt.Code,
		lt.Description,
		lt.AnnualQuota,
		lt.RequiresApproval,
		lt.RequiresDocumentation,
		lt.DocumentationThresholdDays,
		lt.MaxConsecutiveDays,
		lt.IsActive,
	).Scan(&lt.ID, &lt.CreatedAt, &lt.UpdatedAt)
	if err != nil {
		if constraintViolation(err, pgUniqueViolation, "") {
			return leave.LeaveType{}, leave.ErrLeaveTypeCodeExists
		}
		return leave.LeaveType{}, err
	}
	return lt, nil
}
