package postgresql

import (
	"context"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
)

type statusHistoryRepositoryImpl struct {
	db *database.DB
}

func NewStatusHistoryRepository(db *database.DB) leave.StatusHistoryRepository {
	return &statusHistoryRepositoryImpl{db: db}
}

// Record implements leave.StatusHistoryRepository.
func (r *statusHistoryRepositoryImpl) Record(ctx context.Context, c leave.StatusChange) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `
		INSERT INTO leave_status_history (application_id, status, changed_by, remarks, changed_at)
		VALUES ($1, $2, $3, $4, $5)
	`, c.ApplicationID, string(c.Status), c.ChangedBy, c.Remarks, c.ChangedAt)
	return err
}

// ListByApplication implements leave.StatusHistoryRepository.
func (r *statusHistoryRepositoryImpl) ListByApplication(ctx context.Context, applicationID string) ([]leave.StatusChange, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT id, application_id, status, changed_by, remarks, changed_at
		FROM leave_status_history
		WHERE application_id = $1
		ORDER BY changed_at, id
	`, applicationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var changes []leave.StatusChange
	for rows.Next() {
		var c leave.StatusChange
		if err := rows.Scan(&c.ID, &c.ApplicationID, &c.Status, &c.ChangedBy, &c.Remarks, &c.ChangedAt); err != nil {
			return nil, err
		}
		changes = append(changes, c)
	}
	return changes, rows.Err()
}
