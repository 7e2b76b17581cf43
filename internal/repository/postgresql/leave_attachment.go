package postgresql

import (
	"context"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
)

type attachmentRepositoryImpl struct {
	db *database.DB
}

func NewAttachmentRepository(db *database.DB) leave.AttachmentRepository {
	return &attachmentRepositoryImpl{db: db}
}

// Create implements leave.AttachmentRepository.
func (r *attachmentRepositoryImpl) Create(ctx context.Context, a leave.Attachment) (leave.Attachment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_attachments (application_id, file_name, file_type, file_size, file_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, uploaded_at
	`
	err := q.QueryRow(ctx, query, a.ApplicationID, a.FileName, a.FileType, a.FileSize, a.FileURL).
		Scan(&a.ID, &a.UploadedAt)
	if err != nil {
		return leave.Attachment{}, err
	}
	return a, nil
}

// ListByApplication implements leave.AttachmentRepository.
func (r *attachmentRepositoryImpl) ListByApplication(ctx context.Context, applicationID string) ([]leave.Attachment, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT id, application_id, file_name, file_type, file_size, file_url, uploaded_at
		FROM leave_attachments
		WHERE application_id = $1
		ORDER BY uploaded_at
	`, applicationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attachments []leave.Attachment
	for rows.Next() {
		var a leave.Attachment
		if err := rows.Scan(&a.ID, &a.ApplicationID, &a.FileName, &a.FileType, &a.FileSize, &a.FileURL, &a.UploadedAt); err != nil {
			return nil, err
		}
		attachments = append(attachments, a)
	}
	return attachments, rows.Err()
}
