package leave

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

const MaxAttachmentSize = 10 << 20 // 10MB

var allowedAttachmentExts = []string{".pdf", ".jpg", ".jpeg", ".png", ".doc", ".docx"}

// ========================================
// LEAVE APPLICATION DTOs
// ========================================

// AttachmentUpload is the raw file handed to the file store.
type AttachmentUpload struct {
	File        io.Reader
	FileName    string
	ContentType string
	Size        int64
}

type SubmitLeaveRequest struct {
	LeaveTypeID string            `json:"leave_type_id"`
	StartDate   string            `json:"start_date"`
	EndDate     string            `json:"end_date"`
	Reason      string            `json:"reason"`
	Attachment  *AttachmentUpload `json:"-"`
}

func (r *SubmitLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.LeaveTypeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type_id",
			Message: "leave_type_id is required",
		})
	} else if !validator.IsValidUUID(r.LeaveTypeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type_id",
			Message: "leave_type_id must be a valid UUID",
		})
	}

	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}
	end, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}
	if startOK && endOK {
		if end.Before(start) {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be on or after start_date",
			})
		} else if InclusiveDays(start, end).GreaterThan(decimal.NewFromInt(MaxApplicationDays)) {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: fmt.Sprintf("leave cannot span more than %d days", MaxApplicationDays),
			})
		}
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	if a := r.Attachment; a != nil {
		ext := strings.ToLower(filepath.Ext(a.FileName))
		if !validator.IsInSlice(ext, allowedAttachmentExts) {
			errs = append(errs, validator.ValidationError{
				Field:   "attachment",
				Message: "attachment must be one of " + strings.Join(allowedAttachmentExts, ", "),
			})
		} else if a.Size > MaxAttachmentSize {
			errs = append(errs, validator.ValidationError{
				Field:   "attachment",
				Message: "attachment size must not exceed 10MB",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Dates returns the parsed range. Call after Validate.
func (r *SubmitLeaveRequest) Dates() (start, end time.Time) {
	start, _ = validator.IsValidDate(r.StartDate)
	end, _ = validator.IsValidDate(r.EndDate)
	return start, end
}

type CancelResponse struct {
	ApplicationID string `json:"application_id"`
	Status        Status `json:"status"`
	// Balance after reconciliation; nil when the leave type carries none.
	Balance *LeaveBalance `json:"balance,omitempty"`
}

type HistoryFilter struct {
	Status      string
	LeaveTypeID string
	Year        int
	Page        int
	Limit       int
}

func (f *HistoryFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Status != "" && !Status(f.Status).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of pending, approved, rejected, cancelled",
		})
	}
	if f.LeaveTypeID != "" && !validator.IsValidUUID(f.LeaveTypeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type_id",
			Message: "leave_type_id must be a valid UUID",
		})
	}
	if f.Year != 0 && (f.Year < 2000 || f.Year > 2100) {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year must be between 2000 and 2100",
		})
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListResponse struct {
	Applications []LeaveApplication `json:"applications"`
	TotalRecords int64              `json:"total_records"`
	Page         int                `json:"page"`
	Limit        int                `json:"limit"`
	TotalPages   int                `json:"total_pages"`
}

// ========================================
// LEAVE TYPE DTOs
// ========================================

type CreateLeaveTypeRequest struct {
	Name                       string          `json:"name"`
	Code                       string          `json:"code"`
	Description                *string         `json:"description"`
	AnnualQuota                decimal.Decimal `json:"annual_quota"`
	RequiresApproval           *bool           `json:"requires_approval"`
	RequiresDocumentation      bool            `json:"requires_documentation"`
	DocumentationThresholdDays int             `json:"documentation_threshold_days"`
	MaxConsecutiveDays         *int            `json:"max_consecutive_days"`
}

func (r *CreateLeaveTypeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	code := strings.TrimSpace(r.Code)
	if code == "" || len(code) > 10 {
		errs = append(errs, validator.ValidationError{
			Field:   "code",
			Message: "code is required and must be at most 10 characters",
		})
	}
	if r.AnnualQuota.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "annual_quota",
			Message: "annual_quota must not be negative",
		})
	}
	if r.DocumentationThresholdDays < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "documentation_threshold_days",
			Message: "documentation_threshold_days must not be negative",
		})
	}
	if r.MaxConsecutiveDays != nil && *r.MaxConsecutiveDays < 1 {
		errs = append(errs, validator.ValidationError{
			Field:   "max_consecutive_days",
			Message: "max_consecutive_days must be at least 1",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
