package leave

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusCancelled:
		return true
	}
	return false
}

func (s Status) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected || s == StatusCancelled
}

// Transition checks a status change. Only pending applications move, and
// only to approved, rejected or cancelled.
func Transition(from, to Status) error {
	if from == StatusPending && to.IsTerminal() {
		return nil
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidStateTransition, from, to)
}

// LeaveType entity
type LeaveType struct {
	ID                         string          `json:"id"`
	Name                       string          `json:"name"`
	Code                       string          `json:"code"`
	Description                *string         `json:"description,omitempty"`
	AnnualQuota                decimal.Decimal `json:"annual_quota"`
	RequiresApproval           bool            `json:"requires_approval"`
	RequiresDocumentation      bool            `json:"requires_documentation"`
	DocumentationThresholdDays int             `json:"documentation_threshold_days"`
	MaxConsecutiveDays         *int            `json:"max_consecutive_days,omitempty"`
	IsActive                   bool            `json:"is_active"`
	CreatedAt                  time.Time       `json:"created_at"`
	UpdatedAt                  time.Time       `json:"updated_at"`
}

// NeedsDocument reports whether an application of this many days must carry an attachment.
func (t LeaveType) NeedsDocument(duration decimal.Decimal) bool {
	return t.RequiresDocumentation && duration.GreaterThan(decimal.NewFromInt(int64(t.DocumentationThresholdDays)))
}

type LeaveApplication struct {
	ID          string          `json:"id"`
	EmployeeID  string          `json:"employee_id"`
	LeaveTypeID string          `json:"leave_type_id"`
	StartDate   time.Time       `json:"start_date"`
	EndDate     time.Time       `json:"end_date"`
	Duration    decimal.Decimal `json:"duration"`
	Reason      string          `json:"reason"`
	Status      Status          `json:"status"`
	AppliedOn   time.Time       `json:"applied_on"`
	ApprovedBy  *string         `json:"approved_by,omitempty"`
	ApprovedAt  *time.Time      `json:"approved_at,omitempty"`
	Remarks     *string         `json:"remarks,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	// Populated
	LeaveTypeName *string        `json:"leave_type_name,omitempty"`
	LeaveTypeCode *string        `json:"leave_type_code,omitempty"`
	ApproverName  *string        `json:"approver_name,omitempty"`
	Attachments   []Attachment   `json:"attachments,omitempty"`
	History       []StatusChange `json:"history,omitempty"`
}

// InclusiveDays counts calendar days from start to end, both included.
// MaxApplicationDays caps the span of a single application.
const MaxApplicationDays = 366

func InclusiveDays(start, end time.Time) decimal.Decimal {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	return decimal.NewFromInt(int64(e.Sub(s).Hours()/24) + 1)
}

type LeaveBalance struct {
	ID               string          `json:"id"`
	EmployeeID       string          `json:"employee_id"`
	LeaveTypeID      string          `json:"leave_type_id"`
	Year             int             `json:"year"`
	Allocated        decimal.Decimal `json:"allocated"`
	Used             decimal.Decimal `json:"used"`
	Pending          decimal.Decimal `json:"pending"`
	Adjustment       decimal.Decimal `json:"adjustment"`
	AdjustmentReason *string         `json:"adjustment_reason,omitempty"`
	UpdatedAt        time.Time       `json:"updated_at"`

	// Populated
	LeaveTypeName *string `json:"leave_type_name,omitempty"`
	LeaveTypeCode *string `json:"leave_type_code,omitempty"`
}

// Available is what the employee can still request.
func (b LeaveBalance) Available() decimal.Decimal {
	return b.Allocated.Add(b.Adjustment).Sub(b.Used).Sub(b.Pending)
}

type BalanceKey struct {
	EmployeeID  string
	LeaveTypeID string
	Year        int
}

type Attachment struct {
	ID            string    `json:"id"`
	ApplicationID string    `json:"application_id"`
	FileName      string    `json:"file_name"`
	FileType      string    `json:"file_type"`
	FileSize      int64     `json:"file_size"`
	FileURL       string    `json:"file_url"`
	UploadedAt    time.Time `json:"uploaded_at"`
}

// StatusChange is one entry of an application's status history.
type StatusChange struct {
	ID            string    `json:"id"`
	ApplicationID string    `json:"application_id"`
	Status        Status    `json:"status"`
	ChangedBy     string    `json:"changed_by"`
	Remarks       *string   `json:"remarks,omitempty"`
	ChangedAt     time.Time `json:"changed_at"`
}
