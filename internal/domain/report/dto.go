package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE REPORT
// ========================================

type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatPDF  Format = "pdf"
)

// ParseFormat maps a request token to a Format. An empty token means JSON.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatJSON, nil
	case FormatJSON, FormatCSV, FormatPDF:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

type ReportRequest struct {
	StartDate  string
	EndDate    string
	Department string
	EmployeeID string
	Status     string
	Format     string
}

// Criteria is a parsed ReportRequest.
type Criteria struct {
	Start      time.Time
	End        time.Time
	Department *string
	EmployeeID *string
	Status     *attendance.Status
	Format     Format
}

func (r ReportRequest) Parse() (Criteria, error) {
	var c Criteria

	start, ok := validator.IsValidDate(r.StartDate)
	if !ok {
		return c, fmt.Errorf("%w: start_date %q is not a YYYY-MM-DD date", ErrInvalidDateRange, r.StartDate)
	}
	end, ok := validator.IsValidDate(r.EndDate)
	if !ok {
		return c, fmt.Errorf("%w: end_date %q is not a YYYY-MM-DD date", ErrInvalidDateRange, r.EndDate)
	}
	if end.Before(start) {
		return c, fmt.Errorf("%w: end_date is before start_date", ErrInvalidDateRange)
	}
	c.Start, c.End = start, end

	if r.Status != "" {
		s := attendance.Status(r.Status)
		if !s.IsValid() {
			return c, fmt.Errorf("%w: unknown status %q", ErrInvalidFilter, r.Status)
		}
		c.Status = &s
	}
	if r.EmployeeID != "" {
		if !validator.IsValidUUID(r.EmployeeID) {
			return c, fmt.Errorf("%w: employee_id must be a UUID", ErrInvalidFilter)
		}
		id := r.EmployeeID
		c.EmployeeID = &id
	}
	if d := strings.TrimSpace(r.Department); d != "" {
		c.Department = &d
	}

	format, err := ParseFormat(r.Format)
	if err != nil {
		return c, err
	}
	c.Format = format

	return c, nil
}

type Summary struct {
	TotalDays    int    `json:"total_days"`
	PresentDays  int    `json:"present_days"`
	AbsentDays   int    `json:"absent_days"`
	LateDays     int    `json:"late_days"`
	HalfDays     int    `json:"half_days"`
	WorkingHours string `json:"working_hours"`
}

type Report struct {
	Summary Summary                 `json:"summary"`
	Records []attendance.RecordView `json:"records"`

	// Requested period, used to stamp printable output.
	Start time.Time `json:"-"`
	End   time.Time `json:"-"`
}

// Rendered is a report serialized into one output format.
type Rendered struct {
	ContentType string
	Filename    string
	Body        []byte
}
