package attendance

import (
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

// ========================================
// CHECK-IN / CHECK-OUT DTOs
// ========================================

type CheckInRequest struct {
	Location   GeoPoint   `json:"location"`
	DeviceInfo DeviceInfo `json:"device_info"`
	Status     string     `json:"status,omitempty"`
	// Date defaults to today in the server timezone when empty.
	Date string `json:"date,omitempty"`
}

func (r *CheckInRequest) Validate() error {
	if err := r.Location.Validate(); err != nil {
		return err
	}
	return validateStatusAndDate(r.Status, r.Date)
}

type CheckOutRequest struct {
	Location   GeoPoint   `json:"location"`
	DeviceInfo DeviceInfo `json:"device_info"`
	Status     string     `json:"status,omitempty"`
	Date       string     `json:"date,omitempty"`
}

func (r *CheckOutRequest) Validate() error {
	if err := r.Location.Validate(); err != nil {
		return err
	}
	return validateStatusAndDate(r.Status, r.Date)
}

func validateStatusAndDate(status, date string) error {
	var errs validator.ValidationErrors

	if status != "" && !Status(status).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of present, absent, late, half day",
		})
	}
	if date != "" {
		if _, ok := validator.IsValidDate(date); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========================================
// HISTORY DTOs
// ========================================

type HistoryFilter struct {
	StartDate string
	EndDate   string
	Status    string
	Page      int
	Limit     int
}

func (f *HistoryFilter) Validate() error {
	var errs validator.ValidationErrors

	start, startOK := validator.IsValidDate(f.StartDate)
	if f.StartDate != "" && !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}
	end, endOK := validator.IsValidDate(f.EndDate)
	if f.EndDate != "" && !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}
	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}
	if f.Status != "" && !Status(f.Status).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of present, absent, late, half day",
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
	Records      []RecordView `json:"records"`
	TotalRecords int64        `json:"total_records"`
	Page         int          `json:"page"`
	Limit        int          `json:"limit"`
	TotalPages   int          `json:"total_pages"`
}
