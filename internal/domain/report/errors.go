package report

import "errors"

var (
	ErrInvalidDateRange  = errors.New("invalid date range")
	ErrInvalidFilter     = errors.New("invalid filter")
	ErrUnsupportedFormat = errors.New("unsupported report format")
)
