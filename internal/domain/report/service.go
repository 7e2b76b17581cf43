package report

import "context"

// ReportService defines the interface for report generation
type ReportService interface {
	Aggregate(ctx context.Context, req ReportRequest) (Report, error)
	Generate(ctx context.Context, req ReportRequest) (Rendered, error)
}
