package report

import (
	"context"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/report"
)

// Recorder receives a tick per rendered report.
type Recorder interface {
	ReportGenerated(format string)
}

type ReportServiceImpl struct {
	aggregator *Aggregator
	renderer   *Renderer
	recorder   Recorder
}

func NewReportService(repo report.ReportRepository, tz *time.Location, compressPDF bool, recorder Recorder) report.ReportService {
	return &ReportServiceImpl{
		aggregator: NewAggregator(repo, tz),
		renderer:   NewRenderer(compressPDF),
		recorder:   recorder,
	}
}

// Aggregate implements report.ReportService.
func (s *ReportServiceImpl) Aggregate(ctx context.Context, req report.ReportRequest) (report.Report, error) {
	c, err := req.Parse()
	if err != nil {
		return report.Report{}, err
	}
	return s.aggregator.Aggregate(ctx, c)
}

// Generate implements report.ReportService.
func (s *ReportServiceImpl) Generate(ctx context.Context, req report.ReportRequest) (report.Rendered, error) {
	c, err := req.Parse()
	if err != nil {
		return report.Rendered{}, err
	}

	rep, err := s.aggregator.Aggregate(ctx, c)
	if err != nil {
		return report.Rendered{}, err
	}

	out, err := s.renderer.Render(rep, c.Format)
	if err != nil {
		return report.Rendered{}, err
	}

	if s.recorder != nil {
		s.recorder.ReportGenerated(string(c.Format))
	}
	return out, nil
}
