package report

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/report"
	"github.com/shopspring/decimal"
)

// Aggregator turns raw attendance records into report rows and a summary.
// It holds no state between calls.
type Aggregator struct {
	repo report.ReportRepository
	tz   *time.Location
}

func NewAggregator(repo report.ReportRepository, tz *time.Location) *Aggregator {
	if tz == nil {
		tz = time.UTC
	}
	return &Aggregator{repo: repo, tz: tz}
}

func (a *Aggregator) Aggregate(ctx context.Context, c report.Criteria) (report.Report, error) {
	records, err := a.repo.FindAttendance(ctx, attendance.Query{
		EmployeeID: c.EmployeeID,
		Start:      &c.Start,
		End:        &c.End,
		Status:     c.Status,
	})
	if err != nil {
		return report.Report{}, fmt.Errorf("failed to load attendance records: %w", err)
	}

	// Department is matched after the query; fine at current volumes.
	if c.Department != nil {
		filtered := records[:0:0]
		for _, rec := range records {
			if rec.Employee != nil && rec.Employee.DepartmentName() == *c.Department {
				filtered = append(filtered, rec)
			}
		}
		records = filtered
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date.After(records[j].Date)
	})

	out := report.Report{
		Records: make([]attendance.RecordView, 0, len(records)),
		Start:   c.Start,
		End:     c.End,
	}
	total := decimal.Zero
	for _, rec := range records {
		out.Records = append(out.Records, attendance.NewRecordView(rec, a.tz))
		total = total.Add(rec.WorkingHours)

		switch rec.Status {
		case attendance.StatusPresent:
			out.Summary.PresentDays++
		case attendance.StatusAbsent:
			out.Summary.AbsentDays++
		case attendance.StatusLate:
			out.Summary.LateDays++
		case attendance.StatusHalfDay:
			out.Summary.HalfDays++
		}
	}
	out.Summary.TotalDays = len(records)
	out.Summary.WorkingHours = total.StringFixed(2)

	return out, nil
}
