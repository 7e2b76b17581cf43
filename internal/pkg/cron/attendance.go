package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
)

// AbsenceMarker inserts absent records for employees with no attendance on date.
type AbsenceMarker interface {
	MarkAbsent(ctx context.Context, date time.Time) (int64, error)
}

type AttendanceJobs struct {
	marker AbsenceMarker
	tz     *time.Location
	logger *slog.Logger
	now    func() time.Time
}

func NewAttendanceJobs(marker AbsenceMarker, tz *time.Location, logger *slog.Logger) *AttendanceJobs {
	if tz == nil {
		tz = time.UTC
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AttendanceJobs{marker: marker, tz: tz, logger: logger, now: time.Now}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("mark_absent_employees", time.Hour, j.MarkAbsentEmployees)
}

// MarkAbsentEmployees closes out yesterday: every employee without a record
// gets one with status absent. Weekends are skipped. Running it again for the
// same day inserts nothing.
func (j *AttendanceJobs) MarkAbsentEmployees(ctx context.Context) error {
	yesterday := j.now().In(j.tz).AddDate(0, 0, -1)
	if wd := yesterday.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return nil
	}
	date := time.Date(yesterday.Year(), yesterday.Month(), yesterday.Day(), 0, 0, 0, 0, time.UTC)

	count, err := j.marker.MarkAbsent(ctx, date)
	if err != nil {
		return fmt.Errorf("failed to mark absent employees: %w", err)
	}
	if count > 0 {
		j.logger.Info("marked employees absent",
			slog.String("date", date.Format("2006-01-02")),
			slog.Int64("count", count),
			slog.String("status", string(attendance.StatusAbsent)),
		)
	}
	return nil
}
