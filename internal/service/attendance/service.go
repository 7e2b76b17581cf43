package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/settings"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	employee.EmployeeRepository
	settings.SettingsRepository
	geofenceEnabled bool
	tz              *time.Location
	logger          *slog.Logger
	now             func() time.Time
}

func NewAttendanceService(
	attendanceRepository attendance.AttendanceRepository,
	employeeRepository employee.EmployeeRepository,
	settingsRepository settings.SettingsRepository,
	geofenceEnabled bool,
	tz *time.Location,
	logger *slog.Logger,
) attendance.AttendanceService {
	if tz == nil {
		tz = time.UTC
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepository,
		EmployeeRepository:   employeeRepository,
		SettingsRepository:   settingsRepository,
		geofenceEnabled:      geofenceEnabled,
		tz:                   tz,
		logger:               logger,
		now:                  time.Now,
	}
}

// workDate resolves the calendar day a request refers to. The result is
// midnight UTC so it compares equal to the stored DATE column.
func (a *AttendanceServiceImpl) workDate(date string, now time.Time) time.Time {
	if d, ok := validator.IsValidDate(date); ok {
		return d
	}
	local := now.In(a.tz)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

// policyFor loads the attendance settings of the employee's department,
// falling back to built-in defaults.
func (a *AttendanceServiceImpl) policyFor(ctx context.Context, emp employee.Employee) (settings.AttendanceSettings, error) {
	policy, err := a.SettingsRepository.GetEffective(ctx, emp.Department)
	if err != nil {
		if errors.Is(err, settings.ErrSettingsNotFound) {
			return settings.Default(), nil
		}
		return settings.AttendanceSettings{}, fmt.Errorf("failed to get attendance settings: %w", err)
	}
	return policy, nil
}

func (a *AttendanceServiceImpl) checkFence(policy settings.AttendanceSettings, p attendance.GeoPoint) error {
	if a.geofenceEnabled && !policy.WithinFence(p) {
		return attendance.ErrOutsideAllowedRadius
	}
	return nil
}

// CheckIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckIn(ctx context.Context, caller auth.Caller, req attendance.CheckInRequest) (attendance.AttendanceRecord, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceRecord{}, err
	}
	now := a.now()
	date := a.workDate(req.Date, now)

	emp, err := a.EmployeeRepository.GetByID(ctx, caller.EmployeeID)
	if err != nil {
		return attendance.AttendanceRecord{}, err
	}

	policy, err := a.policyFor(ctx, emp)
	if err != nil {
		return attendance.AttendanceRecord{}, err
	}
	if err := a.checkFence(policy, req.Location); err != nil {
		return attendance.AttendanceRecord{}, err
	}

	_, err = a.AttendanceRepository.GetByEmployeeAndDate(ctx, caller.EmployeeID, date)
	switch {
	case err == nil:
		return attendance.AttendanceRecord{}, attendance.ErrAlreadyCheckedIn
	case !errors.Is(err, attendance.ErrAttendanceNotFound):
		return attendance.AttendanceRecord{}, fmt.Errorf("failed to check existing attendance: %w", err)
	}

	status := attendance.Status(req.Status)
	if status == "" && !date.Equal(a.workDate("", now)) {
		// Back-filled day: the arrival time is unknown, so lateness cannot be judged.
		status = attendance.StatusPresent
	}
	if status == "" {
		if status, err = policy.ClassifyCheckIn(now, a.tz); err != nil {
			a.logger.WarnContext(ctx, "attendance settings unusable, defaulting to present",
				slog.String("error", err.Error()))
			status = attendance.StatusPresent
		}
	}

	checkIn := now.UTC()
	record, err := a.AttendanceRepository.Create(ctx, attendance.AttendanceRecord{
		EmployeeID:       caller.EmployeeID,
		Date:             date,
		CheckInTime:      &checkIn,
		CheckInLocation:  req.Location,
		CheckOutLocation: attendance.UnsetPoint(),
		CheckInDevice:    req.DeviceInfo,
		Status:           status,
	})
	if err != nil {
		if errors.Is(err, attendance.ErrAlreadyCheckedIn) {
			return attendance.AttendanceRecord{}, err
		}
		return attendance.AttendanceRecord{}, fmt.Errorf("failed to create attendance record: %w", err)
	}
	record.Employee = &emp

	return record, nil
}

// CheckOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckOut(ctx context.Context, caller auth.Caller, req attendance.CheckOutRequest) (attendance.AttendanceRecord, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceRecord{}, err
	}
	now := a.now()
	date := a.workDate(req.Date, now)

	record, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, caller.EmployeeID, date)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.AttendanceRecord{}, err
		}
		return attendance.AttendanceRecord{}, fmt.Errorf("failed to get attendance record: %w", err)
	}
	if record.CheckOutTime != nil {
		return attendance.AttendanceRecord{}, attendance.ErrAlreadyCheckedOut
	}

	emp, err := a.EmployeeRepository.GetByID(ctx, caller.EmployeeID)
	if err != nil {
		return attendance.AttendanceRecord{}, err
	}
	policy, err := a.policyFor(ctx, emp)
	if err != nil {
		return attendance.AttendanceRecord{}, err
	}
	if err := a.checkFence(policy, req.Location); err != nil {
		return attendance.AttendanceRecord{}, err
	}

	checkOut := now.UTC()
	record.CheckOutTime = &checkOut
	record.CheckOutLocation = req.Location
	record.CheckOutDevice = req.DeviceInfo
	if record.CheckInTime != nil {
		record.WorkingHours = attendance.HoursBetween(*record.CheckInTime, checkOut)
	}
	if req.Status != "" {
		record.Status = attendance.Status(req.Status)
	} else {
		record.Status = policy.ClassifyCheckOut(record.Status, record.WorkingHours)
	}

	updated, err := a.AttendanceRepository.UpdateCheckOut(ctx, record)
	if err != nil {
		if errors.Is(err, attendance.ErrAlreadyCheckedOut) {
			return attendance.AttendanceRecord{}, err
		}
		return attendance.AttendanceRecord{}, fmt.Errorf("failed to update attendance record: %w", err)
	}
	updated.Employee = &emp

	return updated, nil
}

// History implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) History(ctx context.Context, caller auth.Caller, filter attendance.HistoryFilter) (attendance.ListResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListResponse{}, err
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 10
	}

	q := attendance.Query{
		EmployeeID: &caller.EmployeeID,
		Limit:      filter.Limit,
		Offset:     (filter.Page - 1) * filter.Limit,
	}
	if start, ok := validator.IsValidDate(filter.StartDate); ok {
		q.Start = &start
	}
	if end, ok := validator.IsValidDate(filter.EndDate); ok {
		q.End = &end
	}
	if filter.Status != "" {
		st := attendance.Status(filter.Status)
		q.Status = &st
	}

	total, err := a.AttendanceRepository.Count(ctx, q)
	if err != nil {
		return attendance.ListResponse{}, fmt.Errorf("failed to count attendance records: %w", err)
	}
	records, err := a.AttendanceRepository.Find(ctx, q)
	if err != nil {
		return attendance.ListResponse{}, fmt.Errorf("failed to list attendance records: %w", err)
	}

	views := make([]attendance.RecordView, 0, len(records))
	for _, rec := range records {
		views = append(views, attendance.NewRecordView(rec, a.tz))
	}

	return attendance.ListResponse{
		Records:      views,
		TotalRecords: total,
		Page:         filter.Page,
		Limit:        filter.Limit,
		TotalPages:   int(math.Ceil(float64(total) / float64(filter.Limit))),
	}, nil
}
