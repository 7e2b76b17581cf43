package leave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-backend-go/internal/service/file"
	"github.com/shopspring/decimal"
)

// Recorder receives leave lifecycle events for metrics.
type Recorder interface {
	LeaveTransition(status string)
	ReconciliationSkipped()
}

type LeaveServiceImpl struct {
	tx           database.Transactor
	types        leave.LeaveTypeRepository
	applications leave.LeaveApplicationRepository
	attachments  leave.AttachmentRepository
	history      leave.StatusHistoryRepository
	balances     leave.LeaveBalanceRepository
	fileService  file.FileService
	reconciler   *reconciler
	recorder     Recorder
	logger       *slog.Logger
	now          func() time.Time
}

func NewLeaveService(
	tx database.Transactor,
	types leave.LeaveTypeRepository,
	applications leave.LeaveApplicationRepository,
	attachments leave.AttachmentRepository,
	history leave.StatusHistoryRepository,
	balances leave.LeaveBalanceRepository,
	fileService file.FileService,
	table leave.ReconciliationTable,
	reconciledCodes []string,
	recorder Recorder,
	logger *slog.Logger,
) leave.LeaveService {
	if logger == nil {
		logger = slog.Default()
	}
	return &LeaveServiceImpl{
		tx:           tx,
		types:        types,
		applications: applications,
		attachments:  attachments,
		history:      history,
		balances:     balances,
		fileService:  fileService,
		reconciler:   newReconciler(table, reconciledCodes),
		recorder:     recorder,
		logger:       logger,
		now:          time.Now,
	}
}

// Submit implements leave.LeaveService.
func (s *LeaveServiceImpl) Submit(ctx context.Context, caller auth.Caller, req leave.SubmitLeaveRequest) (leave.LeaveApplication, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveApplication{}, err
	}
	start, end := req.Dates()

	leaveType, err := s.types.GetByID(ctx, req.LeaveTypeID)
	if err != nil {
		if errors.Is(err, leave.ErrUnknownLeaveType) {
			return leave.LeaveApplication{}, err
		}
		return leave.LeaveApplication{}, fmt.Errorf("failed to get leave type: %w", err)
	}
	if !leaveType.IsActive {
		return leave.LeaveApplication{}, fmt.Errorf("%w: %s is inactive", leave.ErrUnknownLeaveType, leaveType.Code)
	}

	duration := leave.InclusiveDays(start, end)
	if limit := leaveType.MaxConsecutiveDays; limit != nil && duration.GreaterThan(decimal.NewFromInt(int64(*limit))) {
		return leave.LeaveApplication{}, fmt.Errorf("%w: at most %d days", leave.ErrExceedsMaxConsecutive, *limit)
	}
	if leaveType.NeedsDocument(duration) && req.Attachment == nil {
		return leave.LeaveApplication{}, leave.ErrDocumentationRequired
	}

	application := leave.LeaveApplication{
		EmployeeID:  caller.EmployeeID,
		LeaveTypeID: leaveType.ID,
		StartDate:   start,
		EndDate:     end,
		Duration:    duration,
		Reason:      strings.TrimSpace(req.Reason),
		Status:      leave.StatusPending,
		AppliedOn:   s.now(),
	}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		overlap, err := s.applications.HasOverlap(ctx, caller.EmployeeID, start, end)
		if err != nil {
			return fmt.Errorf("failed to check overlapping leave: %w", err)
		}
		if overlap {
			return leave.ErrOverlappingLeave
		}

		created, err := s.applications.Create(ctx, application)
		if err != nil {
			return err
		}

		if err := s.history.Record(ctx, leave.StatusChange{
			ApplicationID: created.ID,
			Status:        leave.StatusPending,
			ChangedBy:     caller.EmployeeID,
			ChangedAt:     created.AppliedOn,
		}); err != nil {
			return fmt.Errorf("failed to record leave history: %w", err)
		}

		if counter, ok := s.reconciler.lookup(leaveType.ID); ok {
			key := leave.BalanceKey{EmployeeID: caller.EmployeeID, LeaveTypeID: leaveType.ID, Year: start.Year()}
			if _, err := s.balances.Apply(ctx, key, counter, duration, leaveType.AnnualQuota); err != nil {
				return fmt.Errorf("failed to reserve leave balance: %w", err)
			}
		}

		application = created
		return nil
	})
	if err != nil {
		return leave.LeaveApplication{}, err
	}
	s.recordTransition(leave.StatusPending)

	application.LeaveTypeName = &leaveType.Name
	application.LeaveTypeCode = &leaveType.Code

	if req.Attachment != nil {
		attachment, err := s.storeAttachment(ctx, caller, application.ID, *req.Attachment)
		if err != nil {
			s.logger.ErrorContext(ctx, "leave attachment not stored",
				slog.String("application_id", application.ID),
				slog.String("error", err.Error()),
			)
			return application, fmt.Errorf("%w: %v", leave.ErrAttachmentNotStored, err)
		}
		application.Attachments = append(application.Attachments, attachment)
	}

	return application, nil
}

func (s *LeaveServiceImpl) storeAttachment(ctx context.Context, caller auth.Caller, applicationID string, upload leave.AttachmentUpload) (leave.Attachment, error) {
	stored, err := s.fileService.UploadLeaveAttachment(ctx, caller.EmployeeID, upload.File, upload.FileName, upload.ContentType)
	if err != nil {
		return leave.Attachment{}, err
	}

	attachment, err := s.attachments.Create(ctx, leave.Attachment{
		ApplicationID: applicationID,
		FileName:      stored.FileName,
		FileType:      stored.FileType,
		FileSize:      stored.FileSize,
		FileURL:       stored.FileURL,
	})
	if err != nil {
		if delErr := s.fileService.DeleteFile(ctx, stored.Key); delErr != nil {
			s.logger.WarnContext(ctx, "orphaned leave attachment", slog.String("key", stored.Key), slog.String("error", delErr.Error()))
		}
		return leave.Attachment{}, fmt.Errorf("failed to save attachment record: %w", err)
	}
	return attachment, nil
}

// Cancel implements leave.LeaveService.
func (s *LeaveServiceImpl) Cancel(ctx context.Context, caller auth.Caller, applicationID string) (leave.CancelResponse, error) {
	application, err := s.applications.GetByIDForEmployee(ctx, applicationID, caller.EmployeeID)
	if err != nil {
		return leave.CancelResponse{}, err
	}
	if err := leave.Transition(application.Status, leave.StatusCancelled); err != nil {
		return leave.CancelResponse{}, err
	}

	// Attachment rows go with the application; their files are removed after commit.
	attachments, err := s.attachments.ListByApplication(ctx, application.ID)
	if err != nil {
		return leave.CancelResponse{}, fmt.Errorf("failed to list leave attachments: %w", err)
	}

	resp := leave.CancelResponse{ApplicationID: application.ID, Status: leave.StatusCancelled}
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.history.Record(ctx, leave.StatusChange{
			ApplicationID: application.ID,
			Status:        leave.StatusCancelled,
			ChangedBy:     caller.EmployeeID,
			ChangedAt:     s.now(),
		}); err != nil {
			return fmt.Errorf("failed to record leave history: %w", err)
		}

		// Only a pending row is deleted, so a concurrent cancel of the same
		// application fails here instead of crediting twice.
		if err := s.applications.DeletePending(ctx, application.ID); err != nil {
			return err
		}

		counter, ok := s.reconciler.lookup(application.LeaveTypeID)
		if !ok {
			s.logger.WarnContext(ctx, "leave type has no reconciled balance, skipping",
				slog.String("application_id", application.ID),
				slog.String("leave_type_id", application.LeaveTypeID),
			)
			if s.recorder != nil {
				s.recorder.ReconciliationSkipped()
			}
			return nil
		}

		key := leave.BalanceKey{
			EmployeeID:  caller.EmployeeID,
			LeaveTypeID: application.LeaveTypeID,
			Year:        application.StartDate.Year(),
		}
		balance, err := s.balances.Apply(ctx, key, counter, application.Duration.Neg(), decimal.Zero)
		if err != nil {
			return fmt.Errorf("failed to reconcile leave balance: %w", err)
		}
		resp.Balance = &balance
		return nil
	})
	if err != nil {
		return leave.CancelResponse{}, err
	}
	s.recordTransition(leave.StatusCancelled)

	for _, a := range attachments {
		key := file.LeaveAttachmentKey(application.EmployeeID, a.FileName)
		if err := s.fileService.DeleteFile(ctx, key); err != nil {
			s.logger.WarnContext(ctx, "orphaned leave attachment", slog.String("key", key), slog.String("error", err.Error()))
		}
	}

	return resp, nil
}

// History implements leave.LeaveService.
func (s *LeaveServiceImpl) History(ctx context.Context, caller auth.Caller, filter leave.HistoryFilter) (leave.ListResponse, error) {
	if err := filter.Validate(); err != nil {
		return leave.ListResponse{}, err
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 10
	}

	q := leave.ApplicationQuery{
		EmployeeID: caller.EmployeeID,
		Limit:      filter.Limit,
		Offset:     (filter.Page - 1) * filter.Limit,
	}
	if filter.Status != "" {
		st := leave.Status(filter.Status)
		q.Status = &st
	}
	if filter.LeaveTypeID != "" {
		q.LeaveTypeID = &filter.LeaveTypeID
	}
	if filter.Year != 0 {
		q.Year = &filter.Year
	}

	applications, total, err := s.applications.List(ctx, q)
	if err != nil {
		return leave.ListResponse{}, fmt.Errorf("failed to list leave applications: %w", err)
	}
	if applications == nil {
		applications = []leave.LeaveApplication{}
	}

	return leave.ListResponse{
		Applications: applications,
		TotalRecords: total,
		Page:         filter.Page,
		Limit:        filter.Limit,
		TotalPages:   int(math.Ceil(float64(total) / float64(filter.Limit))),
	}, nil
}

// Get implements leave.LeaveService.
func (s *LeaveServiceImpl) Get(ctx context.Context, caller auth.Caller, applicationID string) (leave.LeaveApplication, error) {
	application, err := s.applications.GetByIDForEmployee(ctx, applicationID, caller.EmployeeID)
	if err != nil {
		return leave.LeaveApplication{}, err
	}

	if application.Attachments, err = s.attachments.ListByApplication(ctx, application.ID); err != nil {
		return leave.LeaveApplication{}, fmt.Errorf("failed to list attachments: %w", err)
	}
	if application.History, err = s.history.ListByApplication(ctx, application.ID); err != nil {
		return leave.LeaveApplication{}, fmt.Errorf("failed to list leave history: %w", err)
	}

	return application, nil
}

// Balances implements leave.LeaveService.
func (s *LeaveServiceImpl) Balances(ctx context.Context, caller auth.Caller, year int) ([]leave.LeaveBalance, error) {
	if year == 0 {
		year = s.now().Year()
	}
	balances, err := s.balances.ListByEmployee(ctx, caller.EmployeeID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave balances: %w", err)
	}
	if balances == nil {
		balances = []leave.LeaveBalance{}
	}
	return balances, nil
}

// CreateLeaveType implements leave.LeaveService.
func (s *LeaveServiceImpl) CreateLeaveType(ctx context.Context, req leave.CreateLeaveTypeRequest) (leave.LeaveType, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveType{}, err
	}

	requiresApproval := true
	if req.RequiresApproval != nil {
		requiresApproval = *req.RequiresApproval
	}

	created, err := s.types.Create(ctx, leave.LeaveType{
		Name:                       strings.TrimSpace(req.Name),
		Code:                       strings.ToUpper(strings.TrimSpace(req.Code)),
		Description:                req.Description,
		AnnualQuota:                req.AnnualQuota,
		RequiresApproval:           requiresApproval,
		RequiresDocumentation:      req.RequiresDocumentation,
		DocumentationThresholdDays: req.DocumentationThresholdDays,
		MaxConsecutiveDays:         req.MaxConsecutiveDays,
		IsActive:                   true,
	})
	if err != nil {
		return leave.LeaveType{}, err
	}

	s.reconciler.register(created)
	return created, nil
}

// ListLeaveTypes implements leave.LeaveService.
func (s *LeaveServiceImpl) ListLeaveTypes(ctx context.Context, includeInactive bool) ([]leave.LeaveType, error) {
	types, err := s.types.List(ctx, !includeInactive)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave types: %w", err)
	}
	if types == nil {
		types = []leave.LeaveType{}
	}
	return types, nil
}

func (s *LeaveServiceImpl) recordTransition(status leave.Status) {
	if s.recorder != nil {
		s.recorder.LeaveTransition(string(status))
	}
}
