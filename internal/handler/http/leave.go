package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type LeaveHandler interface {
	CreateType(w http.ResponseWriter, r *http.Request)
	ListTypes(w http.ResponseWriter, r *http.Request)

	Submit(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)
	History(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Balances(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService leave.LeaveService
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &LeaveHandlerImpl{
		leaveService: leaveService,
	}
}

// Submit handles POST /leaves. The body is multipart: a "data" field holding
// the JSON request and an optional "attachment" file.
func (l *LeaveHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(leave.MaxAttachmentSize); err != nil {
		slog.Error("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Failed to parse form data", nil)
		return
	}

	dataJSON := r.FormValue("data")
	if dataJSON == "" {
		response.BadRequest(w, "Field 'data' is required", nil)
		return
	}

	var req leave.SubmitLeaveRequest
	if err := json.Unmarshal([]byte(dataJSON), &req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	file, fileHeader, err := r.FormFile("attachment")
	if err != nil && !errors.Is(err, http.ErrMissingFile) {
		response.BadRequest(w, "Invalid file upload", nil)
		return
	}
	if file != nil {
		defer file.Close()
		req.Attachment = &leave.AttachmentUpload{
			File:        file,
			FileName:    fileHeader.Filename,
			ContentType: fileHeader.Header.Get("Content-Type"),
			Size:        fileHeader.Size,
		}
	}

	application, err := l.leaveService.Submit(r.Context(), caller, req)
	if err != nil {
		if errors.Is(err, leave.ErrAttachmentNotStored) && application.ID != "" {
			response.CreatedWithError(w, "Leave application submitted", application,
				"ATTACHMENT_NOT_STORED", leave.ErrAttachmentNotStored.Error())
			return
		}
		response.HandleError(w, r, err)
		return
	}

	response.Created(w, "Leave application submitted", application)
}

// Cancel handles DELETE /leaves/{id}
func (l *LeaveHandlerImpl) Cancel(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if !validator.IsValidUUID(id) {
		response.NotFound(w, "Leave application not found")
		return
	}

	result, err := l.leaveService.Cancel(r.Context(), caller, id)
	if err != nil {
		response.HandleError(w, r, err)
		return
	}

	response.SuccessWithMessage(w, "Leave application cancelled", result)
}

// History handles GET /leaves
func (l *LeaveHandlerImpl) History(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	page, limit := validator.ParsePage(query.Get("page"), query.Get("limit"), 1, 10)
	filter := leave.HistoryFilter{
		Status:      query.Get("status"),
		LeaveTypeID: query.Get("leave_type_id"),
		Page:        page,
		Limit:       limit,
	}
	if year := query.Get("year"); year != "" {
		y, err := strconv.Atoi(year)
		if err != nil {
			response.BadRequest(w, "invalid year parameter", nil)
			return
		}
		filter.Year = y
	}

	result, err := l.leaveService.History(r.Context(), caller, filter)
	if err != nil {
		response.HandleError(w, r, err)
		return
	}

	response.SuccessWithMeta(w, result.Applications, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalRecords,
		TotalPages: result.TotalPages,
	})
}

// Get handles GET /leaves/{id}
func (l *LeaveHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if !validator.IsValidUUID(id) {
		response.NotFound(w, "Leave application not found")
		return
	}

	application, err := l.leaveService.Get(r.Context(), caller, id)
	if err != nil {
		response.HandleError(w, r, err)
		return
	}

	response.Success(w, application)
}

// Balances handles GET /leaves/balances
func (l *LeaveHandlerImpl) Balances(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}

	year := 0
	if y := r.URL.Query().Get("year"); y != "" {
		parsed, err := strconv.Atoi(y)
		if err != nil {
			response.BadRequest(w, "invalid year parameter", nil)
			return
		}
		year = parsed
	}

	balances, err := l.leaveService.Balances(r.Context(), caller, year)
	if err != nil {
		response.HandleError(w, r, err)
		return
	}

	response.Success(w, balances)
}

// CreateType handles POST /leaves/types
func (l *LeaveHandlerImpl) CreateType(w http.ResponseWriter, r *http.Request) {
	var req leave.CreateLeaveTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	leaveType, err := l.leaveService.CreateLeaveType(r.Context(), req)
	if err != nil {
		response.HandleError(w, r, err)
		return
	}

	response.Created(w, "Leave type created", leaveType)
}

// ListTypes handles GET /leaves/types
func (l *LeaveHandlerImpl) ListTypes(w http.ResponseWriter, r *http.Request) {
	includeInactive, _ := strconv.ParseBool(r.URL.Query().Get("include_inactive"))

	types, err := l.leaveService.ListLeaveTypes(r.Context(), includeInactive)
	if err != nil {
		response.HandleError(w, r, err)
		return
	}

	response.Success(w, types)
}
