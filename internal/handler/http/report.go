package http

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	// Attendance report in json, csv or pdf
	GetAttendanceReport(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

// GetAttendanceReport handles GET /attendance/report
func (h *reportHandlerImpl) GetAttendanceReport(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := report.ReportRequest{
		StartDate:  query.Get("start_date"),
		EndDate:    query.Get("end_date"),
		Department: query.Get("department"),
		EmployeeID: query.Get("employee_id"),
		Status:     query.Get("status"),
		Format:     query.Get("format"),
	}

	rendered, err := h.reportService.Generate(r.Context(), req)
	if err != nil {
		response.HandleError(w, r, err)
		return
	}

	if rendered.Filename == "" {
		response.Success(w, json.RawMessage(rendered.Body))
		return
	}
	response.File(w, rendered.ContentType, rendered.Filename, rendered.Body)
}
