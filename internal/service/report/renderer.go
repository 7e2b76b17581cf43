package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/report"
	"github.com/go-pdf/fpdf"
)

const (
	csvFilename = "attendance_report.csv"
	pdfFilename = "attendance_report.pdf"
)

var csvHeader = []string{"date", "day", "check_in_time", "check_out_time", "working_hours", "status", "location"}

// Renderer serializes a report. Output depends only on the report, so the
// same input always yields the same bytes.
type Renderer struct {
	compressPDF bool
}

func NewRenderer(compressPDF bool) *Renderer {
	return &Renderer{compressPDF: compressPDF}
}

func (r *Renderer) Render(rep report.Report, format report.Format) (report.Rendered, error) {
	switch format {
	case report.FormatJSON:
		return r.renderJSON(rep)
	case report.FormatCSV:
		return r.renderCSV(rep)
	case report.FormatPDF:
		return r.renderPDF(rep)
	default:
		return report.Rendered{}, fmt.Errorf("%w: %q", report.ErrUnsupportedFormat, format)
	}
}

func (r *Renderer) renderJSON(rep report.Report) (report.Rendered, error) {
	body, err := json.Marshal(rep)
	if err != nil {
		return report.Rendered{}, fmt.Errorf("encode json report: %w", err)
	}
	return report.Rendered{ContentType: "application/json", Body: body}, nil
}

func (r *Renderer) renderCSV(rep report.Report) (report.Rendered, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return report.Rendered{}, err
	}
	for _, row := range rep.Records {
		if err := w.Write([]string{
			row.Date,
			row.Day,
			row.CheckInTime,
			row.CheckOutTime,
			row.WorkingHours,
			string(row.Status),
			formatLocation(row.Location),
		}); err != nil {
			return report.Rendered{}, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return report.Rendered{}, fmt.Errorf("encode csv report: %w", err)
	}

	return report.Rendered{ContentType: "text/csv", Filename: csvFilename, Body: buf.Bytes()}, nil
}

// PDFLines returns the text lines of the printable report in order. An empty
// string is the blank separator.
func PDFLines(rep report.Report) []string {
	s := rep.Summary
	lines := []string{
		"Attendance Report - Summary",
		"Total Days: " + strconv.Itoa(s.TotalDays),
		"Present Days: " + strconv.Itoa(s.PresentDays),
		"Absent Days: " + strconv.Itoa(s.AbsentDays),
		"Late Days: " + strconv.Itoa(s.LateDays),
		"Half Days: " + strconv.Itoa(s.HalfDays),
		"Total Working Hours: " + s.WorkingHours,
		"",
	}
	for _, row := range rep.Records {
		lines = append(lines, fmt.Sprintf("%s (%s): %s - Working Hours: %s", row.Date, row.Day, row.Status, row.WorkingHours))
	}
	return lines
}

func (r *Renderer) renderPDF(rep report.Report) (report.Rendered, error) {
	stamp := rep.End
	if stamp.IsZero() {
		stamp = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(r.compressPDF)
	pdf.SetCreationDate(stamp)
	pdf.SetModificationDate(stamp)
	pdf.SetCatalogSort(true)
	pdf.SetTitle("Attendance Report", false)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	for i, line := range PDFLines(rep) {
		switch {
		case i == 0:
			pdf.SetFont("Helvetica", "B", 16)
			pdf.CellFormat(0, 10, line, "", 1, "L", false, 0, "")
			pdf.SetFont("Helvetica", "", 11)
		case line == "":
			pdf.Ln(6)
		default:
			pdf.CellFormat(0, 7, line, "", 1, "L", false, 0, "")
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return report.Rendered{}, fmt.Errorf("encode pdf report: %w", err)
	}

	return report.Rendered{ContentType: "application/pdf", Filename: pdfFilename, Body: buf.Bytes()}, nil
}

func formatLocation(l attendance.Location) string {
	return strconv.FormatFloat(l.Lat, 'f', -1, 64) + ", " + strconv.FormatFloat(l.Lng, 'f', -1, 64)
}
