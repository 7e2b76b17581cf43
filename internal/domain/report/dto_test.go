package report

import (
	"testing"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportRequest_Parse(t *testing.T) {
	c, err := ReportRequest{
		StartDate:  "2024-03-01",
		EndDate:    "2024-03-31",
		Department: " Engineering ",
		Status:     "half day",
		Format:     "CSV",
	}.Parse()
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", c.Start.Format("2006-01-02"))
	assert.Equal(t, "Engineering", *c.Department)
	assert.Equal(t, attendance.StatusHalfDay, *c.Status)
	assert.Equal(t, FormatCSV, c.Format)
	assert.Nil(t, c.EmployeeID)
}

func TestReportRequest_ParseErrors(t *testing.T) {
	cases := []struct {
		name string
		req  ReportRequest
		want error
	}{
		{"missing start", ReportRequest{EndDate: "2024-03-01"}, ErrInvalidDateRange},
		{"bad end", ReportRequest{StartDate: "2024-03-01", EndDate: "03/31/2024"}, ErrInvalidDateRange},
		{"reversed", ReportRequest{StartDate: "2024-03-02", EndDate: "2024-03-01"}, ErrInvalidDateRange},
		{"bad status", ReportRequest{StartDate: "2024-03-01", EndDate: "2024-03-01", Status: "sick"}, ErrInvalidFilter},
		{"bad employee", ReportRequest{StartDate: "2024-03-01", EndDate: "2024-03-01", EmployeeID: "42"}, ErrInvalidFilter},
		{"bad format", ReportRequest{StartDate: "2024-03-01", EndDate: "2024-03-01", Format: "xlsx"}, ErrUnsupportedFormat},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.req.Parse()
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	f, err = ParseFormat("pdf")
	require.NoError(t, err)
	assert.Equal(t, FormatPDF, f)

	_, err = ParseFormat("structured")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
