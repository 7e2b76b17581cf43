package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, IsEmpty(c.input), "IsEmpty(%q)", c.input)
	}
}

func TestIsValidUUID(t *testing.T) {
	valid := []string{
		"0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b",
		"123E4567-E89B-12D3-A456-426614174000",
	}
	invalid := []string{
		"0188d0f27b8c7b4a8a2b6b8b8b8b8b8b",
		"g188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b",
		"{123e4567-e89b-12d3-a456-426614174000}",
		"",
	}
	for _, id := range valid {
		assert.True(t, IsValidUUID(id), id)
	}
	for _, id := range invalid {
		assert.False(t, IsValidUUID(id), id)
	}
}

func TestIsValidDate(t *testing.T) {
	for _, d := range []string{"2023-01-01", "2024-02-29"} {
		_, ok := IsValidDate(d)
		assert.True(t, ok, d)
	}
	for _, d := range []string{"2023-02-29", "01-01-2023", "2023/01/01", ""} {
		_, ok := IsValidDate(d)
		assert.False(t, ok, d)
	}
}

func TestIsValidClock(t *testing.T) {
	assert.True(t, IsValidClock("09:00"))
	assert.True(t, IsValidClock("23:59"))
	assert.False(t, IsValidClock("24:00"))
	assert.False(t, IsValidClock("9:00"))
}

func TestParsePage(t *testing.T) {
	page, limit := ParsePage("", "", 1, 10)
	assert.Equal(t, 1, page)
	assert.Equal(t, 10, limit)

	page, limit = ParsePage("3", "25", 1, 10)
	assert.Equal(t, 3, page)
	assert.Equal(t, 25, limit)

	page, limit = ParsePage("-1", "abc", 1, 10)
	assert.Equal(t, 1, page)
	assert.Equal(t, 10, limit)
}

func TestValidationErrors(t *testing.T) {
	errs := ValidationErrors{
		{Field: "start_date", Message: "is required"},
		{Field: "reason", Message: "is required"},
	}
	assert.Equal(t, "start_date: is required; reason: is required", errs.Error())
	assert.Equal(t, map[string]string{"start_date": "is required", "reason": "is required"}, errs.ToMap())
}
