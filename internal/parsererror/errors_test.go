package parsererror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseError(t *testing.T) {
	inner := errors.New("zip: not a valid zip file")
	err := &ParseError{Parser: "xlsx", Field: "workbook", Value: "hours.xlsx", Err: inner}

	assert.Equal(t, "xlsx: failed to parse workbook='hours.xlsx': zip: not a valid zip file", err.Error())
	assert.ErrorIs(t, err, inner)
}

func TestInvalidFormatError(t *testing.T) {
	tests := []struct {
		name     string
		err      *InvalidFormatError
		expected string
	}{
		{
			name:     "names the offending extension",
			err:      &InvalidFormatError{FilePath: "report.pdf", Extension: "pdf", ExpectedFormat: "an Excel file (.xlsx)"},
			expected: "File must be an Excel file (.xlsx). You uploaded: pdf",
		},
		{
			name:     "missing extension",
			err:      &InvalidFormatError{FilePath: "report", ExpectedFormat: "an Excel file (.xlsx)"},
			expected: "File must be an Excel file (.xlsx). You uploaded: (none)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())

			wrapped := fmt.Errorf("upload rejected: %w", tt.err)
			var target *InvalidFormatError
			assert.True(t, errors.As(wrapped, &target))
		})
	}
}
