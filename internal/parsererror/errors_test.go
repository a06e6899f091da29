package parsererror

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseError(t *testing.T) {
	tests := []struct {
		name     string
		err      *ParseError
		expected string
	}{
		{
			name: "csv header error",
			err: &ParseError{
				Reader: "CSV",
				Field:  "header",
				Value:  "Дата;Сумма",
				Err:    errors.New("missing column"),
			},
			expected: "CSV: failed to parse header='Дата;Сумма': missing column",
		},
		{
			name: "empty value",
			err: &ParseError{
				Reader: "XLSX",
				Field:  "sheet",
				Value:  "",
				Err:    errors.New("no sheets"),
			},
			expected: "XLSX: failed to parse sheet='': no sheets",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestParseError_Unwrap(t *testing.T) {
	originalErr := errors.New("original error")
	parseErr := &ParseError{Reader: "CSV", Field: "row", Value: "3", Err: originalErr}

	assert.Equal(t, originalErr, parseErr.Unwrap())
	assert.True(t, errors.Is(parseErr, originalErr))
}

func TestInvalidFormatError(t *testing.T) {
	withSnippet := &InvalidFormatError{
		FilePath:             "export.csv",
		ExpectedFormat:       "semicolon separated bank export",
		ActualContentSnippet: "a,b,c",
		Msg:                  "missing column 'Дата операции'",
	}
	assert.Equal(t,
		"invalid format in file 'export.csv': missing column 'Дата операции'. Expected: semicolon separated bank export. Content snippet: 'a,b,c'",
		withSnippet.Error())

	withSnippet.ActualContentSnippet = ""
	assert.Equal(t,
		"invalid format in file 'export.csv': missing column 'Дата операции'. Expected: semicolon separated bank export",
		withSnippet.Error())
}

func TestUnsupportedFormatError(t *testing.T) {
	err := &UnsupportedFormatError{FilePath: "export.pdf", Extension: ".pdf"}
	assert.Equal(t, "unsupported input format '.pdf' for file 'export.pdf' (expected .csv or .xlsx)", err.Error())

	var target *UnsupportedFormatError
	assert.True(t, errors.As(error(err), &target))
}

func TestStoreError(t *testing.T) {
	err := &StoreError{Path: "/tmp/mappings.yaml", Op: "load", Err: fs.ErrPermission}

	assert.Equal(t, "mapping store load failed for '/tmp/mappings.yaml': permission denied", err.Error())
	assert.True(t, errors.Is(err, fs.ErrPermission))
}
