package validation_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"fjacquet/bank-budget/internal/parsererror"
	"fjacquet/bank-budget/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInputFile(t *testing.T) {
	tmpDir := t.TempDir()

	csvFile := filepath.Join(tmpDir, "export.csv")
	require.NoError(t, os.WriteFile(csvFile, []byte("Дата операции\n"), 0600))
	xlsxFile := filepath.Join(tmpDir, "EXPORT.XLSX")
	require.NoError(t, os.WriteFile(xlsxFile, []byte("stub"), 0600))
	pdfFile := filepath.Join(tmpDir, "statement.pdf")
	require.NoError(t, os.WriteFile(pdfFile, []byte("%PDF"), 0600))

	tests := []struct {
		name        string
		path        string
		errContains string
	}{
		{name: "csv export", path: csvFile},
		{name: "xlsx export, upper case extension", path: xlsxFile},
		{name: "missing file", path: filepath.Join(tmpDir, "missing.csv"), errContains: "does not exist"},
		{name: "directory", path: tmpDir, errContains: "not a regular file"},
		{name: "unsupported extension", path: pdfFile, errContains: "unsupported input format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validation.InputFile(tt.path)
			if tt.errContains == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}

func TestInputFile_UnsupportedFormatIsTyped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "statement.ods")
	require.NoError(t, os.WriteFile(path, nil, 0600))

	var target *parsererror.UnsupportedFormatError
	require.True(t, errors.As(validation.InputFile(path), &target))
	assert.Equal(t, ".ods", target.Extension)
}

func TestOutputFile(t *testing.T) {
	tmpDir := t.TempDir()
	existing := filepath.Join(tmpDir, "budget.csv")
	require.NoError(t, os.WriteFile(existing, nil, 0600))
	dirWithCSVName := filepath.Join(tmpDir, "dir.csv")
	require.NoError(t, os.Mkdir(dirWithCSVName, 0750))

	tests := []struct {
		name        string
		path        string
		errContains string
	}{
		{name: "new file", path: filepath.Join(tmpDir, "out", "new.csv")},
		{name: "existing file", path: existing},
		{name: "wrong extension", path: filepath.Join(tmpDir, "budget.xlsx"), errContains: ".csv extension"},
		{name: "directory", path: dirWithCSVName, errContains: "is a directory"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validation.OutputFile(tt.path)
			if tt.errContains == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}

func TestFilePermissions(t *testing.T) {
	tests := []struct {
		mode    os.FileMode
		wantErr bool
	}{
		{0600, false},
		{0644, true},
		{0640, false},
		{0777, true},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			err := validation.FilePermissions(tt.mode)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
