// Package validation checks command line paths before any work starts.
package validation

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fjacquet/bank-budget/internal/parsererror"
	"fjacquet/bank-budget/internal/reader"
)

// InputFile checks that path is an existing regular file with a supported
// export extension.
func InputFile(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("input file does not exist: %s", path)
	}
	if err != nil {
		return fmt.Errorf("error checking path %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("input path %s is not a regular file", path)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case reader.ExtCSV, reader.ExtXLSX:
		return nil
	default:
		return &parsererror.UnsupportedFormatError{FilePath: path, Extension: ext}
	}
}

// OutputFile checks that path names a .csv file that is not a directory.
// The file itself may not exist yet.
func OutputFile(path string) error {
	if ext := strings.ToLower(filepath.Ext(path)); ext != ".csv" {
		return fmt.Errorf("output file must have a .csv extension: %s", path)
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("error checking path %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("output path %s is a directory", path)
	}
	return nil
}

// FilePermissions reports whether mode gives any access to other users.
// The mapping file holds personal data and should not be world readable.
func FilePermissions(mode os.FileMode) error {
	if mode.Perm()&0007 != 0 {
		return fmt.Errorf("file permissions are too permissive: %s. Recommended 0600 or 0640", mode.Perm())
	}
	return nil
}
