// Package parsererror defines the typed errors returned at the I/O
// boundaries: reading bank exports and persisting mappings. Malformed
// values inside a well-formed export are never errors; the classification
// engine drops or tags them instead.
package parsererror

import "fmt"

// ParseError represents a file that could be opened but not decoded.
type ParseError struct {
	Reader string
	Field  string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: failed to parse %s='%s': %v",
		e.Reader, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// InvalidFormatError represents an error where the input file does not conform
// to the expected export layout.
type InvalidFormatError struct {
	FilePath             string
	ExpectedFormat       string
	ActualContentSnippet string // Optional: a snippet of the actual content for debugging
	Msg                  string
}

func (e *InvalidFormatError) Error() string {
	if e.ActualContentSnippet != "" {
		return fmt.Sprintf("invalid format in file '%s': %s. Expected: %s. Content snippet: '%s'",
			e.FilePath, e.Msg, e.ExpectedFormat, e.ActualContentSnippet)
	}
	return fmt.Sprintf("invalid format in file '%s': %s. Expected: %s",
		e.FilePath, e.Msg, e.ExpectedFormat)
}

// UnsupportedFormatError is returned for input files with an unknown extension.
type UnsupportedFormatError struct {
	FilePath  string
	Extension string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported input format '%s' for file '%s' (expected .csv or .xlsx)",
		e.Extension, e.FilePath)
}

// StoreError wraps a failure to read or write the mapping store.
type StoreError struct {
	Path string
	Op   string // "load" or "save"
	Err  error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("mapping store %s failed for '%s': %v", e.Op, e.Path, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
