// Package reader loads bank exports (semicolon separated CSV or XLSX) into
// raw transactions. Values are trimmed and unquoted; no other interpretation
// happens here.
package reader

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"fjacquet/bank-budget/internal/logging"
	"fjacquet/bank-budget/internal/models"
	"fjacquet/bank-budget/internal/parsererror"

	"github.com/gocarina/gocsv"
)

// Supported input extensions
const (
	ExtCSV  = ".csv"
	ExtXLSX = ".xlsx"
)

// RequiredColumn must be present in the header of every export.
const RequiredColumn = "Дата операции"

// Reader reads bank export files.
type Reader struct {
	logger logging.Logger
}

// NewReader creates a Reader.
func NewReader(logger logging.Logger) *Reader {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &Reader{logger: logger}
}

// ReadTransactions reads the export at path, dispatching on the extension.
// Rows without an operation date are skipped.
func (r *Reader) ReadTransactions(path string) ([]models.RawTransaction, error) {
	ext := strings.ToLower(filepath.Ext(path))
	logger := r.logger.WithFields(
		logging.Field{Key: logging.FieldInputFile, Value: path},
		logging.Field{Key: logging.FieldFormat, Value: ext},
	)

	var (
		records [][]string
		err     error
	)
	switch ext {
	case ExtCSV:
		records, err = readCSVRecords(path, logger)
	case ExtXLSX:
		records, err = readXLSXRecords(path)
	default:
		return nil, &parsererror.UnsupportedFormatError{FilePath: path, Extension: ext}
	}
	if err != nil {
		logger.WithError(err).Error("Failed to read bank export")
		return nil, err
	}

	txs, err := decodeRecords(path, records)
	if err != nil {
		logger.WithError(err).Error("Failed to decode bank export")
		return nil, err
	}

	logger.Info("Read bank export", logging.Field{Key: logging.FieldCount, Value: len(txs)})
	return txs, nil
}

// cleanValue strips surrounding whitespace and double quotes.
func cleanValue(v string) string {
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(v), `"`))
}

// decodeRecords maps header-named records onto RawTransaction with gocsv.
// records[0] is the header.
func decodeRecords(path string, records [][]string) ([]models.RawTransaction, error) {
	if len(records) == 0 {
		return nil, &parsererror.InvalidFormatError{
			FilePath:       path,
			ExpectedFormat: "bank export with a header row",
			Msg:            "file is empty",
		}
	}

	header := make([]string, len(records[0]))
	for i, h := range records[0] {
		header[i] = cleanValue(h)
		if header[i] == "" {
			// gocsv rejects repeated header names
			header[i] = fmt.Sprintf("column_%d", i+1)
		}
	}
	if !slices.Contains(header, RequiredColumn) {
		return nil, &parsererror.InvalidFormatError{
			FilePath:             path,
			ExpectedFormat:       "bank export with a header row",
			ActualContentSnippet: snippet(strings.Join(header, ";")),
			Msg:                  fmt.Sprintf("missing column '%s'", RequiredColumn),
		}
	}

	// Re-encode the cleaned table so gocsv can bind columns by header name.
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, rec := range records[1:] {
		row := make([]string, len(header))
		blank := true
		for i := range row {
			if i < len(rec) {
				row[i] = cleanValue(rec[i])
			}
			if row[i] != "" {
				blank = false
			}
		}
		if blank {
			continue
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	var rows []models.RawTransaction
	if err := gocsv.UnmarshalCSV(csv.NewReader(&buf), &rows); err != nil {
		return nil, &parsererror.ParseError{Reader: "CSV", Field: "rows", Value: filepath.Base(path), Err: err}
	}

	txs := make([]models.RawTransaction, 0, len(rows))
	for _, row := range rows {
		if row.OperationDate == "" {
			continue
		}
		txs = append(txs, row)
	}
	return txs, nil
}

func snippet(s string) string {
	const limit = 80
	if r := []rune(s); len(r) > limit {
		return string(r[:limit]) + "..."
	}
	return s
}
