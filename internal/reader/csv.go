package reader

import (
	"encoding/csv"
	"fmt"
	"os"

	"fjacquet/bank-budget/internal/logging"
	"fjacquet/bank-budget/internal/parsererror"
)

// Delimiter is the field separator of bank CSV exports.
const Delimiter = ';'

func readCSVRecords(path string, logger logging.Logger) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close file")
		}
	}()

	utf8Reader, encoding, err := newUTF8Reader(file)
	if err != nil {
		return nil, &parsererror.ParseError{Reader: "CSV", Field: "encoding", Value: path, Err: err}
	}
	logger.Debug("Detected file encoding", logging.Field{Key: logging.FieldEncoding, Value: encoding})

	r := csv.NewReader(utf8Reader)
	r.Comma = Delimiter
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, &parsererror.ParseError{Reader: "CSV", Field: "records", Value: path, Err: err}
	}
	return records, nil
}
