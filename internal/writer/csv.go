package writer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"fjacquet/bank-budget/internal/logging"
	"fjacquet/bank-budget/internal/models"

	"github.com/gocarina/gocsv"
)

// DefaultDelimiter separates output CSV fields unless configured otherwise.
const DefaultDelimiter = ','

// CSVWriter writes the two-section budget CSV.
type CSVWriter struct {
	delimiter rune
	logger    logging.Logger
}

// NewCSVWriter creates a CSVWriter. A zero delimiter selects DefaultDelimiter.
func NewCSVWriter(delimiter rune, logger logging.Logger) *CSVWriter {
	if delimiter == 0 {
		delimiter = DefaultDelimiter
	}
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &CSVWriter{delimiter: delimiter, logger: logger}
}

// WriteFile writes out to path, creating the parent directory if needed.
func (w *CSVWriter) WriteFile(out OrderedOutput, path string) error {
	logger := w.logger.WithField(logging.FieldOutputFile, path)

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, models.PermissionDirectory); err != nil {
			return fmt.Errorf("error creating directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close file")
		}
	}()

	if err := w.Write(out, file); err != nil {
		logger.WithError(err).Error("Failed to write budget CSV")
		return err
	}

	logger.Info("Wrote budget CSV",
		logging.Field{Key: "income", Value: len(out.Income)},
		logging.Field{Key: "expense", Value: len(out.Expense)},
	)
	return nil
}

// Write renders the income section, two blank rows, then the expense section.
// Each section starts with its title row and the column header row.
func (w *CSVWriter) Write(out OrderedOutput, dst io.Writer) error {
	csvWriter := csv.NewWriter(dst)
	csvWriter.Comma = w.delimiter
	safe := gocsv.NewSafeCSVWriter(csvWriter)

	if err := w.writeSection(safe, models.KindIncome, out); err != nil {
		return err
	}
	for range 2 {
		if err := safe.Write([]string{""}); err != nil {
			return fmt.Errorf("error writing CSV data: %w", err)
		}
	}
	if err := w.writeSection(safe, models.KindExpense, out); err != nil {
		return err
	}

	safe.Flush()
	return safe.Error()
}

func (w *CSVWriter) writeSection(safe *gocsv.SafeCSVWriter, kind models.TransactionKind, out OrderedOutput) error {
	if err := safe.Write([]string{SectionTitle(kind)}); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}
	if err := safe.Write(models.OutputHeaders); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}

	rows := out.Rows(kind)
	if len(rows) == 0 {
		return nil
	}
	if err := gocsv.MarshalCSVWithoutHeaders(rows, safe); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}
	return nil
}
