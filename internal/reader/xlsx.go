package reader

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"fjacquet/bank-budget/internal/parsererror"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// xlsxDateLayout is what date cells are rendered as; NormalizeDate accepts it.
const xlsxDateLayout = "2006-01-02 15:04:05"

// builtInDateFormats are the built-in number format IDs that display dates or times.
var builtInDateFormats = map[int]struct{}{
	14: {}, 15: {}, 16: {}, 17: {}, 18: {}, 19: {}, 20: {}, 21: {}, 22: {},
	27: {}, 28: {}, 29: {}, 30: {}, 31: {}, 32: {}, 33: {}, 34: {}, 35: {}, 36: {},
	45: {}, 46: {}, 47: {},
	50: {}, 51: {}, 52: {}, 53: {}, 54: {}, 55: {}, 56: {}, 57: {}, 58: {},
}

// readXLSXRecords returns the rows of the first sheet, header first. Cells are
// read by value rather than by display text: numbers come back as plain
// decimals and date-styled numbers as YYYY-MM-DD HH:MM:SS.
func readXLSXRecords(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("error opening XLSX file: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &parsererror.ParseError{Reader: "XLSX", Field: "sheet", Value: path, Err: errors.New("workbook has no sheets")}
	}
	sheet := sheets[0]

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, &parsererror.ParseError{Reader: "XLSX", Field: "rows", Value: sheet, Err: err}
	}

	date1904 := false
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		date1904 = *props.Date1904
	}

	for r, row := range rows {
		for c, raw := range row {
			if raw == "" {
				continue
			}
			axis, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return nil, &parsererror.ParseError{Reader: "XLSX", Field: "cell", Value: raw, Err: err}
			}
			value, err := xlsxCellText(f, sheet, axis, raw, date1904)
			if err != nil {
				return nil, &parsererror.ParseError{Reader: "XLSX", Field: axis, Value: raw, Err: err}
			}
			row[c] = value
		}
	}
	return rows, nil
}

// xlsxCellText renders one raw cell value as the text a CSV export would hold.
func xlsxCellText(f *excelize.File, sheet, axis, raw string, date1904 bool) (string, error) {
	cellType, err := f.GetCellType(sheet, axis)
	if err != nil {
		return "", err
	}

	switch cellType {
	case excelize.CellTypeDate:
		if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
			return t.Format(xlsxDateLayout), nil
		}
		return raw, nil
	case excelize.CellTypeUnset, excelize.CellTypeNumber:
	default:
		return raw, nil
	}

	serial, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return raw, nil
	}

	styleID, err := f.GetCellStyle(sheet, axis)
	if err != nil {
		return "", err
	}
	style, err := f.GetStyle(styleID)
	if err != nil {
		return "", err
	}

	if isDateFormat(style) {
		t, err := excelize.ExcelDateToTime(serial, date1904)
		if err != nil {
			return "", err
		}
		return t.Round(time.Second).Format(xlsxDateLayout), nil
	}

	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.NewFromFloat(serial).String(), nil
	}
	return d.String(), nil
}

// isDateFormat reports whether a cell style displays its number as a date.
func isDateFormat(style *excelize.Style) bool {
	if style == nil {
		return false
	}
	if style.CustomNumFmt == nil {
		_, ok := builtInDateFormats[style.NumFmt]
		return ok
	}
	return strings.ContainsAny(stripFormatLiterals(strings.ToLower(*style.CustomNumFmt)), "ydhs")
}

// stripFormatLiterals drops quoted text, escaped characters and bracketed
// sections such as [Red] or [$-419] from a number format code.
func stripFormatLiterals(code string) string {
	var b strings.Builder
	quoted, bracket, escaped := false, false, false
	for _, r := range code {
		switch {
		case escaped:
			escaped = false
		case quoted:
			quoted = r != '"'
		case bracket:
			bracket = r != ']'
		case r == '\\':
			escaped = true
		case r == '"':
			quoted = true
		case r == '[':
			bracket = true
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
