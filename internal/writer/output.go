// Package writer orders classified transactions into the income and expense
// sections of a budget sheet and renders them as CSV or clipboard text.
package writer

import (
	"fmt"
	"slices"
	"strings"

	"fjacquet/bank-budget/internal/dateutils"
	"fjacquet/bank-budget/internal/models"
)

// OrderedOutput holds both sections, each sorted ascending by date.
type OrderedOutput struct {
	Income  []models.NormalizedTransaction
	Expense []models.NormalizedTransaction
}

// Format partitions txs by kind and stable-sorts each section by the
// structural date key. Rows with unparseable dates sort first; rows with
// equal keys keep their input order.
func Format(txs []models.NormalizedTransaction) OrderedOutput {
	out := OrderedOutput{
		Income:  make([]models.NormalizedTransaction, 0),
		Expense: make([]models.NormalizedTransaction, 0),
	}
	for _, tx := range txs {
		if tx.IsIncome() {
			out.Income = append(out.Income, tx)
		} else {
			out.Expense = append(out.Expense, tx)
		}
	}

	byDate := func(a, b models.NormalizedTransaction) int {
		return dateutils.SortKey(a.Date).Compare(dateutils.SortKey(b.Date))
	}
	slices.SortStableFunc(out.Income, byDate)
	slices.SortStableFunc(out.Expense, byDate)

	return out
}

// Section returns the transactions of one kind.
func (o OrderedOutput) Section(kind models.TransactionKind) []models.NormalizedTransaction {
	if kind == models.KindIncome {
		return o.Income
	}
	return o.Expense
}

// Len returns the total number of rows in both sections.
func (o OrderedOutput) Len() int {
	return len(o.Income) + len(o.Expense)
}

// Row is one output line with the amount already formatted.
type Row struct {
	Owner   string `csv:"Чей"`
	Date    string `csv:"Дата"`
	Amount  string `csv:"Сумма"`
	Purpose string `csv:"Назначение"`
	Tag     string `csv:"Тег"`
	Comment string `csv:"Комментарий"`
}

// NewRow formats a transaction for output.
func NewRow(tx models.NormalizedTransaction) Row {
	return Row{
		Owner:   tx.Owner,
		Date:    tx.Date,
		Amount:  models.FormatAmount(tx.Amount),
		Purpose: tx.Purpose,
		Tag:     tx.Tag,
		Comment: tx.Comment,
	}
}

// Fields returns the row values in header order.
func (r Row) Fields() []string {
	return []string{r.Owner, r.Date, r.Amount, r.Purpose, r.Tag, r.Comment}
}

// Rows returns the formatted rows of one section.
func (o OrderedOutput) Rows(kind models.TransactionKind) []Row {
	section := o.Section(kind)
	rows := make([]Row, 0, len(section))
	for _, tx := range section {
		rows = append(rows, NewRow(tx))
	}
	return rows
}

// SectionTitle returns the title printed above a section.
func SectionTitle(kind models.TransactionKind) string {
	if kind == models.KindIncome {
		return models.SectionTitleIncome
	}
	return models.SectionTitleExpense
}

// ClipboardSection selects what ClipboardText renders.
type ClipboardSection string

const (
	// SectionAll renders both sections with titles and headers.
	SectionAll ClipboardSection = "all"
	// SectionIncome renders the income data rows only.
	SectionIncome ClipboardSection = "income"
	// SectionExpense renders the expense data rows only.
	SectionExpense ClipboardSection = "expense"
)

// ParseClipboardSection validates a section name.
func ParseClipboardSection(s string) (ClipboardSection, error) {
	switch ClipboardSection(strings.ToLower(strings.TrimSpace(s))) {
	case SectionAll:
		return SectionAll, nil
	case SectionIncome:
		return SectionIncome, nil
	case SectionExpense:
		return SectionExpense, nil
	default:
		return "", fmt.Errorf("unknown clipboard section %q (expected all, income or expense)", s)
	}
}

// ClipboardText renders tab separated text for pasting into a spreadsheet.
func ClipboardText(out OrderedOutput, section ClipboardSection) string {
	var lines []string

	switch section {
	case SectionIncome:
		lines = appendRows(lines, out.Rows(models.KindIncome))
	case SectionExpense:
		lines = appendRows(lines, out.Rows(models.KindExpense))
	default:
		header := strings.Join(models.OutputHeaders, "\t")
		lines = append(lines, models.SectionTitleIncome, header)
		lines = appendRows(lines, out.Rows(models.KindIncome))
		lines = append(lines, "", "")
		lines = append(lines, models.SectionTitleExpense, header)
		lines = appendRows(lines, out.Rows(models.KindExpense))
	}

	return strings.Join(lines, "\n")
}

func appendRows(lines []string, rows []Row) []string {
	for _, r := range rows {
		lines = append(lines, strings.Join(r.Fields(), "\t"))
	}
	return lines
}
