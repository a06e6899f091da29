// Package models provides the data structures used throughout the application.
package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// RawTransaction is one row of a bank export, exactly as read from the file.
// Only OperationDate, Status, Amount, Category and Description take part in
// classification; the other columns are carried for previews.
type RawTransaction struct {
	OperationDate string `csv:"Дата операции"`
	PaymentDate   string `csv:"Дата платежа"`
	CardNumber    string `csv:"Номер карты"`
	Status        string `csv:"Статус"`
	Amount        string `csv:"Сумма операции"`
	Currency      string `csv:"Валюта операции"`
	Category      string `csv:"Категория"`
	MCC           string `csv:"MCC"`
	Description   string `csv:"Описание"`
}

// TransactionKind is the budget bucket a transaction lands in.
type TransactionKind int

const (
	KindExpense TransactionKind = iota
	KindIncome
)

// String returns the lowercase name of the kind.
func (k TransactionKind) String() string {
	switch k {
	case KindIncome:
		return "income"
	case KindExpense:
		return "expense"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// NormalizedTransaction is a classified budget record. Amount is always
// strictly positive; the sign has been folded into Kind.
type NormalizedTransaction struct {
	Owner   string
	Date    string // DD.MM.YYYY
	Amount  decimal.Decimal
	Purpose string
	Tag     string
	Comment string
	Kind    TransactionKind
}

// IsIncome reports whether the transaction belongs to the income bucket.
func (t NormalizedTransaction) IsIncome() bool {
	return t.Kind == KindIncome
}
