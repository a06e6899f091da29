package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

const nbsp = "\u00a0"

// amountCleaner removes the grouping characters banks put in amounts.
var amountCleaner = strings.NewReplacer(",", ".", " ", "", nbsp, "")

// ParseAmount converts a bank-formatted amount such as "-4 363,00" or
// "\"142000.00\"" to a signed decimal. Empty or malformed input yields zero,
// which downstream code treats as "drop this row".
func ParseAmount(raw string) decimal.Decimal {
	cleaned := amountCleaner.Replace(strings.Trim(raw, `"`))
	if cleaned == "" {
		return decimal.Zero
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// FormatAmount renders an amount for the budget sheet: a bare integer when
// there is no fractional part, otherwise two digits after a comma.
func FormatAmount(d decimal.Decimal) string {
	whole := d.Truncate(0)
	if d.Equal(whole) {
		return whole.String()
	}
	return strings.Replace(d.StringFixed(2), ".", ",", 1)
}
