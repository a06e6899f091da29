package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{name: "negative with comma", raw: "-4363,00", expected: "-4363"},
		{name: "explicit plus sign", raw: "+5000,00", expected: "5000"},
		{name: "period decimal", raw: "142000.00", expected: "142000"},
		{name: "wrapped in quotes", raw: `"-1000,50"`, expected: "-1000.5"},
		{name: "space thousands separator", raw: "-12 345,67", expected: "-12345.67"},
		{name: "nbsp thousands separator", raw: "-12\u00a0345,67", expected: "-12345.67"},
		{name: "empty", raw: "", expected: "0"},
		{name: "only quotes", raw: `""`, expected: "0"},
		{name: "malformed", raw: "abc", expected: "0"},
		{name: "two separators", raw: "1,000,50", expected: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseAmount(tt.raw)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.expected)),
				"ParseAmount(%q) = %s, want %s", tt.raw, got, tt.expected)
		})
	}
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		amount   string
		expected string
	}{
		{amount: "1000.0", expected: "1000"},
		{amount: "1000", expected: "1000"},
		{amount: "1234.5", expected: "1234,50"},
		{amount: "4363.00", expected: "4363"},
		{amount: "0.1", expected: "0,10"},
		{amount: "99.999", expected: "100,00"},
		{amount: "12.345", expected: "12,35"},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatAmount(decimal.RequireFromString(tt.amount)))
		})
	}
}
