package models

import (
	"fjacquet/bank-budget/internal/logging"
)

// DropReason explains why a raw transaction did not make it to the output.
type DropReason string

const (
	DropStatus     DropReason = "status"
	DropSkipList   DropReason = "skip_list"
	DropZeroAmount DropReason = "zero_amount"
)

// ConversionStats tracks what happened to the rows of one conversion pass.
type ConversionStats struct {
	Total      int                // Raw rows seen
	Income     int                // Rows emitted to the income bucket
	Expense    int                // Rows emitted to the expense bucket
	Unknown    int                // Emitted rows tagged with the unknown tag
	Unresolved int                // Distinct unresolved mappings recorded
	Dropped    map[DropReason]int // Rows dropped, by reason
}

// NewConversionStats creates an empty ConversionStats.
func NewConversionStats() *ConversionStats {
	return &ConversionStats{Dropped: make(map[DropReason]int)}
}

// Drop records a dropped row.
func (cs *ConversionStats) Drop(reason DropReason) {
	cs.Dropped[reason]++
}

// Kept returns the number of emitted rows.
func (cs ConversionStats) Kept() int {
	return cs.Income + cs.Expense
}

// ResolvedRate is the share of emitted rows that got a real tag, in percent.
func (cs ConversionStats) ResolvedRate() float64 {
	if cs.Kept() == 0 {
		return 0.0
	}
	return float64(cs.Kept()-cs.Unknown) / float64(cs.Kept()) * 100.0
}

// LogSummary logs a summary of the pass.
func (cs ConversionStats) LogSummary(logger logging.Logger) {
	if logger == nil {
		return
	}

	logger.Info("Conversion summary",
		logging.Field{Key: "total", Value: cs.Total},
		logging.Field{Key: "income", Value: cs.Income},
		logging.Field{Key: "expense", Value: cs.Expense},
		logging.Field{Key: "unknown", Value: cs.Unknown},
		logging.Field{Key: "unresolved", Value: cs.Unresolved},
		logging.Field{Key: "dropped_status", Value: cs.Dropped[DropStatus]},
		logging.Field{Key: "dropped_skip_list", Value: cs.Dropped[DropSkipList]},
		logging.Field{Key: "dropped_zero_amount", Value: cs.Dropped[DropZeroAmount]},
		logging.Field{Key: "resolved_rate", Value: cs.ResolvedRate()},
	)
}
