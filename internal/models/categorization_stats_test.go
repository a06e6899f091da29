package models

import (
	"testing"

	"fjacquet/bank-budget/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConversionStats(t *testing.T) {
	stats := NewConversionStats()
	stats.Total = 6
	stats.Income = 1
	stats.Expense = 3
	stats.Unknown = 1
	stats.Drop(DropStatus)
	stats.Drop(DropZeroAmount)

	assert.Equal(t, 4, stats.Kept())
	assert.InDelta(t, 75.0, stats.ResolvedRate(), 0.001)
	assert.Equal(t, 1, stats.Dropped[DropStatus])
	assert.Equal(t, 0, stats.Dropped[DropSkipList])
}

func TestConversionStats_EmptyRate(t *testing.T) {
	assert.Equal(t, 0.0, NewConversionStats().ResolvedRate())
}

func TestConversionStats_LogSummary(t *testing.T) {
	logger := logging.NewMockLogger()
	stats := NewConversionStats()
	stats.Total = 2
	stats.Drop(DropSkipList)

	stats.LogSummary(logger)

	require.True(t, logger.HasEntry("INFO", "Conversion summary"))
	v, ok := logger.FieldValue("Conversion summary", "dropped_skip_list")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	assert.NotPanics(t, func() { stats.LogSummary(nil) })
}
