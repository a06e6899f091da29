package dateutils

import (
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"European format unchanged", "27.12.2025", "27.12.2025"},
		{"European with time", "27.12.2025 14:03:11", "27.12.2025"},
		{"ISO format", "2025-12-28", "28.12.2025"},
		{"ISO with time", "2025-12-28 08:00:00", "28.12.2025"},
		{"Quoted", `"05.12.2025"`, "05.12.2025"},
		{"Surrounding whitespace", "  01.01.2026 ", "01.01.2026"},
		{"Empty", "", ""},
		{"Whitespace only", "   ", ""},
		{"Unknown format left as is", "Dec 5, 2025", "Dec"},
		{"Two dash parts left as is", "2025-12", "2025-12"},
		{"Garbage", "not-a-real-date-at-all", "not-a-real-date-at-all"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeDate(tt.input))
		})
	}
}

func TestSortKey(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected DateKey
	}{
		{"valid", "27.12.2025", DateKey{2025, 12, 27}},
		{"no leading zeros", "5.1.2026", DateKey{2026, 1, 5}},
		{"empty", "", DateKey{}},
		{"ISO is not recognized", "2025-12-27", DateKey{}},
		{"non-numeric", "aa.bb.cccc", DateKey{}},
		{"too many parts", "01.02.03.2025", DateKey{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SortKey(tt.input))
		})
	}
}

func TestDateKey_OrdersStructurally(t *testing.T) {
	dates := []string{"01.01.2026", "27.12.2025", "05.12.2025"}

	slices.SortFunc(dates, func(a, b string) int {
		return SortKey(a).Compare(SortKey(b))
	})

	// A lexical sort would put 01.01.2026 first.
	assert.Equal(t, []string{"05.12.2025", "27.12.2025", "01.01.2026"}, dates)
}

func TestDateKey_Compare(t *testing.T) {
	a := DateKey{2025, 12, 27}

	assert.Equal(t, 0, a.Compare(DateKey{2025, 12, 27}))
	assert.Equal(t, -1, a.Compare(DateKey{2026, 1, 1}))
	assert.Equal(t, 1, a.Compare(DateKey{2025, 12, 26}))
	assert.Equal(t, 1, a.Compare(DateKey{2025, 11, 30}))
	assert.Equal(t, 1, a.Compare(DateKey{}))
}

func TestDateKey_Time(t *testing.T) {
	tm, ok := DateKey{2025, 12, 27}.Time()
	assert.True(t, ok)
	assert.Equal(t, time.Date(2025, time.December, 27, 0, 0, 0, 0, time.UTC), tm)

	_, ok = DateKey{2025, 2, 31}.Time()
	assert.False(t, ok)

	_, ok = DateKey{}.Time()
	assert.False(t, ok)
}
