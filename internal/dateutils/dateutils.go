// Package dateutils provides the date handling used by the reader and the
// output writer. Dates travel through the application as DD.MM.YYYY strings;
// they are never converted to time.Time so that unparseable values survive
// untouched.
package dateutils

import (
	"strconv"
	"strings"
	"time"
)

// Date layouts seen in bank exports
const (
	DateLayoutISO      = "2006-01-02"
	DateLayoutEuropean = "02.01.2006"
	DateLayoutFull     = "02.01.2006 15:04:05"
)

// NormalizeDate converts a raw export date to DD.MM.YYYY.
//
// Supported inputs are DD.MM.YYYY, DD.MM.YYYY HH:MM:SS and YYYY-MM-DD.
// Anything else is returned trimmed but otherwise unchanged.
func NormalizeDate(raw string) string {
	date := CleanDateString(raw)
	if date == "" {
		return ""
	}

	// Drop a time component
	if i := strings.IndexByte(date, ' '); i >= 0 {
		date = date[:i]
	}

	if strings.Contains(date, "-") {
		parts := strings.Split(date, "-")
		if len(parts) == 3 {
			return parts[2] + "." + parts[1] + "." + parts[0]
		}
	}

	return date
}

// CleanDateString trims surrounding whitespace and double quotes.
func CleanDateString(raw string) string {
	return strings.Trim(strings.TrimSpace(raw), `"`)
}

// DateKey is a structural (year, month, day) sort key.
type DateKey struct {
	Year  int
	Month int
	Day   int
}

// SortKey splits a DD.MM.YYYY date into a DateKey. Empty or malformed dates
// yield the zero key and therefore sort first.
func SortKey(date string) DateKey {
	if date == "" {
		return DateKey{}
	}

	parts := strings.Split(date, ".")
	if len(parts) != 3 {
		return DateKey{}
	}

	day, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return DateKey{}
	}
	month, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return DateKey{}
	}
	year, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil {
		return DateKey{}
	}

	return DateKey{Year: year, Month: month, Day: day}
}

// Compare returns -1, 0 or 1 comparing by year, then month, then day.
func (k DateKey) Compare(other DateKey) int {
	switch {
	case k.Year != other.Year:
		return cmpInt(k.Year, other.Year)
	case k.Month != other.Month:
		return cmpInt(k.Month, other.Month)
	default:
		return cmpInt(k.Day, other.Day)
	}
}

// IsZero reports whether the key came from an empty or malformed date.
func (k DateKey) IsZero() bool {
	return k == DateKey{}
}

// Time converts the key to a UTC date, for display only.
func (k DateKey) Time() (time.Time, bool) {
	if k.IsZero() {
		return time.Time{}, false
	}
	t := time.Date(k.Year, time.Month(k.Month), k.Day, 0, 0, 0, 0, time.UTC)
	if t.Day() != k.Day || int(t.Month()) != k.Month {
		return time.Time{}, false
	}
	return t, true
}

func cmpInt(a, b int) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}
