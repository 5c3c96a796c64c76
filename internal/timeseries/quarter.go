// Package timeseries converts heterogeneous provider time series (annual,
// quarterly, daily) into a uniform calendar-quarter axis.
package timeseries

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Key identifies one calendar quarter, e.g. "2024Q3".
type Key struct {
	Year    int
	Quarter int
}

// QuarterOf returns the calendar quarter (1-4) containing the given month.
func QuarterOf(month time.Month) int {
	return (int(month)-1)/3 + 1
}

// KeyFor returns the quarter key containing the given date.
func KeyFor(date time.Time) Key {
	return Key{Year: date.Year(), Quarter: QuarterOf(date.Month())}
}

// String formats the key as "{year}Q{quarter}".
func (k Key) String() string {
	return fmt.Sprintf("%dQ%d", k.Year, k.Quarter)
}

// Before reports whether k is strictly earlier than other.
func (k Key) Before(other Key) bool {
	if k.Year != other.Year {
		return k.Year < other.Year
	}
	return k.Quarter < other.Quarter
}

// ParseKey parses a "{year}Q{quarter}" label. The quarter digit must be 1-4.
func ParseKey(label string) (Key, error) {
	yearStr, quarterStr, found := strings.Cut(label, "Q")
	if !found {
		return Key{}, fmt.Errorf("invalid quarter key %q: missing Q separator", label)
	}

	if yearStr == "" || strings.IndexFunc(yearStr, func(r rune) bool { return r < '0' || r > '9' }) >= 0 {
		return Key{}, fmt.Errorf("invalid quarter key %q: bad year", label)
	}
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		return Key{}, fmt.Errorf("invalid quarter key %q: bad year", label)
	}

	if len(quarterStr) != 1 || quarterStr[0] < '1' || quarterStr[0] > '4' {
		return Key{}, fmt.Errorf("invalid quarter key %q: quarter must be 1-4", label)
	}

	return Key{Year: year, Quarter: int(quarterStr[0] - '0')}, nil
}
