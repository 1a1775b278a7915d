package causelist

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// The court publishes and accepts list dates as localized DD-MM-YYYY
// strings; everything else in the system uses native time values.

// FormatListDate renders a date as zero-padded DD-MM-YYYY.
func FormatListDate(t time.Time) string {
	return fmt.Sprintf("%02d-%02d-%04d", t.Day(), int(t.Month()), t.Year())
}

// ParseListDate parses a DD-MM-YYYY string into a local calendar date.
// It accepts exactly three hyphen-separated numeric components and reports
// false on anything else. Calendar validity is deliberately not checked:
// consumers fall back to an alternate date field when parsing fails, and
// out-of-range components normalize per time.Date.
func ParseListDate(s string) (time.Time, bool) {
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return time.Time{}, false
	}
	day, err := strconv.Atoi(parts[0])
	if err != nil {
		return time.Time{}, false
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return time.Time{}, false
	}
	year, err := strconv.Atoi(parts[2])
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local), true
}
