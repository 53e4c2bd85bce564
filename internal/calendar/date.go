package calendar

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the text form of a date: two-digit day, two-digit month,
// four-digit year.
const DateLayout = "02/01/2006"

// ErrInvalidDate reports unparseable or semantically invalid date text.
var ErrInvalidDate = errors.New("invalid date")

// ParseDate parses dd/mm/yyyy text into a midnight UTC date.
// Dates such as 31/02/2024 are rejected rather than normalised, and so is
// 01/01/0001, which is the zero time that stands for "no date".
func ParseDate(text string) (time.Time, error) {
	s := strings.TrimSpace(text)
	if len(s) != len(DateLayout) {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, text)
	}
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil || t.IsZero() {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, text)
	}
	return t, nil
}

// FormatDate renders d as dd/mm/yyyy. The zero date renders as "".
func FormatDate(d time.Time) string {
	if d.IsZero() {
		return ""
	}
	return Day(d).Format(DateLayout)
}

// Day truncates t to midnight UTC of its calendar date.
func Day(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of calendar days from a to b
// (negative when b is before a).
func DaysBetween(a, b time.Time) int {
	// Midnight UTC values are exact multiples of 24h apart.
	return int(Day(b).Sub(Day(a)).Hours() / 24)
}

// AddDays returns d shifted by n calendar days.
func AddDays(d time.Time, n int) time.Time {
	return Day(d).AddDate(0, 0, n)
}
