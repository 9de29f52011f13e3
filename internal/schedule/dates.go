package schedule

import (
	"errors"
	"fmt"
	"time"
)

// DateLayout is the canonical wire form for calendar dates. All comparisons
// in this package are string comparisons over this form, never time.Time
// identity, so a timestamp suffix or timezone drift cannot split a day.
const DateLayout = "2006-01-02"

var ErrInvalidRange = errors.New("end date is before start date")

// CanonicalDate reduces a core-API date value to YYYY-MM-DD. The upstream
// sometimes appends a time component (RFC3339); the date prefix wins.
func CanonicalDate(s string) string {
	if len(s) >= len(DateLayout) {
		prefix := s[:len(DateLayout)]
		if _, err := time.Parse(DateLayout, prefix); err == nil {
			return prefix
		}
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.Format(DateLayout)
	}
	return s
}

// ParseDate parses a canonical date string.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, CanonicalDate(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// ExpandRange lists every calendar date in [start, end] inclusive, at day
// granularity. end before start is ErrInvalidRange; equal dates yield one
// entry.
func ExpandRange(start, end string) ([]string, error) {
	from, err := ParseDate(start)
	if err != nil {
		return nil, err
	}
	to, err := ParseDate(end)
	if err != nil {
		return nil, err
	}
	if to.Before(from) {
		return nil, ErrInvalidRange
	}

	var dates []string
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format(DateLayout))
	}
	return dates, nil
}

// MonthDates returns the ordered canonical dates of one month, with no
// spill-over from adjacent months. Month is 1-12 as in time.Month.
func MonthDates(year int, month time.Month) []string {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	var dates []string
	for d := first; d.Month() == month; d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format(DateLayout))
	}
	return dates
}

// LeadingBlanks is the number of filler cells before day 1 when weeks start
// on Sunday.
func LeadingBlanks(year int, month time.Month) int {
	return int(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Weekday())
}

// IsToday compares a date against now by canonical string, avoiding
// timezone-dependent Date equality.
func IsToday(date string, now time.Time) bool {
	return CanonicalDate(date) == now.Format(DateLayout)
}

// Weekday returns the 0-6 weekday (0=Sunday) of a canonical date, or -1 when
// the date does not parse.
func Weekday(date string) int {
	t, err := ParseDate(date)
	if err != nil {
		return -1
	}
	return int(t.Weekday())
}
