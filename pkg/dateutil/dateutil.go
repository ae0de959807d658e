package dateutil

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar date format accepted in plan files.
const DateLayout = "2006-01-02"

// ParseDate parses a plan date such as "2026-01-01".
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", s, err)
	}
	return t, nil
}

// FullYearsBetween counts the whole years elapsed from one date to another.
// A year is complete on its anniversary day.
func FullYearsBetween(from, to time.Time) int {
	years := to.Year() - from.Year()
	if to.Month() < from.Month() ||
		(to.Month() == from.Month() && to.Day() < from.Day()) {
		years--
	}
	return years
}

// AddYears adds a specified number of years to a date
func AddYears(date time.Time, years int) time.Time {
	return date.AddDate(years, 0, 0)
}

// PeriodEnd returns the last day of the n-th year counted from start.
func PeriodEnd(start time.Time, years int) time.Time {
	return AddYears(start, years).AddDate(0, 0, -1)
}
