// Package time contains calendar helpers shared by range resolution and table reshaping
package time

import (
	"fmt"
	"time"
)

// DateLayout is the wire layout for calendar dates
const DateLayout = "2006-01-02"

// Day truncates t to midnight in its own location
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// FirstOfMonth returns the first day of t's month at midnight
func FirstOfMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}

// DaysIn returns the number of days in the given month
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ValidDate reports whether year, month and day name a real calendar date
// years are bounded to 1..9999 so every date fits the four digit layout
func ValidDate(year, month, day int) bool {
	if year < 1 || year > 9999 {
		return false
	}
	if month < 1 || month > 12 {
		return false
	}
	return day >= 1 && day <= DaysIn(year, time.Month(month))
}

// AddMonths shifts t by n calendar months and clamps the day to the target month
// so Mar 31 minus one month is the last day of February rather than early March
func AddMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	target := time.Date(y, m+time.Month(n), 1, 0, 0, 0, 0, t.Location())
	if last := DaysIn(target.Year(), target.Month()); d > last {
		d = last
	}
	hh, mm, ss := t.Clock()
	return time.Date(target.Year(), target.Month(), d, hh, mm, ss, t.Nanosecond(), t.Location())
}

// AddYears shifts t by n calendar years with the same clamping as AddMonths
func AddYears(t time.Time, n int) time.Time { return AddMonths(t, 12*n) }

// FormatDate renders t as YYYY-MM-DD in its own location
func FormatDate(t time.Time) string { return t.Format(DateLayout) }

// ParseDate parses YYYY-MM-DD as a UTC midnight
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t, nil
}
