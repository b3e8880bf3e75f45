package timeframe

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	ptime "trendspull/internal/platform/time"
)

// Unit names a calendar unit used by whole and relative selections
type Unit string

// Known units; whole selections only accept Years and Months
const (
	Days   Unit = "days"
	Weeks  Unit = "weeks"
	Months Unit = "months"
	Years  Unit = "years"
)

// Spec is a range selection; the concrete types below are the only implementations
type Spec interface {
	Mode() Mode
	sealed()
}

// All selects the unbounded range
type All struct{}

// Whole selects one calendar year, or with Unit Months the month ending on the
// first day of Year-Month
type Whole struct {
	Unit  Unit
	Year  int
	Month int
}

// Relative selects Count units before today through today
type Relative struct {
	Unit  Unit
	Count int
}

// Explicit selects the closed range between two dates given in any order
type Explicit struct {
	From Date
	To   Date
}

// Date is an unvalidated calendar triple
type Date struct {
	Year  int
	Month int
	Day   int
}

// Mode implements Spec
func (All) Mode() Mode { return AllTime }

// Mode implements Spec
func (Whole) Mode() Mode { return WholeUnit }

// Mode implements Spec
func (Relative) Mode() Mode { return RelativeToToday }

// Mode implements Spec
func (Explicit) Mode() Mode { return ExplicitRange }

func (All) sealed()      {}
func (Whole) sealed()    {}
func (Relative) sealed() {}
func (Explicit) sealed() {}

// WholeYear selects Jan 1 through Dec 31 of year
func WholeYear(year int) Whole { return Whole{Unit: Years, Year: year} }

// WholeMonth selects the month ending on the first day of year-month
func WholeMonth(year, month int) Whole { return Whole{Unit: Months, Year: year, Month: month} }

// Ago selects count units before today through today
func Ago(unit Unit, count int) Relative { return Relative{Unit: unit, Count: count} }

// Between selects the closed range between a and b
func Between(a, b Date) Explicit { return Explicit{From: a, To: b} }

// D is shorthand for a Date literal
func D(year, month, day int) Date { return Date{Year: year, Month: month, Day: day} }

// Valid reports whether d names a real calendar date
func (d Date) Valid() bool { return ptime.ValidDate(d.Year, d.Month, d.Day) }

// Time returns d as UTC midnight; callers must check Valid first
func (d Date) Time() time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
}

// String renders d as YYYY-MM-DD without validating it
func (d Date) String() string { return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day) }

// ParseDate splits YYYY-MM-DD into a triple
// calendar validity is checked at resolution so 2023-02-30 parses here
func ParseDate(s string) (Date, error) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 3 {
		return Date{}, invalid(ErrInvalidDate, "date", "date %q must be YYYY-MM-DD", s)
	}
	var nums [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || p == "" || p[0] == '+' || p[0] == '-' {
			return Date{}, invalid(ErrInvalidDate, "date", "date %q must be YYYY-MM-DD", s)
		}
		nums[i] = n
	}
	return Date{Year: nums[0], Month: nums[1], Day: nums[2]}, nil
}
