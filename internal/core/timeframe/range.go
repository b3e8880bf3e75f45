package timeframe

import (
	"math"
	"strings"
	"time"

	ptime "trendspull/internal/platform/time"
)

// allSentinel is the canonical form of the unbounded range
const allSentinel = "all"

// Range is a resolved window: either unbounded or a closed date pair with Start <= End
// the zero value is not a valid range; use AllTimeRange or a resolver
type Range struct {
	Start time.Time
	End   time.Time
	all   bool
}

// AllTimeRange is the unbounded range
var AllTimeRange = Range{all: true}

// IsAll reports whether r is the unbounded range
func (r Range) IsAll() bool { return r.all }

// String returns the canonical form: "all" or "YYYY-MM-DD YYYY-MM-DD"
func (r Range) String() string {
	if r.all {
		return allSentinel
	}
	return ptime.FormatDate(r.Start) + " " + ptime.FormatDate(r.End)
}

// Days returns the inclusive number of calendar days in r, zero when unbounded
func (r Range) Days() int {
	if r.all {
		return 0
	}
	s := ptime.Day(r.Start)
	e := ptime.Day(r.End)
	return int(math.Round(e.Sub(s).Hours()/24)) + 1
}

// MarshalText writes the canonical form
func (r Range) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

// UnmarshalText parses the canonical form
func (r *Range) UnmarshalText(b []byte) error {
	v, err := ParseRange(string(b))
	if err != nil {
		return err
	}
	*r = v
	return nil
}

// ParseRange parses a canonical range string
// dates must be real and ordered; whitespace between them may be any run of spaces
func ParseRange(s string) (Range, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, allSentinel) {
		return AllTimeRange, nil
	}
	parts := strings.Fields(s)
	if len(parts) != 2 {
		return Range{}, invalid(ErrInvalidDate, "timeframe", "timeframe %q must be \"all\" or two dates", s)
	}
	start, err := ptime.ParseDate(parts[0])
	if err != nil {
		return Range{}, invalid(ErrInvalidDate, "timeframe", "timeframe start %q", parts[0])
	}
	end, err := ptime.ParseDate(parts[1])
	if err != nil {
		return Range{}, invalid(ErrInvalidDate, "timeframe", "timeframe end %q", parts[1])
	}
	if end.Before(start) {
		return Range{}, invalid(ErrInvalidDate, "timeframe", "timeframe %q ends before it starts", s)
	}
	return Range{Start: start, End: end}, nil
}

func span(a, b time.Time) Range {
	if b.Before(a) {
		a, b = b, a
	}
	return Range{Start: a, End: b}
}
