package timeframe

import (
	"time"

	"trendspull/internal/platform/logger"
	ptime "trendspull/internal/platform/time"
)

// Resolver resolves selections against a clock
// safe for concurrent use; it holds no mutable state
type Resolver struct {
	now func() time.Time
	log *logger.Logger
}

// Option configures a Resolver
type Option func(*Resolver)

// WithClock sets the clock used for relative selections
func WithClock(now func() time.Time) Option {
	return func(r *Resolver) {
		if now != nil {
			r.now = now
		}
	}
}

// WithLogger sets the logger that receives fallback diagnostics
func WithLogger(l *logger.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.log = l
		}
	}
}

// New returns a Resolver reading the system clock unless overridden
func New(opts ...Option) *Resolver {
	r := &Resolver{now: time.Now}
	for _, o := range opts {
		o(r)
	}
	if r.log == nil {
		r.log = logger.Named("timeframe")
	}
	return r
}

// Resolve resolves s against the resolver's clock
func (r *Resolver) Resolve(s Spec) (Range, error) { return r.ResolveAt(s, r.now()) }

// ResolveRequest builds the selection from its wire form and resolves it
func (r *Resolver) ResolveRequest(req Request) (Range, error) {
	s, err := req.Spec()
	if err != nil {
		return Range{}, err
	}
	return r.Resolve(s)
}

// ResolveAt resolves s with an explicit now
func (r *Resolver) ResolveAt(s Spec, now time.Time) (Range, error) {
	switch v := s.(type) {
	case All:
		return AllTimeRange, nil
	case Whole:
		return resolveWhole(v)
	case Relative:
		return r.resolveRelative(v, now)
	case Explicit:
		return resolveExplicit(v)
	default:
		return Range{}, invalid(ErrInvalidMode, "mode", "unsupported selection %T", s)
	}
}

// Resolve resolves s with an explicit now using the package logger for diagnostics
func Resolve(s Spec, now time.Time) (Range, error) { return New().ResolveAt(s, now) }

func resolveWhole(w Whole) (Range, error) {
	switch w.Unit {
	case Years:
		if !ptime.ValidDate(w.Year, 1, 1) {
			return Range{}, invalid(ErrInvalidDate, "year", "year %d out of range", w.Year)
		}
		return Range{
			Start: D(w.Year, 1, 1).Time(),
			End:   D(w.Year, 12, 31).Time(),
		}, nil
	case Months:
		first := D(w.Year, w.Month, 1)
		if !first.Valid() {
			return Range{}, invalid(ErrInvalidDate, "month", "year %d month %d is not a calendar month", w.Year, w.Month)
		}
		// the window ends on the first of the given month and starts one month earlier
		end := first.Time()
		start := ptime.AddMonths(end, -1)
		if start.Year() < 1 {
			return Range{}, invalid(ErrInvalidDate, "year", "month before %s is before year 1", first)
		}
		return Range{Start: start, End: end}, nil
	default:
		return Range{}, invalid(ErrInvalidUnit, "unit", "whole unit %q must be years or months", string(w.Unit))
	}
}

func (r *Resolver) resolveRelative(rel Relative, now time.Time) (Range, error) {
	if rel.Count < 0 {
		return Range{}, invalid(ErrInvalidDate, "count", "count %d must not be negative", rel.Count)
	}
	if limit, ok := maxCount[rel.Unit]; ok && rel.Count > limit {
		return Range{}, invalid(ErrInvalidDate, "count", "%d %s ago is before year 1", rel.Count, rel.Unit)
	}
	end := ptime.Day(now)
	var start time.Time
	switch rel.Unit {
	case Days:
		start = end.AddDate(0, 0, -rel.Count)
	case Weeks:
		start = end.AddDate(0, 0, -7*rel.Count)
	case Months:
		start = ptime.AddMonths(end, -rel.Count)
	case Years:
		start = ptime.AddYears(end, -rel.Count)
	default:
		start = ptime.AddMonths(end, -1)
		r.log.Warn().
			Str("unit", string(rel.Unit)).
			Int("count", rel.Count).
			Str("start", ptime.FormatDate(start)).
			Msg("unknown relative unit, falling back to one month ago")
	}
	if start.Year() < 1 || start.After(end) {
		return Range{}, invalid(ErrInvalidDate, "count", "%d %s ago is before year 1", rel.Count, rel.Unit)
	}
	return Range{Start: start, End: end}, nil
}

// maxCount bounds a relative count by the units between year 9999 and year 1,
// so the date arithmetic below can never overflow
var maxCount = map[Unit]int{
	Days:   9999 * 366,
	Weeks:  9999 * 53,
	Months: 9999 * 12,
	Years:  9999,
}

func resolveExplicit(e Explicit) (Range, error) {
	if !e.From.Valid() {
		return Range{}, invalid(ErrInvalidDate, "from", "from %s is not a calendar date", e.From)
	}
	if !e.To.Valid() {
		return Range{}, invalid(ErrInvalidDate, "to", "to %s is not a calendar date", e.To)
	}
	return span(e.From.Time(), e.To.Time()), nil
}
