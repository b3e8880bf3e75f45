// Package timeframe resolves user facing time selections into the canonical
// range string the trends query client expects
//
// A selection is one of four modes: all time, a whole calendar unit, a window
// relative to today, or an explicit pair of dates. Resolution is a pure function
// of the selection and an injected "now"; the system clock is only read by
// Resolver at the edge.
package timeframe

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Mode is the closed set of range selection modes
// numeric values are stable and match the wire discriminator
type Mode uint8

const (
	// AllTime is the unbounded range
	AllTime Mode = iota
	// WholeUnit is one whole calendar year or month
	WholeUnit
	// RelativeToToday is a window from N units ago through today
	RelativeToToday
	// ExplicitRange is a pair of dates in any order
	ExplicitRange
)

var modeNames = [...]string{
	AllTime:         "all",
	WholeUnit:       "whole",
	RelativeToToday: "relative",
	ExplicitRange:   "explicit",
}

// Valid reports whether m is one of the four known modes
func (m Mode) Valid() bool { return int(m) < len(modeNames) }

// String returns the short name of the mode
func (m Mode) String() string {
	if !m.Valid() {
		return "mode(" + strconv.Itoa(int(m)) + ")"
	}
	return modeNames[m]
}

// ParseMode accepts a mode name or its numeric discriminator
func ParseMode(s string) (Mode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range modeNames {
		if s == name {
			return Mode(i), nil
		}
	}
	if n, err := strconv.Atoi(s); err == nil && n >= 0 && n < len(modeNames) {
		return Mode(n), nil
	}
	return 0, invalid(ErrInvalidMode, "mode", "unknown mode %q", s)
}

// MarshalJSON writes the mode name
func (m Mode) MarshalJSON() ([]byte, error) {
	if !m.Valid() {
		return []byte(strconv.Itoa(int(m))), nil
	}
	return json.Marshal(m.String())
}

// UnmarshalJSON accepts either the name or the numeric discriminator
// out of range numbers are kept so resolution can report them as an invalid mode
func (m *Mode) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		v, err := ParseMode(s)
		if err != nil {
			return err
		}
		*m = v
		return nil
	}
	var n uint8
	if err := json.Unmarshal(b, &n); err != nil {
		return invalid(ErrInvalidMode, "mode", "mode must be a name or a small integer")
	}
	*m = Mode(n)
	return nil
}
