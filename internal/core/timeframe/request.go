package timeframe

import (
	"strings"

	perr "trendspull/internal/platform/errors"
)

// Request is the flat wire form of a selection used by flags and JSON bodies
// only the fields relevant to Mode are read
type Request struct {
	Mode  Mode   `json:"mode" example:"relative"`
	Unit  string `json:"unit,omitempty" example:"days"`
	Year  int    `json:"year,omitempty" example:"2023"`
	Month int    `json:"month,omitempty" example:"2"`
	Count int    `json:"count,omitempty" example:"10"`
	From  string `json:"from,omitempty" example:"2023-08-28"`
	To    string `json:"to,omitempty" example:"2023-09-15"`
}

// Spec selects the concrete selection for r.Mode
func (r Request) Spec() (Spec, error) {
	switch r.Mode {
	case AllTime:
		return All{}, nil
	case WholeUnit:
		return Whole{Unit: Unit(normUnit(r.Unit)), Year: r.Year, Month: r.Month}, nil
	case RelativeToToday:
		return Relative{Unit: Unit(normUnit(r.Unit)), Count: r.Count}, nil
	case ExplicitRange:
		from, err := ParseDate(r.From)
		if err != nil {
			return nil, perr.WithField(err, "from")
		}
		to, err := ParseDate(r.To)
		if err != nil {
			return nil, perr.WithField(err, "to")
		}
		return Explicit{From: from, To: to}, nil
	default:
		return nil, invalid(ErrInvalidMode, "mode", "unknown mode %d", int(r.Mode))
	}
}

// RequestOf flattens a selection back into its wire form
func RequestOf(s Spec) Request {
	switch v := s.(type) {
	case All:
		return Request{Mode: AllTime}
	case Whole:
		return Request{Mode: WholeUnit, Unit: string(v.Unit), Year: v.Year, Month: v.Month}
	case Relative:
		return Request{Mode: RelativeToToday, Unit: string(v.Unit), Count: v.Count}
	case Explicit:
		return Request{Mode: ExplicitRange, From: v.From.String(), To: v.To.String()}
	default:
		return Request{Mode: Mode(255)}
	}
}

func normUnit(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
