// Package domain holds DTOs for trends http and service contracts
package domain

import (
	"time"

	"trendspull/internal/core/timeframe"
)

// Query is what gets compared: up to five keywords in one region and property
type Query struct {
	Keywords     []string `json:"keywords" validate:"required,min=1,max=5,dive,notblank,max=100" example:"貓,狗"`
	Category     int      `json:"cat" validate:"min=0" example:"0"`
	Geo          string   `json:"geo,omitempty" validate:"omitempty,max=10" example:"TW"`
	Property     string   `json:"gprop,omitempty" validate:"omitempty,oneof=images news youtube froogle" example:"youtube"`
	HostLanguage string   `json:"hl,omitempty" validate:"omitempty,max=10" example:"zh-TW"`
}

// InterestInput asks for interest over time in a resolved window
type InterestInput struct {
	Range timeframe.Request `json:"range"`
	Query
}

// TimeframeOutput is a resolved window
type TimeframeOutput struct {
	Mode      string `json:"mode" example:"whole"`
	Timeframe string `json:"timeframe" example:"2023-01-01 2023-02-01"`
	Days      int    `json:"days,omitempty" example:"32"`
}

// Table is interest over time reshaped to one row per date
type Table struct {
	RunID     string   `json:"run_id,omitempty" example:"5b0c6f6e-3f8e-4a50-9d7e-4c1f1b1f4a11"`
	Keywords  []string `json:"keywords" example:"貓,狗"`
	Timeframe string   `json:"timeframe" example:"2023-08-28 2023-09-15"`
	Geo       string   `json:"geo" example:"TW"`
	Rows      []Row    `json:"rows"`
}

// Row holds one value per keyword in Table.Keywords order
type Row struct {
	Date      time.Time `json:"date" example:"2023-09-03T00:00:00Z"`
	Values    []int     `json:"values" example:"40,12"`
	IsPartial bool      `json:"is_partial" example:"false"`
}

// Value returns the value for kw on r, false when kw is not a column of t
func (t *Table) Value(r Row, kw string) (int, bool) {
	for i, k := range t.Keywords {
		if k == kw && i < len(r.Values) {
			return r.Values[i], true
		}
	}
	return 0, false
}

// RunsInput pages through archived runs, newest first
type RunsInput struct {
	Limit int `json:"limit,omitempty" validate:"omitempty,min=1,max=200" example:"20"`
}

// Run is one archived fetch
type Run struct {
	ID        string    `json:"id" example:"5b0c6f6e-3f8e-4a50-9d7e-4c1f1b1f4a11"`
	Keywords  []string  `json:"keywords" example:"貓,狗"`
	Geo       string    `json:"geo" example:"TW"`
	Category  int       `json:"cat" example:"0"`
	Property  string    `json:"gprop" example:""`
	Timeframe string    `json:"timeframe" example:"2023-08-28 2023-09-15"`
	Rows      int       `json:"rows" example:"3"`
	FetchedAt time.Time `json:"fetched_at" example:"2023-09-15T14:30:00Z"`
}
