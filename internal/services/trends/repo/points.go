package repo

import (
	"context"

	perr "trendspull/internal/platform/errors"
	"trendspull/internal/platform/store"
	"trendspull/internal/services/trends/domain"

	"github.com/google/uuid"
)

// pointsTable is the clickhouse table holding one row per date and keyword
const pointsTable = "trend_points"

// Points writes reshaped tables to clickhouse
type Points struct {
	ch store.Clickhouse
}

// NewPoints wraps a clickhouse seam
func NewPoints(ch store.Clickhouse) *Points { return &Points{ch: ch} }

// EnsureSchema creates trend_points when missing
func (p *Points) EnsureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS ` + pointsTable + ` (
  run_id UUID,
  keyword String,
  date Date,
  value Int32,
  is_partial Bool,
  geo LowCardinality(String),
  timeframe String
) ENGINE = MergeTree
ORDER BY (keyword, date, run_id)
`
	if err := p.ch.Exec(ctx, ddl); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnavailable, "trend_points schema")
	}
	return nil
}

// WritePoints inserts every (date, keyword) cell of t under runID
func (p *Points) WritePoints(ctx context.Context, runID uuid.UUID, t *domain.Table) error {
	return p.ch.Insert(ctx, pointsTable, pointRows(runID, t))
}

// pointRows flattens t in table column order
func pointRows(runID uuid.UUID, t *domain.Table) [][]any {
	out := make([][]any, 0, len(t.Rows)*len(t.Keywords))
	for _, r := range t.Rows {
		for i, kw := range t.Keywords {
			if i >= len(r.Values) {
				break
			}
			out = append(out, []any{runID, kw, r.Date, int32(r.Values[i]), r.IsPartial, t.Geo, t.Timeframe})
		}
	}
	return out
}
