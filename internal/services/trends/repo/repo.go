// Package repo provides postgres and clickhouse access for archived trends runs
package repo

import (
	"context"
	"time"

	"trendspull/internal/modkit/repokit"
	perr "trendspull/internal/platform/errors"
	"trendspull/internal/platform/store"

	"github.com/google/uuid"
)

// Repo is the postgres surface for trend runs
type Repo interface {
	EnsureSchema(ctx context.Context) error
	RecordRun(ctx context.Context, r RunRow) (uuid.UUID, error)
	ListRuns(ctx context.Context, limit int) ([]RunRow, error)
}

// RunRow is one row of trend_runs
type RunRow struct {
	ID        uuid.UUID
	Keywords  []string
	Geo       string
	Category  int
	Property  string
	Timeframe string
	Rows      int
	FetchedAt time.Time
}

type (
	// PG is a binder that can bind the repo to a Queryer or TxRunner
	PG struct{}
	// queries implements the Repo interface
	queries struct{ q repokit.Queryer }
)

// NewPG returns a binder that can bind the repo to a Queryer or TxRunner
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind wires a Queryer to the repo
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

func (r *queries) EnsureSchema(ctx context.Context) error {
	const table = `
create table if not exists trend_runs (
  id uuid primary key,
  keywords text[] not null,
  geo text not null default '',
  category int not null default 0,
  property text not null default '',
  timeframe text not null,
  rows int not null default 0,
  fetched_at timestamptz not null default now()
)
`
	const index = `create index if not exists trend_runs_fetched_at_idx on trend_runs (fetched_at desc)`
	for _, sql := range []string{table, index} {
		if _, err := r.q.Exec(ctx, sql); err != nil {
			return perr.FromPostgres(err, "trend_runs schema")
		}
	}
	return nil
}

func (r *queries) RecordRun(ctx context.Context, in RunRow) (uuid.UUID, error) {
	id := in.ID
	if id == uuid.Nil {
		v, err := uuid.NewV7()
		if err != nil {
			return uuid.Nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "new run id")
		}
		id = v
	}
	if in.FetchedAt.IsZero() {
		in.FetchedAt = time.Now().UTC()
	}
	const sql = `
insert into trend_runs (id, keywords, geo, category, property, timeframe, rows, fetched_at)
values ($1::uuid, $2, $3, $4, $5, $6, $7, $8)
`
	err := store.ExecOne(ctx, r.q, sql,
		id.String(), in.Keywords, in.Geo, in.Category, in.Property, in.Timeframe, in.Rows, in.FetchedAt)
	if err != nil {
		return uuid.Nil, perr.FromPostgres(err, "record trend run")
	}
	return id, nil
}

func (r *queries) ListRuns(ctx context.Context, limit int) ([]RunRow, error) {
	// newest first
	const sql = `
select id::text, keywords, geo, category, property, timeframe, rows, fetched_at
from trend_runs
order by fetched_at desc, id desc
limit $1
`
	out, err := store.Many(ctx, r.q, scanRun, sql, limit)
	if err != nil {
		return nil, perr.FromPostgres(err, "list trend runs")
	}
	return out, nil
}

func scanRun(row store.Row) (RunRow, error) {
	var (
		rr RunRow
		id string
	)
	if err := row.Scan(&id, &rr.Keywords, &rr.Geo, &rr.Category, &rr.Property, &rr.Timeframe, &rr.Rows, &rr.FetchedAt); err != nil {
		return rr, err
	}
	v, err := uuid.Parse(id)
	if err != nil {
		return rr, perr.Wrapf(err, perr.ErrorCodeDB, "trend run id %q", id)
	}
	rr.ID = v
	return rr, nil
}
