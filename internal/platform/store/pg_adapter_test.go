package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"trendspull/internal/platform/store/pg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type recTracer struct{ events []pg.QueryEvent }

func (r *recTracer) OnQuery(_ context.Context, ev pg.QueryEvent) { r.events = append(r.events, ev) }

type scanFunc func(dst ...any) error

func (f scanFunc) Scan(dst ...any) error { return f(dst...) }

// oneRow yields a single keyword
type oneRow struct {
	pgx.Rows
	done, closed bool
}

func (r *oneRow) Next() bool {
	if r.done {
		return false
	}
	r.done = true
	return true
}
func (r *oneRow) Scan(dst ...any) error { *dst[0].(*string) = "貓"; return nil }
func (r *oneRow) Err() error            { return nil }
func (r *oneRow) Close()                { r.closed = true }

type fakeConn struct {
	tag   string
	delay time.Duration
	err   error
	rows  *oneRow
}

func (f *fakeConn) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	time.Sleep(f.delay)
	if f.tag == "" {
		return pgconn.NewCommandTag("INSERT 0 1"), f.err
	}
	return pgconn.NewCommandTag(f.tag), f.err
}

func (f *fakeConn) Query(context.Context, string, ...any) (pgx.Rows, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.rows, nil
}

func (f *fakeConn) QueryRow(context.Context, string, ...any) pgx.Row {
	return scanFunc(func(dst ...any) error {
		if f.err != nil {
			return f.err
		}
		*dst[0].(*int) = 7
		return nil
	})
}

func TestTraced_ExecReportsTagAndEvent(t *testing.T) {
	tr := &recTracer{}
	q := traced{c: &fakeConn{}, tracer: tr}

	tag, err := q.Exec(context.Background(), "insert into trend_runs values ($1)", "x")
	if err != nil || tag.RowsAffected() != 1 {
		t.Fatalf("tag=%v err=%v", tag, err)
	}
	if len(tr.events) != 1 {
		t.Fatalf("events = %d", len(tr.events))
	}
	ev := tr.events[0]
	if ev.SQL != "insert into trend_runs values ($1)" || len(ev.Args) != 1 || ev.Slow {
		t.Fatalf("event = %+v", ev)
	}
}

func TestTraced_SlowThreshold(t *testing.T) {
	tr := &recTracer{}
	q := traced{c: &fakeConn{delay: 5 * time.Millisecond}, tracer: tr, slow: time.Millisecond}
	_, _ = q.Exec(context.Background(), "select 1")
	if !tr.events[0].Slow {
		t.Fatalf("expected slow event, elapsed %v", tr.events[0].Elapsed)
	}

	// zero threshold never marks
	tr = &recTracer{}
	q = traced{c: &fakeConn{delay: 2 * time.Millisecond}, tracer: tr}
	_, _ = q.Exec(context.Background(), "select 1")
	if tr.events[0].Slow {
		t.Fatal("zero threshold marked slow")
	}
}

func TestTraced_QueryRowEmitsAfterScan(t *testing.T) {
	tr := &recTracer{}
	boom := errors.New("no rows")
	conn := &fakeConn{}
	q := traced{c: conn, tracer: tr}

	row := q.QueryRow(context.Background(), "select count(*) from trend_runs")
	if len(tr.events) != 0 {
		t.Fatal("emitted before Scan")
	}
	var n int
	if err := row.Scan(&n); err != nil || n != 7 {
		t.Fatalf("n=%d err=%v", n, err)
	}

	conn.err = boom
	_ = q.QueryRow(context.Background(), "select 1").Scan(&n)
	if len(tr.events) != 2 || !errors.Is(tr.events[1].Err, boom) {
		t.Fatalf("events = %+v", tr.events)
	}
}

func TestTraced_Query(t *testing.T) {
	rows := &oneRow{}
	tr := &recTracer{}
	q := traced{c: &fakeConn{rows: rows}, tracer: tr}

	got, err := Many(context.Background(), q, func(r Row) (string, error) {
		var kw string
		return kw, r.Scan(&kw)
	}, "select keyword from trend_points")
	if err != nil || len(got) != 1 || got[0] != "貓" {
		t.Fatalf("got %v err %v", got, err)
	}
	if !rows.closed || len(tr.events) != 1 {
		t.Fatalf("closed=%v events=%d", rows.closed, len(tr.events))
	}

	boom := errors.New("relation does not exist")
	if _, err := (traced{c: &fakeConn{err: boom}}).Query(context.Background(), "select"); !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
}
