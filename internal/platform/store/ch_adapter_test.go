package store

import (
	"context"
	"errors"
	"testing"

	"trendspull/internal/platform/store/ch"
)

type fakeCHRows struct {
	n      int
	closed bool
}

func (f *fakeCHRows) Next() bool { f.n++; return f.n == 1 }
func (f *fakeCHRows) Scan(dest ...any) error {
	*(dest[0].(*string)) = "kw"
	return nil
}
func (f *fakeCHRows) Err() error   { return nil }
func (f *fakeCHRows) Close() error { f.closed = true; return nil }

type fakeCH struct {
	table    string
	inserted [][]any
	execs    []string
	rows     *fakeCHRows
	err      error
	closed   bool
}

func (f *fakeCH) Insert(_ context.Context, table string, rows [][]any) error {
	f.table, f.inserted = table, rows
	return f.err
}
func (f *fakeCH) Exec(_ context.Context, sql string, _ ...any) error {
	f.execs = append(f.execs, sql)
	return f.err
}
func (f *fakeCH) Query(context.Context, string, ...any) (ch.Rows, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.rows, nil
}
func (f *fakeCH) Ping(context.Context) error { return f.err }
func (f *fakeCH) Close() error               { f.closed = true; return nil }

// TestCHAdapter_Delegates checks every seam method reaches the client
func TestCHAdapter_Delegates(t *testing.T) {
	t.Parallel()

	f := &fakeCH{rows: &fakeCHRows{}}
	a := newCHAdapter(f)
	ctx := context.Background()

	if err := a.Insert(ctx, "trend_points", [][]any{{"a", 1}}); err != nil {
		t.Fatal(err)
	}
	if f.table != "trend_points" || len(f.inserted) != 1 {
		t.Fatalf("insert not delegated: %q %v", f.table, f.inserted)
	}
	if err := a.Exec(ctx, "OPTIMIZE TABLE trend_points"); err != nil || len(f.execs) != 1 {
		t.Fatalf("exec not delegated: %v %v", err, f.execs)
	}

	rows, err := a.Query(ctx, "SELECT keyword FROM trend_points")
	if err != nil {
		t.Fatal(err)
	}
	var kw string
	if !rows.Next() || rows.Scan(&kw) != nil || kw != "kw" {
		t.Fatalf("rows not delegated, kw=%q", kw)
	}
	rows.Close()
	if !f.rows.closed {
		t.Fatalf("rows Close not delegated")
	}

	if err := a.(Pinger).Ping(ctx); err != nil {
		t.Fatalf("ping = %v", err)
	}
	if err := a.Close(); err != nil || !f.closed {
		t.Fatalf("close not delegated")
	}
}

func TestCHAdapter_QueryError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	a := newCHAdapter(&fakeCH{err: boom})
	rows, err := a.Query(context.Background(), "SELECT 1")
	if !errors.Is(err, boom) || rows != nil {
		t.Fatalf("Query = %v, %v", rows, err)
	}
	if err := a.(Pinger).Ping(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("Ping = %v", err)
	}
}
