package ch

import (
	"context"
	"errors"
	"testing"
	"time"
)

// TestOpen parses the DSN without dialing
func TestOpen(t *testing.T) {
	t.Parallel()

	cl, err := Open(context.Background(), Config{URL: "clickhouse://default:@127.0.0.1:9000/default", Role: "test", DialTimeout: time.Second})
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	if cl == nil || cl.conn == nil {
		t.Fatalf("Open returned nil client")
	}
	if err := cl.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}
}

func TestOpen_BadConfig(t *testing.T) {
	t.Parallel()

	if _, err := Open(context.Background(), Config{}); err == nil {
		t.Fatalf("empty URL should fail")
	}
	if _, err := Open(context.Background(), Config{URL: "clickhouse://h:9000/db?dial_timeout=nope"}); err == nil {
		t.Fatalf("bad dsn param should fail")
	}
}

// TestZeroCH reports ErrNoConn instead of panicking
func TestZeroCH(t *testing.T) {
	t.Parallel()

	var cl *CH
	ctx := context.Background()
	if err := cl.Insert(ctx, "t", [][]any{{1}}); !errors.Is(err, ErrNoConn) {
		t.Fatalf("Insert = %v", err)
	}
	if err := (&CH{}).Exec(ctx, "SELECT 1"); !errors.Is(err, ErrNoConn) {
		t.Fatalf("Exec = %v", err)
	}
	if _, err := (&CH{}).Query(ctx, "SELECT 1"); !errors.Is(err, ErrNoConn) {
		t.Fatalf("Query = %v", err)
	}
	if err := (&CH{}).Ping(ctx); !errors.Is(err, ErrNoConn) {
		t.Fatalf("Ping = %v", err)
	}
	if err := cl.Close(); err != nil {
		t.Fatalf("Close on nil = %v", err)
	}
}

// TestInsert_TableName rejects identifiers that could smuggle SQL
func TestInsert_TableName(t *testing.T) {
	t.Parallel()

	cl, err := Open(context.Background(), Config{URL: "clickhouse://127.0.0.1:9000"})
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = cl.Close() }()

	for _, bad := range []string{"", "points; DROP TABLE x", "a.b.c", "1points"} {
		if err := cl.Insert(context.Background(), bad, [][]any{{1}}); err == nil {
			t.Fatalf("table %q should be rejected", bad)
		}
	}
	// no rows is a no-op and never dials
	if err := cl.Insert(context.Background(), "trends.trend_points", nil); err != nil {
		t.Fatalf("empty insert = %v", err)
	}
}

func TestClientInfo(t *testing.T) {
	t.Parallel()

	info := clientInfo("cli", "")
	if len(info.Products) != 5 {
		t.Fatalf("products = %+v", info.Products)
	}
	if p := info.Products[0]; p.Name != "trendspull-api" || p.Version != "dev" {
		t.Fatalf("service product = %+v", p)
	}
	if p := info.Products[1]; p.Name != "role" || p.Version != "cli" {
		t.Fatalf("role product = %+v", p)
	}
	if p := clientInfo("", "trendspull").Products; p[0].Name != "trendspull" || p[1].Version != "unknown" {
		t.Fatalf("tagged products = %+v", p)
	}
}
