// Package repokit holds the pieces sql repositories share: the Queryer seam,
// binders that attach a repo to a pool or a tx, and tx begin hooks
package repokit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"trendspull/internal/platform/store"
)

type (
	// Queryer is the sql surface a repo is bound to
	Queryer = store.RowQuerier
	// TxRunner is a Queryer that can open transactions
	TxRunner = store.TxRunner
	// Rows is a result set
	Rows = store.Rows
	// Row is a single row
	Row = store.Row
	// CommandTag reports what a write did
	CommandTag = store.CommandTag
)

// Binder attaches a repo to a Queryer, the pool or a tx
type Binder[T any] interface {
	Bind(Queryer) T
}

// BindFunc is a Binder from a function
type BindFunc[T any] func(Queryer) T

// Bind calls f
func (f BindFunc[T]) Bind(q Queryer) T { return f(q) }

// MustBind binds q, panicking on a nil q since that is a wiring bug
func MustBind[T any](b Binder[T], q Queryer) T {
	if q == nil {
		panic("repokit: nil Queryer")
	}
	return b.Bind(q)
}

// WithTx runs fn in a transaction on tx
func WithTx(ctx context.Context, tx TxRunner, fn func(q Queryer) error) error {
	return tx.Tx(ctx, fn)
}

// BeginHook runs first thing inside every transaction
type BeginHook func(ctx context.Context, q Queryer) error

// WithBeginHooks returns inner with hooks run, in order, at the start of each Tx
// statements outside a Tx go straight to inner
func WithBeginHooks(inner TxRunner, hooks ...BeginHook) TxRunner {
	return hookedTx{TxRunner: inner, hooks: hooks}
}

type hookedTx struct {
	TxRunner
	hooks []BeginHook
}

func (h hookedTx) Tx(ctx context.Context, fn func(q Queryer) error) error {
	return h.TxRunner.Tx(ctx, func(q Queryer) error {
		for _, hook := range h.hooks {
			if err := hook(ctx, q); err != nil {
				return err
			}
		}
		return fn(q)
	})
}

// StatementTimeout bounds each statement of the tx to d, truncated to milliseconds
// a d under 1ms leaves the server default
func StatementTimeout(d time.Duration) BeginHook {
	ms := d.Milliseconds()
	return func(ctx context.Context, q Queryer) error {
		if ms <= 0 {
			return nil
		}
		_, err := q.Exec(ctx, "SET LOCAL statement_timeout = "+strconv.FormatInt(ms, 10))
		return err
	}
}

// MustGuard panics unless every configured backend answers; for service startup
func MustGuard(ctx context.Context, st interface{ Guard(context.Context) error }) {
	if err := st.Guard(ctx); err != nil {
		panic(fmt.Errorf("dependency guard failed: %w", err))
	}
}
