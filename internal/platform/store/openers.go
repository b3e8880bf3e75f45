package store

import (
	"context"
	"time"

	"trendspull/internal/platform/logger"
	chx "trendspull/internal/platform/store/ch"
	"trendspull/internal/platform/store/pg"
)

// openPG opens the pool and publishes it only once a ping succeeds
func openPG(ctx context.Context, cfg Config, log logger.Logger) (TxRunner, error) {
	var tracer pg.QueryTracer
	if cfg.PG.LogSQL {
		tracer = pg.LogTracer(log)
	}
	p, err := pg.Open(ctx, pg.Config{
		URL:      cfg.PG.URL,
		AppName:  cfg.AppName,
		MaxConns: cfg.PG.MaxConns,
		Slow:     cfg.PG.SlowQuery,
	}, tracer)
	if err != nil {
		return nil, err
	}

	attempts, timeout := cfg.PG.ConnectRetries, cfg.PG.PingTimeout
	if attempts <= 0 {
		attempts = 20
	}
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if err := p.WaitReady(ctx, attempts, timeout); err != nil {
		p.Close()
		return nil, err
	}
	return newPGAdapter(p), nil
}

// openCH builds the clickhouse pool; the first query or Guard dials
func openCH(ctx context.Context, cfg Config, log logger.Logger) (Clickhouse, error) {
	c, err := chx.Open(ctx, chx.Config{
		URL:         cfg.CH.URL,
		Role:        cfg.CH.Role,
		Tag:         cfg.AppName,
		DialTimeout: cfg.CH.DialTimeout,
	})
	if err != nil {
		return nil, err
	}
	log.Debug().Str("role", cfg.CH.Role).Msg("clickhouse pool ready")
	return newCHAdapter(c), nil
}
