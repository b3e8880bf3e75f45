// Command trendspull resolves a timeframe and prints Google Trends interest over time
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"trendspull/internal/adapters/trends"
	"trendspull/internal/platform/config"
	"trendspull/internal/platform/logger"
	"trendspull/internal/platform/store"
	trendsmod "trendspull/internal/services/trends/module"
	trendsrepo "trendspull/internal/services/trends/repo"
	"trendspull/internal/services/trends/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := config.New()
	l := logger.Get()

	env := environment{
		opts: trendsmod.FromConfig(root),
		newFetcher: func(o trends.Options) (service.Fetcher, error) {
			return trends.NewClient(o)
		},
		openArchive: func(ctx context.Context) (service.Archive, func(), error) {
			return openArchive(ctx, root)
		},
	}

	if err := run(ctx, os.Args[1:], os.Stdout, env); err != nil {
		l.Error().Err(err).Msg("trendspull failed")
		os.Exit(1)
	}
}

// openArchive opens whichever archive stores are configured
// a nil archive with a nil error means none are
func openArchive(ctx context.Context, root config.Conf) (service.Archive, func(), error) {
	pgCfg := root.Prefix("SERVICE_PGSQL_")
	chCfg := root.Prefix("SERVICE_CLICKHOUSE_")
	pgURL := pgCfg.MayString("DBURL", "")
	chURL := chCfg.MayString("DBURL", "")
	if pgURL == "" && chURL == "" {
		return nil, func() {}, nil
	}

	l := logger.Get()
	st, err := store.Open(ctx, store.Config{
		AppName: "trendspull",
		PG: store.PGConfig{
			Enabled:        pgURL != "",
			URL:            pgURL,
			MaxConns:       int32(pgCfg.MayInt("MAX_CONNS", 2)),
			SlowQuery:      pgCfg.MayDuration("SLOW_QUERY", 500*time.Millisecond),
			LogSQL:         pgCfg.MayBool("LOG_SQL", false),
			ConnectRetries: pgCfg.MayInt("CONNECT_RETRIES", 3),
		},
		CH: store.CHConfig{
			Enabled: chURL != "",
			URL:     chURL,
			Role:    "cli",
		},
	}, store.WithLogger(*l))
	if err != nil {
		return nil, func() {}, err
	}
	closer := func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}

	a := trendsrepo.NewArchive(st.PG, trendsrepo.NewPG(), st.CH)
	if a == nil {
		return nil, closer, nil
	}
	if err := a.EnsureSchema(ctx); err != nil {
		closer()
		return nil, func() {}, err
	}
	return a, closer, nil
}
