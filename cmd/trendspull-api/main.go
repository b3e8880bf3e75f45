// @title         Trendspull API
// @version       0.1.0
// @description   Timeframe resolution and Google Trends interest over time

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"trendspull/internal/core/version"
	"trendspull/internal/modkit/repokit"
	"trendspull/internal/platform/config"
	"trendspull/internal/platform/logger"
	phttp "trendspull/internal/platform/net/http"
	"trendspull/internal/platform/store"

	"trendspull/internal/services/api"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// service-scoped config for HTTP etc (CORE_API_*)
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	pgCfg := root.Prefix("SERVICE_PGSQL_")      // pgCfg lives under SERVICE_PGSQL_*
	chCfg := root.Prefix("SERVICE_CLICKHOUSE_") // chCfg lives under SERVICE_CLICKHOUSE_*
	// bring up logging early
	l := logger.Get()

	// both stores are optional; without them the archive and /trends/runs are off
	pgURL := pgCfg.MayString("DBURL", "")
	chURL := chCfg.MayString("DBURL", "")
	st, err := store.Open(
		ctx,
		store.Config{
			AppName: version.Service,
			PG: store.PGConfig{
				Enabled:   pgURL != "",
				URL:       pgURL,
				MaxConns:  int32(pgCfg.MayInt("MAX_CONNS", 4)),
				SlowQuery: pgCfg.MayDuration("SLOW_QUERY", 500*time.Millisecond),
				LogSQL:    pgCfg.MayBool("LOG_SQL", true),
			},
			CH: store.CHConfig{
				Enabled:     chURL != "",
				URL:         chURL,
				Role:        "api",
				DialTimeout: chCfg.MayDuration("DIAL_TIMEOUT", 0),
			},
		},
		store.WithLogger(*logger.Get()),
	)
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	// configured stores must answer before we take traffic
	guardCtx, cancel := context.WithTimeout(ctx, apiCfg.MayDuration("GUARD_TIMEOUT", 5*time.Second))
	repokit.MustGuard(guardCtx, st)
	cancel()

	// http server (reads CORE_API_API_PORT)
	srv := phttp.NewServer(apiCfg)

	api.Mount(
		srv.Router(),
		api.Options{
			Config:         root,
			Store:          st,
			Logger:         l,
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", false),
		},
	)

	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
