// Package api composes the HTTP API: meta and trends modules behind the v1 middleware stack
package api

import (
	"trendspull/internal/platform/config"
	"trendspull/internal/platform/logger"
	phttp "trendspull/internal/platform/net/http"
	"trendspull/internal/platform/net/middleware"
	"trendspull/internal/platform/store"

	"trendspull/internal/modkit"
	"trendspull/internal/modkit/httpkit"
	"trendspull/internal/modkit/module"
	"trendspull/internal/modkit/swaggerkit"

	metamod "trendspull/internal/services/api/meta/module"
	trendsmod "trendspull/internal/services/trends/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf // root, unprefixed
	Store          *store.Store
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount wires the modules from opt onto r
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{Cfg: opt.Config, Log: opt.Logger}
	if opt.Store != nil {
		deps.PG = opt.Store.PG
		deps.CH = opt.Store.CH
	}

	mods := []module.Module{
		metamod.New(deps),
		trendsmod.New(deps, trendsmod.FromConfig(deps.Cfg)),
	}

	r.Use(middleware.Heartbeat("/health"))
	swaggerkit.Mount(r, opt.EnableSwagger)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

	httpkit.MountAPIV1(r, httpkit.CommonStack(opt.Config.Prefix("CORE_API_")), func(api httpkit.Router) {
		for _, m := range mods {
			module.Register(m.Name(), m.Ports())
			m.MountRoutes(api)
		}
	})
}
