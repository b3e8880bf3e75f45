// Package module wires meta endpoints into the API using a tiny module
package module

import (
	"time"

	"trendspull/internal/core/version"
	modkit "trendspull/internal/modkit"
	"trendspull/internal/modkit/httpkit"

	metahttp "trendspull/internal/services/api/meta/http"
)

// Module serves liveness, readiness and build info
type Module struct {
	modkit.Base

	deps metahttp.Deps
}

// New constructs a meta module over the stores in deps
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	return &Module{
		Base: modkit.Build([]modkit.Option{modkit.WithName("meta"), modkit.WithPrefix("/meta")}, opts...),
		deps: metahttp.Deps{
			ServiceName: version.Service,
			StartedAt:   time.Now(),
			PG:          deps.PG,
			CH:          deps.CH,
		},
	}
}

// MountRoutes mounts the meta endpoints under the module prefix
func (m *Module) MountRoutes(r httpkit.Router) {
	m.Mount(r, func(rr httpkit.Router) { metahttp.Register(rr, m.deps) })
}

// Ports is nil; nothing looks meta up
func (m *Module) Ports() any { return nil }
