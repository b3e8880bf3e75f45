// Package module wires trends into the API using modkit
package module

import (
	"context"
	"time"

	"trendspull/internal/adapters/trends"
	modkit "trendspull/internal/modkit"
	"trendspull/internal/modkit/httpkit"
	trendshttp "trendspull/internal/services/trends/http"
	trendsrepo "trendspull/internal/services/trends/repo"
	trendssvc "trendspull/internal/services/trends/service"
)

// Module implements the trends module
type Module struct {
	modkit.Base

	svc      trendssvc.Service
	ports    any
	archived bool
}

// New constructs the trends module against the live Google Trends client
// a client that cannot be built from config is a startup error and panics
func New(deps modkit.Deps, o Options, opts ...modkit.Option) modkit.Module {
	c, err := trends.NewClient(o.Client)
	if err != nil {
		deps.Logger("trends").Panic().Err(err).Msg("trends client")
	}
	return newWith(deps, o, c, opts...)
}

func newWith(deps modkit.Deps, o Options, fetch trendssvc.Fetcher, opts ...modkit.Option) *Module {
	svcOpts := []trendssvc.Option{trendssvc.WithDefaults(o.Defaults)}
	archived := false
	if o.Archive && deps.HasStores() {
		// NewArchive returns a nil pointer without stores; keep it out of the interface
		if a := trendsrepo.NewArchive(deps.PG, trendsrepo.NewPG(), deps.CH); a != nil && ensureSchema(a, o, deps) {
			svcOpts = append(svcOpts, trendssvc.WithArchive(a))
			archived = true
		}
	}
	svc := trendssvc.New(fetch, svcOpts...)

	return &Module{
		Base:     modkit.Build([]modkit.Option{modkit.WithName("trends"), modkit.WithPrefix("/trends")}, opts...),
		svc:      svc,
		ports:    adaptTrendsPort{svc: svc},
		archived: archived,
	}
}

// ensureSchema creates archive tables; a failure leaves archiving off
func ensureSchema(a *trendsrepo.Archive, o Options, deps modkit.Deps) bool {
	d := o.SchemaTimeout
	if d <= 0 {
		d = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), d)
	defer cancel()
	if err := a.EnsureSchema(ctx); err != nil {
		deps.Logger("trends").Error().Err(err).Msg("trends archive schema failed; archiving disabled")
		return false
	}
	return true
}

// MountRoutes mounts the trends endpoints under the module prefix
func (m *Module) MountRoutes(r httpkit.Router) {
	m.Mount(r, func(rr httpkit.Router) { trendshttp.Register(rr, m.svc) })
}

// Archived reports whether runs are being recorded
func (m *Module) Archived() bool { return m.archived }
