package modkit

import (
	"net/http"

	"trendspull/internal/modkit/httpkit"
	str "trendspull/internal/platform/strings"
)

// Option adjusts how a module is mounted
type Option func(*Base)

// WithName sets the name used in logs and the port registry
func WithName(name string) Option { return func(b *Base) { b.name = name } }

// WithPrefix sets the path the module mounts under
func WithPrefix(prefix string) Option { return func(b *Base) { b.prefix = prefix } }

// WithMiddlewares appends per module middleware, applied in order
func WithMiddlewares(mw ...func(http.Handler) http.Handler) Option {
	return func(b *Base) { b.mws = append(b.mws, mw...) }
}

// WithRegister adds endpoints next to the module's own
func WithRegister(fn func(httpkit.Router)) Option { return func(b *Base) { b.extra = fn } }

// Base is the mounting half of a module; modules embed it and supply their routes
type Base struct {
	name   string
	prefix string
	mws    []func(http.Handler) http.Handler
	extra  func(httpkit.Router)
}

// Build applies defaults then opts, so callers can override a module's name or prefix
func Build(defaults []Option, opts ...Option) Base {
	var b Base
	for _, o := range append(defaults, opts...) {
		o(&b)
	}
	return b
}

// Name panics when no name was configured
func (b Base) Name() string { return str.MustString(b.name, "module name") }

// Prefix returns the normalized mount path
func (b Base) Prefix() string { return str.MustPrefix(b.prefix) }

// Mount opens the prefix on r, applies the middleware and attaches routes then any extra endpoints
func (b Base) Mount(r httpkit.Router, routes func(httpkit.Router)) {
	r.Route(b.Prefix(), func(rr httpkit.Router) {
		for _, mw := range b.mws {
			rr.Use(mw)
		}
		if routes != nil {
			routes(rr)
		}
		if b.extra != nil {
			b.extra(rr)
		}
	})
}
