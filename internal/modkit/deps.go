// Package modkit provides module wiring and core deps
package modkit

import (
	"trendspull/internal/modkit/repokit"
	"trendspull/internal/platform/config"
	"trendspull/internal/platform/logger"
	"trendspull/internal/platform/store"
)

// Deps holds core dependencies passed to modules
// this is wiring only and does not introduce new abstractions
type Deps struct {
	Log *logger.Logger
	Cfg config.Conf
	PG  repokit.TxRunner
	CH  store.Clickhouse
}

// HasStores reports whether any backing store was wired
func (d Deps) HasStores() bool { return d.PG != nil || d.CH != nil }

// Logger returns Log tagged with component, the process logger when Log is unset
func (d Deps) Logger(component string) *logger.Logger {
	if d.Log == nil {
		return logger.Named(component)
	}
	l := d.Log.With().Str("component", component).Logger()
	return &l
}
