// Package modkit provides module wiring and core deps
package modkit

import "trendspull/internal/modkit/module"

// Module is what the API mounts: routes under a prefix plus a port set for cross wiring
type Module = module.Module
