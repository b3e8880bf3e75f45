// Package module holds the module contract and the port registry the API fills at startup
package module

import phttp "trendspull/internal/platform/net/http"

// Module mounts routes and exposes a port set other modules may look up
type Module interface {
	MountRoutes(r phttp.Router)
	Ports() any
	Name() string
}
