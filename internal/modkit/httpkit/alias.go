// Package httpkit is the http surface modules import
// it re-exports the platform seam so modules never reach into platform/net/http
package httpkit

import (
	"net/http"

	phttp "trendspull/internal/platform/net/http"
)

type (
	// Router is the platform router seam
	Router = phttp.Router
	// Handler is the platform handler shape
	Handler = phttp.Handler
	// Response is a return-style handler result
	Response = phttp.Response
	// Envelope is the JSON body every endpoint writes
	Envelope = phttp.Envelope
)

// Get mounts a bodyless handler under GET
func Get(r Router, path string, h func(*http.Request) (any, error)) {
	r.Get(path, phttp.Call(h))
}

// PostJSON mounts h under POST
// the body is decoded and validated before h runs
func PostJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Post(path, phttp.JSONHandler(h))
}
