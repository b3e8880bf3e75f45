// Package middleware holds the request pipeline pieces: chi's stock middleware
// behind plain func types plus the zerolog access log and the JSON panic guard
package middleware

import (
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	chicors "github.com/go-chi/cors"
)

// Middleware is the shape every piece here returns
type Middleware = func(http.Handler) http.Handler

// RequestID takes X-Request-Id from the client or mints one
func RequestID() Middleware { return chimw.RequestID }

// RealIP trusts X-Forwarded-For and X-Real-IP for RemoteAddr
func RealIP() Middleware { return chimw.RealIP }

// NoCache marks every response uncacheable
func NoCache() Middleware { return chimw.NoCache }

// StripSlashes drops a trailing slash before routing
func StripSlashes() Middleware { return chimw.StripSlashes }

// Heartbeat answers GET path with 200 ahead of routing
func Heartbeat(path string) Middleware { return chimw.Heartbeat(path) }

// Compress gzips and deflates responses at level
func Compress(level int) Middleware {
	c := chimw.NewCompressor(level)
	return c.Handler
}

// Timeout cancels the request context after d and answers 504 if nothing was written
func Timeout(d time.Duration) Middleware { return chimw.Timeout(d) }

// Throttle caps in-flight requests; the overflow waits up to wait in a backlog of the same size, then gets 429
func Throttle(limit int, wait time.Duration) Middleware {
	return chimw.ThrottleBacklog(limit, limit, wait)
}

// JSONOnly rejects request bodies that are not application/json with 415
func JSONOnly() Middleware { return chimw.AllowContentType("application/json") }

// CORS allows origins to call the API; an empty list allows any origin
func CORS(origins []string) Middleware {
	return chicors.Handler(chicors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", chimw.RequestIDHeader},
		ExposedHeaders: []string{chimw.RequestIDHeader},
		MaxAge:         300,
	})
}
