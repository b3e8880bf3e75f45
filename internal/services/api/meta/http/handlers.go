// Package http serves liveness, readiness and build info for the API
package http

import (
	"context"
	"net/http"
	"time"

	"trendspull/internal/core/version"
	"trendspull/internal/modkit/httpkit"
)

// pingTimeout bounds each store ping on /ready
const pingTimeout = 2 * time.Second

// Pinger is satisfied by store adapters
type Pinger interface {
	Ping(context.Context) error
}

// Deps are the handler dependencies; PG and CH are nil when the archive store is not configured
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	PG          any
	CH          any
}

// Register mounts /health, /ready, /version and /service on r
func Register(r httpkit.Router, d Deps) {
	httpkit.Get(r, "/health", d.health)
	httpkit.Get(r, "/ready", d.ready)
	httpkit.Get(r, "/version", func(*http.Request) (any, error) { return version.Info(), nil })
	httpkit.Get(r, "/service", d.service)
}

// HealthResponse is the liveness payload
type HealthResponse struct {
	OK      bool   `json:"ok"      example:"true"`
	Service string `json:"service" example:"trendspull-api"`
	Started string `json:"started" example:"2026-10-01T09:00:00Z"`
	Now     string `json:"now"     example:"2026-10-01T09:05:00Z"`
}

// ReadyCheck is the outcome of one store ping: ok, fail, skipped or unknown
type ReadyCheck struct {
	Name   string `json:"name"            example:"ch"`
	Status string `json:"status"          example:"ok"`
	Error  string `json:"error,omitempty" example:"dial tcp 127.0.0.1:9000: connect: connection refused"`
}

// ReadyResponse is ok when every configured store answers
// Archive reports whether fetched runs can be recorded at all
type ReadyResponse struct {
	Status  string       `json:"status"  example:"ok"`
	Archive bool         `json:"archive" example:"true"`
	Checks  []ReadyCheck `json:"checks"`
	Now     string       `json:"now"     example:"2026-10-01T09:05:00Z"`
}

// ServiceResponse carries uptime in seconds
type ServiceResponse struct {
	Name    string `json:"name"    example:"trendspull-api"`
	Started string `json:"started" example:"2026-10-01T09:00:00Z"`
	Uptime  int64  `json:"uptime"  example:"300"`
}

func stamp(t time.Time) string { return t.UTC().Format(time.RFC3339) }

// @Summary Liveness
// @Tags Meta
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /meta/health [get]
func (d Deps) health(*http.Request) (any, error) {
	return HealthResponse{OK: true, Service: d.ServiceName, Started: stamp(d.StartedAt), Now: stamp(time.Now())}, nil
}

// @Summary Readiness of the archive stores
// @Tags Meta
// @Produce json
// @Success 200 {object} ReadyResponse
// @Router /meta/ready [get]
func (d Deps) ready(r *http.Request) (any, error) {
	out := ReadyResponse{Status: "ok", Now: stamp(time.Now())}
	for _, s := range []struct {
		name  string
		store any
	}{{"pg", d.PG}, {"ch", d.CH}} {
		c := checkStore(r.Context(), s.name, s.store)
		switch c.Status {
		case "ok":
			out.Archive = true
		case "fail":
			out.Status = "fail"
		case "unknown":
			if out.Status == "ok" {
				out.Status = "degraded"
			}
		}
		out.Checks = append(out.Checks, c)
	}
	return out, nil
}

func checkStore(ctx context.Context, name string, store any) ReadyCheck {
	if store == nil {
		return ReadyCheck{Name: name, Status: "skipped"}
	}
	p, ok := store.(Pinger)
	if !ok {
		return ReadyCheck{Name: name, Status: "unknown"}
	}
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := p.Ping(ctx); err != nil {
		return ReadyCheck{Name: name, Status: "fail", Error: err.Error()}
	}
	return ReadyCheck{Name: name, Status: "ok"}
}

// @Summary Service name and uptime
// @Tags Meta
// @Produce json
// @Success 200 {object} ServiceResponse
// @Router /meta/service [get]
func (d Deps) service(*http.Request) (any, error) {
	return ServiceResponse{
		Name:    d.ServiceName,
		Started: stamp(d.StartedAt),
		Uptime:  int64(time.Since(d.StartedAt) / time.Second),
	}, nil
}
