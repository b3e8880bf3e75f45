// Package http provides http transport for trends
package http

import (
	stdhttp "net/http"
	"strconv"

	"trendspull/internal/core/timeframe"
	"trendspull/internal/modkit/httpkit"
	perr "trendspull/internal/platform/errors"
	"trendspull/internal/services/trends/domain"
)

// Register mounts trends endpoints on the given router
func Register(r httpkit.Router, s domain.ServicePort) {
	h := &handlers{svc: s}

	// resolve a window only
	httpkit.PostJSON[timeframe.Request](r, "/timeframe", h.timeframe)

	// interest over time as a dated table
	httpkit.PostJSON[domain.InterestInput](r, "/interest", h.interest)

	// archived runs, newest first
	httpkit.Get(r, "/runs", h.runs)
}

type handlers struct{ svc domain.ServicePort }

// swagger:route POST /trends/timeframe Trends trendsTimeframe
// @Summary Resolve a timeframe selection
// @Tags Trends
// @Accept json
// @Produce json
// @Param payload body timeframe.Request true "Selection"
// @Success 200 {object} domain.TimeframeOutput "ok"
// @Failure 422 {object} errors.Wire "invalid mode, unit or date"
// @Router /trends/timeframe [post]
func (h *handlers) timeframe(r *stdhttp.Request, in timeframe.Request) (any, error) {
	return h.svc.Timeframe(r.Context(), in)
}

// swagger:route POST /trends/interest Trends trendsInterest
// @Summary Interest over time for up to five keywords
// @Tags Trends
// @Accept json
// @Produce json
// @Param payload body domain.InterestInput true "Query"
// @Success 200 {object} domain.Table "ok, data is null when there is no data"
// @Failure 429 {object} errors.Wire "upstream rate limited"
// @Router /trends/interest [post]
func (h *handlers) interest(r *stdhttp.Request, in domain.InterestInput) (any, error) {
	return h.svc.Interest(r.Context(), in)
}

// swagger:route GET /trends/runs Trends trendsRuns
// @Summary Archived runs
// @Tags Trends
// @Produce json
// @Param limit query int false "max rows (1-200)"
// @Success 200 {array} domain.Run "ok"
// @Router /trends/runs [get]
func (h *handlers) runs(r *stdhttp.Request) (any, error) {
	var in domain.RunsInput
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, perr.WithField(perr.Newf(perr.ErrorCodeValidation, "limit must be an integer"), "limit")
		}
		in.Limit = n
	}
	return h.svc.Runs(r.Context(), in)
}
