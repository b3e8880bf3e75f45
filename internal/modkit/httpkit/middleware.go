package httpkit

import (
	"compress/flate"
	"strings"
	"time"

	"trendspull/internal/platform/config"
	"trendspull/internal/platform/net/middleware"
)

// CommonStack is the middleware every versioned route runs behind, configured from cfg:
// CORS_ORIGINS (comma separated), REQUEST_TIMEOUT, SLOW_REQUEST, MAX_IN_FLIGHT
// the timeout has to cover an upstream trends fetch including its retries
func CommonStack(cfg config.Conf) []middleware.Middleware {
	var origins []string
	for o := range strings.SplitSeq(cfg.MayString("CORS_ORIGINS", ""), ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return []middleware.Middleware{
		middleware.RequestID(),
		middleware.RealIP(),
		middleware.AccessLog(cfg.MayDuration("SLOW_REQUEST", 5*time.Second)),
		middleware.Recover,
		middleware.StripSlashes(),
		middleware.NoCache(),
		middleware.CORS(origins),
		middleware.Throttle(cfg.MayInt("MAX_IN_FLIGHT", 32), 10*time.Second),
		middleware.JSONOnly(),
		middleware.Compress(flate.BestSpeed),
		middleware.Timeout(cfg.MayDuration("REQUEST_TIMEOUT", 90*time.Second)),
	}
}
