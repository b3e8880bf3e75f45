package middleware

import (
	"net/http"
	"runtime/debug"

	perr "trendspull/internal/platform/errors"
	"trendspull/internal/platform/logger"
	phttp "trendspull/internal/platform/net/http"
)

var panicked = phttp.Handle(func(*http.Request) phttp.Response {
	return phttp.Error(perr.PanicErrf("panic recovered"))
})

// Recover turns a handler panic into the standard 500 envelope and logs the stack
// http.ErrAbortHandler is re-raised so net/http can drop the connection
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			if v == http.ErrAbortHandler {
				panic(v)
			}
			logger.C(r.Context()).Error().
				Interface("panic", v).
				Bytes("stack", debug.Stack()).
				Str("path", r.URL.Path).
				Msg("panic recovered")
			panicked(w, r)
		}()
		next.ServeHTTP(w, r)
	})
}
