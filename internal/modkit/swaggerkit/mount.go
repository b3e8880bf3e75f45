// Package swaggerkit serves the embedded OpenAPI document, rendered through a registered
// swag spec, and the Swagger UI that reads it
package swaggerkit

import (
	"net/http"

	phttp "trendspull/internal/platform/net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

// Mount serves /api/docs (UI) and /api/docs/doc.json when enabled
func Mount(r phttp.Router, enabled bool) {
	if !enabled {
		return
	}
	r.Get("/api/docs", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/api/docs/", http.StatusPermanentRedirect)
	})
	r.Get("/api/docs/doc.json", serveDocJSON())
	r.Handle("/api/docs/*", httpSwagger.Handler(
		httpSwagger.InstanceName(SwaggerInfo.InstanceName()),
		httpSwagger.URL("/api/docs/doc.json"),
	))
}
