package httpkit

import "net/http"

// APIV1 is the path every module is mounted under
const APIV1 = "/api/v1"

// MountAPIV1 scopes mount to /api/v1 with mw applied to everything inside
func MountAPIV1(r Router, mw []func(http.Handler) http.Handler, mount func(Router)) {
	r.Route(APIV1, func(api Router) {
		if len(mw) > 0 {
			api.Use(mw...)
		}
		mount(api)
	})
}
