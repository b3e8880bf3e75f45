// Package net reads request scoped values set by the transport middleware
package net

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// RequestID returns the id chi's RequestID middleware put on ctx, empty when absent
func RequestID(ctx context.Context) string { return chimw.GetReqID(ctx) }
