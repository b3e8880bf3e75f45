package domain

import (
	"context"

	"trendspull/internal/core/timeframe"
)

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	Timeframe(ctx context.Context, in timeframe.Request) (TimeframeOutput, error)
	Interest(ctx context.Context, in InterestInput) (*Table, error)
	Runs(ctx context.Context, in RunsInput) ([]Run, error)
}
