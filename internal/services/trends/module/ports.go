package module

import (
	"context"

	"trendspull/internal/core/timeframe"
	"trendspull/internal/services/trends/domain"
)

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

type adaptTrendsPort struct{ svc domain.ServicePort }

// Timeframe resolves a window without fetching
func (a adaptTrendsPort) Timeframe(ctx context.Context, in timeframe.Request) (domain.TimeframeOutput, error) {
	return a.svc.Timeframe(ctx, in)
}

// Interest fetches interest over time as a dated table
func (a adaptTrendsPort) Interest(ctx context.Context, in domain.InterestInput) (*domain.Table, error) {
	return a.svc.Interest(ctx, in)
}

// Runs lists archived fetches
func (a adaptTrendsPort) Runs(ctx context.Context, in domain.RunsInput) ([]domain.Run, error) {
	return a.svc.Runs(ctx, in)
}
