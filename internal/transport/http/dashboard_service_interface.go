package http

import (
	"context"

	"shopsight/internal/analytics"
	"shopsight/internal/services"
)

// DashboardService defines the dashboard operations the handler depends on.
// Tests substitute a stub; production wires *services.DashboardService.
type DashboardService interface {
	Options(ctx context.Context) (*services.FilterOptions, error)
	Summary(ctx context.Context, selection analytics.Selection) (*services.Summary, error)
	Preview(ctx context.Context) (*services.Preview, error)
}
