package http

import (
	"context"

	"shopsight/internal/insights"
)

// InsightsService defines the personalization operations the handler
// depends on. Tests substitute a stub; production wires
// *services.InsightsService.
type InsightsService interface {
	GetInsights(ctx context.Context, profile insights.Profile) (*insights.Report, error)
	GetReport(ctx context.Context, profile insights.Profile) (string, error)
}
