package services

import (
	"context"
	"log/slog"

	"shopsight/internal/analytics"
	"shopsight/internal/config"
	"shopsight/internal/dataset"
)

// ageHistogramBins matches the dashboard's demographics chart resolution.
const ageHistogramBins = 10

// FilterOptions lists the distinct values of every filterable attribute,
// sorted, for populating the dashboard multi-selects.
type FilterOptions struct {
	Channels     []string `json:"channels"`
	Categories   []string `json:"categories"`
	Genders      []string `json:"genders"`
	IncomeLevels []string `json:"income_levels"`
}

// KPISet holds the headline metrics of the filtered view.
type KPISet struct {
	TotalRevenue     float64 `json:"total_revenue"`
	AveragePurchase  float64 `json:"average_purchase"`
	UniqueCustomers  int     `json:"unique_customers"`
	AverageFrequency float64 `json:"average_frequency"`
}

// ChartSet carries every chart dataset the dashboard renders.
type ChartSet struct {
	RevenueByCategory []analytics.CategoryRevenue `json:"revenue_by_category"`
	ChannelCounts     []analytics.ValueCount      `json:"channel_counts"`
	GenderCounts      []analytics.ValueCount      `json:"gender_counts"`
	AgeHistogram      []analytics.HistogramBin    `json:"age_histogram"`
	SpendingByIncome  []analytics.GroupMean       `json:"spending_by_income"`
	LoyaltyByCategory []analytics.GroupMean       `json:"loyalty_by_category"`
	BehaviorPoints    []analytics.BehaviorPoint   `json:"behavior_points"`
}

// Summary is the full dashboard payload for one filtered view.
type Summary struct {
	TotalRows    int      `json:"total_rows"`
	FilteredRows int      `json:"filtered_rows"`
	KPIs         KPISet   `json:"kpis"`
	Charts       ChartSet `json:"charts"`
}

// Preview is the leading slice of the raw dataset plus its shape.
type Preview struct {
	Rows             []dataset.Record `json:"rows"`
	TotalRows        int              `json:"total_rows"`
	Columns          []string         `json:"columns"`
	MalformedAmounts int              `json:"malformed_amounts"`
}

// DashboardService serves the filter-and-aggregate flow over the dataset
// loaded at startup. The table is immutable, so the service holds no locks.
type DashboardService struct {
	table  *dataset.Table
	stats  dataset.LoadStats
	cfg    config.DatasetConfig
	logger *slog.Logger
}

// NewDashboardService creates a dashboard service over a loaded table.
func NewDashboardService(table *dataset.Table, stats dataset.LoadStats, cfg config.DatasetConfig, logger *slog.Logger) *DashboardService {
	return &DashboardService{
		table:  table,
		stats:  stats,
		cfg:    cfg,
		logger: logger.With(slog.String("service", "dashboard")),
	}
}

// Options returns the distinct values for each filterable attribute.
func (s *DashboardService) Options(ctx context.Context) (*FilterOptions, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return &FilterOptions{
		Channels:     s.table.Options(dataset.ColPurchaseChannel),
		Categories:   s.table.Options(dataset.ColPurchaseCategory),
		Genders:      s.table.Options(dataset.ColGender),
		IncomeLevels: s.table.Options(dataset.ColIncomeLevel),
	}, nil
}

// Summary applies the selection and aggregates KPIs and chart datasets over
// the filtered view. An empty selection means the unfiltered table; a
// selection that matches nothing yields zero KPIs and empty charts.
func (s *DashboardService) Summary(ctx context.Context, selection analytics.Selection) (*Summary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	view := analytics.Filter(s.table, selection)

	s.logger.DebugContext(ctx, "dashboard summary computed",
		slog.Int("total_rows", s.table.Len()),
		slog.Int("filtered_rows", view.Len()),
	)

	return &Summary{
		TotalRows:    s.table.Len(),
		FilteredRows: view.Len(),
		KPIs: KPISet{
			TotalRevenue:     analytics.TotalRevenue(view),
			AveragePurchase:  analytics.AveragePurchase(view),
			UniqueCustomers:  analytics.UniqueCustomers(view),
			AverageFrequency: analytics.AverageFrequency(view),
		},
		Charts: ChartSet{
			RevenueByCategory: analytics.RevenueByCategory(view),
			ChannelCounts:     analytics.CountsBy(view, dataset.ColPurchaseChannel),
			GenderCounts:      analytics.CountsBy(view, dataset.ColGender),
			AgeHistogram:      analytics.AgeHistogram(view, ageHistogramBins),
			SpendingByIncome:  analytics.MeanByGroup(view, dataset.ColIncomeLevel, dataset.ColPurchaseAmount),
			LoyaltyByCategory: analytics.MeanByGroup(view, dataset.ColPurchaseCategory, dataset.ColBrandLoyalty),
			BehaviorPoints:    analytics.BehaviorPoints(view),
		},
	}, nil
}

// Preview returns the configured number of leading rows in file order.
func (s *DashboardService) Preview(ctx context.Context) (*Preview, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return &Preview{
		Rows:             s.table.Head(s.cfg.PreviewRows),
		TotalRows:        s.table.Len(),
		Columns:          s.table.Columns(),
		MalformedAmounts: s.stats.MalformedAmounts,
	}, nil
}
