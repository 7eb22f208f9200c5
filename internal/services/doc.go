// Package services contains the business services behind the HTTP handlers.
// DashboardService serves the filter-and-aggregate flow; InsightsService
// serves the personalization flow. Both operate on the immutable table
// loaded at startup and are safe for concurrent use.
package services
