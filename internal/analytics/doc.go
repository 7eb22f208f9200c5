// Package analytics implements the filter-aggregate half of the dashboard
// pipeline: categorical inclusion filters over the loaded table and the
// pure aggregation functions behind the KPI cards and charts. Every function
// here treats its input as read-only and defines empty input as a value
// (zero scalars, empty slices), not as a fault.
package analytics
