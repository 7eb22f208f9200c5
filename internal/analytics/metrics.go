package analytics

import (
	"sort"

	"shopsight/internal/dataset"
)

// TotalRevenue sums the purchase amount over the table. A missing amount
// column or an empty table yields 0.
func TotalRevenue(t *dataset.Table) float64 {
	total := 0.0
	for _, r := range t.Rows() {
		if v, ok := t.NumericValue(r, dataset.ColPurchaseAmount); ok {
			total += v
		}
	}
	return total
}

// AveragePurchase is the mean purchase amount, 0 for an empty view so the
// presentation layer never sees NaN.
func AveragePurchase(t *dataset.Table) float64 {
	total, n := 0.0, 0
	for _, r := range t.Rows() {
		if v, ok := t.NumericValue(r, dataset.ColPurchaseAmount); ok {
			total += v
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return total / float64(n)
}

// UniqueCustomers counts distinct customer identifiers. When the identifier
// column is absent it falls back to the row count.
func UniqueCustomers(t *dataset.Table) int {
	if !t.HasColumn(dataset.ColCustomerID) {
		return t.Len()
	}
	seen := make(map[string]bool)
	for _, r := range t.Rows() {
		seen[r.CustomerID] = true
	}
	return len(seen)
}

// AverageFrequency is the mean of the dashboard-wide purchase frequency
// column, 0 when absent or empty.
func AverageFrequency(t *dataset.Table) float64 {
	return meanOf(t, dataset.ColFrequencyOfPurchase)
}

func meanOf(t *dataset.Table, column string) float64 {
	total, n := 0.0, 0
	for _, r := range t.Rows() {
		if v, ok := t.NumericValue(r, column); ok {
			total += v
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return total / float64(n)
}

// RevenueByCategory groups revenue by purchase category, descending by
// revenue with ties broken by label so chart ordering is reproducible.
// Rows missing either the category or a parseable amount are skipped.
func RevenueByCategory(t *dataset.Table) []CategoryRevenue {
	sums := make(map[string]float64)
	for _, r := range t.Rows() {
		category, ok := t.CategoricalValue(r, dataset.ColPurchaseCategory)
		if !ok || category == "" {
			continue
		}
		amount, ok := t.NumericValue(r, dataset.ColPurchaseAmount)
		if !ok {
			continue
		}
		sums[category] += amount
	}

	out := make([]CategoryRevenue, 0, len(sums))
	for category, revenue := range sums {
		out = append(out, CategoryRevenue{Category: category, Revenue: revenue})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Revenue != out[j].Revenue {
			return out[i].Revenue > out[j].Revenue
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// CountsBy builds a value-frequency table for a categorical column,
// descending by count with ties broken by label.
func CountsBy(t *dataset.Table, column string) []ValueCount {
	counts := make(map[string]int)
	for _, r := range t.Rows() {
		v, ok := t.CategoricalValue(r, column)
		if !ok || v == "" {
			continue
		}
		counts[v]++
	}

	out := make([]ValueCount, 0, len(counts))
	for v, n := range counts {
		out = append(out, ValueCount{Value: v, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Value < out[j].Value
	})
	return out
}

// MeanByGroup computes the mean of valueColumn per groupColumn value,
// descending by mean with ties broken by label. Rows where either column is
// missing or unparseable are skipped, never coerced.
func MeanByGroup(t *dataset.Table, groupColumn, valueColumn string) []GroupMean {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, r := range t.Rows() {
		group, ok := t.CategoricalValue(r, groupColumn)
		if !ok || group == "" {
			continue
		}
		v, ok := t.NumericValue(r, valueColumn)
		if !ok {
			continue
		}
		sums[group] += v
		counts[group]++
	}

	out := make([]GroupMean, 0, len(sums))
	for group, sum := range sums {
		out = append(out, GroupMean{Group: group, Mean: sum / float64(counts[group])})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Mean != out[j].Mean {
			return out[i].Mean > out[j].Mean
		}
		return out[i].Group < out[j].Group
	})
	return out
}

// AgeHistogram buckets the age column into the given number of bins.
func AgeHistogram(t *dataset.Table, bins int) []HistogramBin {
	if bins <= 0 || t.Len() == 0 || !t.HasColumn(dataset.ColAge) {
		return nil
	}

	minAge, maxAge := t.Rows()[0].Age, t.Rows()[0].Age
	for _, r := range t.Rows() {
		if r.Age < minAge {
			minAge = r.Age
		}
		if r.Age > maxAge {
			maxAge = r.Age
		}
	}

	width := (maxAge - minAge) / bins
	if width < 1 {
		width = 1
	}

	out := []HistogramBin{}
	for from := minAge; from <= maxAge; from += width {
		out = append(out, HistogramBin{From: from, To: from + width - 1})
	}
	for _, r := range t.Rows() {
		idx := (r.Age - minAge) / width
		if idx >= len(out) {
			idx = len(out) - 1
		}
		out[idx].Count++
	}
	return out
}

// BehaviorPoints builds the frequency-vs-amount scatter series. Rows without
// a parseable amount or a frequency column are excluded.
func BehaviorPoints(t *dataset.Table) []BehaviorPoint {
	out := []BehaviorPoint{}
	for _, r := range t.Rows() {
		freq, ok := t.NumericValue(r, dataset.ColFrequencyOfPurchase)
		if !ok {
			continue
		}
		amount, ok := t.NumericValue(r, dataset.ColPurchaseAmount)
		if !ok {
			continue
		}
		category, _ := t.CategoricalValue(r, dataset.ColPurchaseCategory)
		out = append(out, BehaviorPoint{Frequency: freq, Amount: amount, Category: category})
	}
	return out
}
