package insights

import (
	"shopsight/internal/dataset"
)

// MatchState is the terminal outcome of one matching attempt.
type MatchState string

const (
	// MatchExact means rows matched on age, income level and channel.
	MatchExact MatchState = "exact"
	// MatchRelaxed means the exact match was empty and the segment fell
	// back to income level alone.
	MatchRelaxed MatchState = "relaxed"
	// MatchNone means even the relaxed match was empty; no statistics are
	// computed.
	MatchNone MatchState = "no_data"
)

// Profile is the user-supplied attribute combination. Category feeds only
// the report echo and recommendation text; it is not a match key.
type Profile struct {
	Age         int    `json:"age" validate:"required,gte=1,lte=120"`
	IncomeLevel string `json:"income_level" validate:"required"`
	Channel     string `json:"channel" validate:"required"`
	Category    string `json:"category" validate:"required"`
}

// Match runs the segment matcher against the full, unfiltered table.
// It never computes statistics over an empty subset: the exact match falls
// back to income level alone, and if that is also empty the report carries
// the no-data state instead of numbers.
func Match(t *dataset.Table, p Profile) *Report {
	segment := subset(t, func(r dataset.Record) bool {
		return r.Age == p.Age && r.IncomeLevel == p.IncomeLevel && r.PurchaseChannel == p.Channel
	})
	state := MatchExact

	if segment.Len() == 0 {
		segment = subset(t, func(r dataset.Record) bool {
			return r.IncomeLevel == p.IncomeLevel
		})
		state = MatchRelaxed
	}

	if segment.Len() == 0 {
		return &Report{
			Profile: p,
			Match:   MatchNone,
			Message: "Not enough shopper data for this profile - no insights available.",
		}
	}

	avgSpending := meanAmount(segment)
	avgFrequency := meanFrequency(segment)
	comparison := &Comparison{
		SegmentSpending:  avgSpending,
		OverallSpending:  meanAmount(t),
		SegmentFrequency: avgFrequency,
		OverallFrequency: meanFrequency(t),
	}

	report := &Report{
		Profile:      p,
		Match:        state,
		SegmentSize:  segment.Len(),
		AvgSpending:  avgSpending,
		TopCategory:  topProductCategory(segment),
		AvgFrequency: avgFrequency,
		Comparison:   comparison,
	}
	report.Recommendation, report.RecommendationText = recommend(comparison)
	if state == MatchRelaxed {
		report.Message = "No exact match - showing closest matches instead."
	}
	return report
}

func subset(t *dataset.Table, keep func(dataset.Record) bool) *dataset.Table {
	rows := []dataset.Record{}
	for _, r := range t.Rows() {
		if keep(r) {
			rows = append(rows, r)
		}
	}
	return t.WithRows(rows)
}

func meanAmount(t *dataset.Table) float64 {
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

// meanFrequency reads the personalization-flow frequency column, which is
// named differently from the dashboard-wide one in the source dataset.
func meanFrequency(t *dataset.Table) float64 {
	total, n := 0.0, 0
	for _, r := range t.Rows() {
		if v, ok := t.NumericValue(r, dataset.ColPurchaseFrequency); ok {
			total += v
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return total / float64(n)
}

// topProductCategory returns the modal product category of the segment.
// Ties go to the value encountered first in row order.
func topProductCategory(t *dataset.Table) string {
	counts := make(map[string]int)
	order := []string{}
	for _, r := range t.Rows() {
		v, ok := t.CategoricalValue(r, dataset.ColProductCategory)
		if !ok || v == "" {
			continue
		}
		if counts[v] == 0 {
			order = append(order, v)
		}
		counts[v]++
	}

	top, best := "", 0
	for _, v := range order {
		if counts[v] > best {
			top, best = v, counts[v]
		}
	}
	return top
}
