package insights

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopsight/internal/dataset"
)

func insightsTable(rows []dataset.Record) *dataset.Table {
	return dataset.NewTable([]string{
		dataset.ColCustomerID, dataset.ColAge, dataset.ColIncomeLevel,
		dataset.ColPurchaseChannel, dataset.ColProductCategory,
		dataset.ColPurchaseAmount, dataset.ColPurchaseFrequency,
	}, rows)
}

func row(age int, income, channel, category string, amount, freq float64) dataset.Record {
	return dataset.Record{
		Age:               age,
		IncomeLevel:       income,
		PurchaseChannel:   channel,
		ProductCategory:   category,
		PurchaseAmount:    amount,
		AmountValid:       true,
		PurchaseFrequency: freq,
	}
}

func TestMatch_Exact(t *testing.T) {
	table := insightsTable([]dataset.Record{
		row(30, "High", "Online", "Electronics", 200, 5),
		row(30, "High", "Online", "Electronics", 100, 3),
		row(50, "Low", "Store", "Apparel", 10, 1),
	})

	report := Match(table, Profile{Age: 30, IncomeLevel: "High", Channel: "Online", Category: "Electronics"})

	assert.Equal(t, MatchExact, report.Match)
	assert.Equal(t, 2, report.SegmentSize)
	assert.Equal(t, 150.0, report.AvgSpending)
	assert.Equal(t, "Electronics", report.TopCategory)
	assert.Equal(t, 4.0, report.AvgFrequency)
	assert.Empty(t, report.Message)
}

func TestMatch_RelaxedFallback(t *testing.T) {
	table := insightsTable([]dataset.Record{
		row(25, "High", "Store", "Apparel", 80, 2),
		row(40, "High", "Mobile", "Home", 120, 6),
		row(55, "High", "Store", "Apparel", 100, 4),
		row(60, "Low", "Online", "Garden", 10, 1),
	})

	// No row has age 30 + High + Online, but three rows have income High.
	report := Match(table, Profile{Age: 30, IncomeLevel: "High", Channel: "Online", Category: "Apparel"})

	require.Equal(t, MatchRelaxed, report.Match)
	assert.Equal(t, 3, report.SegmentSize)
	assert.Equal(t, 100.0, report.AvgSpending)
	assert.Equal(t, 4.0, report.AvgFrequency)
	assert.Equal(t, "Apparel", report.TopCategory)
	assert.NotEmpty(t, report.Message)
}

func TestMatch_NoData(t *testing.T) {
	table := insightsTable([]dataset.Record{
		row(30, "High", "Online", "Electronics", 200, 5),
	})

	report := Match(table, Profile{Age: 30, IncomeLevel: "Ultra", Channel: "Online", Category: "Electronics"})

	assert.Equal(t, MatchNone, report.Match)
	assert.Equal(t, 0, report.SegmentSize)
	assert.Zero(t, report.AvgSpending)
	assert.Nil(t, report.Comparison)
	assert.Empty(t, report.Recommendation)
	assert.NotEmpty(t, report.Message)
}

func TestMatch_EmptyTable(t *testing.T) {
	report := Match(insightsTable(nil), Profile{Age: 30, IncomeLevel: "High", Channel: "Online", Category: "X"})
	assert.Equal(t, MatchNone, report.Match)
}

func TestTopProductCategory_FirstEncounterTieBreak(t *testing.T) {
	table := insightsTable([]dataset.Record{
		row(30, "High", "Online", "Home", 10, 1),
		row(30, "High", "Online", "Electronics", 10, 1),
		row(30, "High", "Online", "Electronics", 10, 1),
		row(30, "High", "Online", "Home", 10, 1),
	})

	report := Match(table, Profile{Age: 30, IncomeLevel: "High", Channel: "Online", Category: "Home"})

	// Home and Electronics tie at 2; Home was seen first.
	assert.Equal(t, "Home", report.TopCategory)
}

func TestRecommendationPrecedence(t *testing.T) {
	tests := []struct {
		name       string
		comparison Comparison
		want       string
	}{
		{
			name:       "both above baseline",
			comparison: Comparison{SegmentSpending: 200, OverallSpending: 100, SegmentFrequency: 6, OverallFrequency: 3},
			want:       RecommendHighValueFrequent,
		},
		{
			name:       "spending only",
			comparison: Comparison{SegmentSpending: 200, OverallSpending: 100, SegmentFrequency: 2, OverallFrequency: 3},
			want:       RecommendPremium,
		},
		{
			name:       "frequency only",
			comparison: Comparison{SegmentSpending: 50, OverallSpending: 100, SegmentFrequency: 6, OverallFrequency: 3},
			want:       RecommendFrequent,
		},
		{
			name:       "neither above baseline",
			comparison: Comparison{SegmentSpending: 50, OverallSpending: 100, SegmentFrequency: 2, OverallFrequency: 3},
			want:       RecommendValueSeeking,
		},
		{
			name:       "equal is not above",
			comparison: Comparison{SegmentSpending: 100, OverallSpending: 100, SegmentFrequency: 3, OverallFrequency: 3},
			want:       RecommendValueSeeking,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, text := recommend(&tt.comparison)
			assert.Equal(t, tt.want, code)
			assert.Equal(t, recommendationTexts[tt.want], text)
		})
	}
}

func TestMatch_ComparisonAgainstGlobalBaseline(t *testing.T) {
	table := insightsTable([]dataset.Record{
		row(30, "High", "Online", "Electronics", 300, 6),
		row(50, "Low", "Store", "Apparel", 100, 2),
		row(60, "Low", "Store", "Apparel", 50, 1),
	})

	report := Match(table, Profile{Age: 30, IncomeLevel: "High", Channel: "Online", Category: "Electronics"})

	require.NotNil(t, report.Comparison)
	assert.Equal(t, 300.0, report.Comparison.SegmentSpending)
	assert.Equal(t, 150.0, report.Comparison.OverallSpending)
	assert.Equal(t, 6.0, report.Comparison.SegmentFrequency)
	assert.Equal(t, 3.0, report.Comparison.OverallFrequency)
	assert.Equal(t, RecommendHighValueFrequent, report.Recommendation)
}

func TestReportText(t *testing.T) {
	report := &Report{
		Profile:            Profile{Age: 30, IncomeLevel: "High", Channel: "Online", Category: "Electronics"},
		Match:              MatchExact,
		AvgSpending:        123.456,
		TopCategory:        "Electronics",
		AvgFrequency:       4.26,
		Recommendation:     RecommendPremium,
		RecommendationText: recommendationTexts[RecommendPremium],
	}

	text := report.Text()

	assert.Contains(t, text, "Age Group: 30")
	assert.Contains(t, text, "Income Level: High")
	assert.Contains(t, text, "Preferred Channel: Online")
	assert.Contains(t, text, "Avg Purchase Amount: $123.46")
	assert.Contains(t, text, "Most Purchased Category: Electronics")
	assert.Contains(t, text, "Monthly Order Frequency: 4.3")
	assert.Contains(t, text, "Recommendation: "+recommendationTexts[RecommendPremium])

	// Fixed field order.
	ageIdx := strings.Index(text, "Age Group")
	incomeIdx := strings.Index(text, "Income Level")
	channelIdx := strings.Index(text, "Preferred Channel")
	amountIdx := strings.Index(text, "Avg Purchase Amount")
	categoryIdx := strings.Index(text, "Most Purchased Category")
	freqIdx := strings.Index(text, "Monthly Order Frequency")
	recIdx := strings.Index(text, "Recommendation")
	assert.True(t, ageIdx < incomeIdx && incomeIdx < channelIdx && channelIdx < amountIdx &&
		amountIdx < categoryIdx && categoryIdx < freqIdx && freqIdx < recIdx)
}

func TestReportText_NoData(t *testing.T) {
	report := &Report{Match: MatchNone, Message: "Not enough shopper data for this profile - no insights available."}

	text := report.Text()

	assert.Contains(t, text, "no insights available")
	assert.NotContains(t, text, "Avg Purchase Amount")
}
