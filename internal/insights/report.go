package insights

import (
	"fmt"
	"strings"
)

// Recommendation categories, mutually exclusive, checked in this order.
const (
	RecommendHighValueFrequent = "high_value_frequent"
	RecommendPremium           = "premium"
	RecommendFrequent          = "frequent"
	RecommendValueSeeking      = "value_seeking"
)

var recommendationTexts = map[string]string{
	RecommendHighValueFrequent: "You're a high-value frequent shopper - personalized loyalty rewards recommended!",
	RecommendPremium:           "You love premium purchases - consider exclusive membership perks.",
	RecommendFrequent:          "Frequent shopper - subscription bundles could save you more!",
	RecommendValueSeeking:      "Look for seasonal deals and personalized offers to maximize value.",
}

// Comparison pairs the segment statistics with the global baseline, shaped
// for a two-series bar chart.
type Comparison struct {
	SegmentSpending  float64 `json:"segment_spending"`
	OverallSpending  float64 `json:"overall_spending"`
	SegmentFrequency float64 `json:"segment_frequency"`
	OverallFrequency float64 `json:"overall_frequency"`
}

// Report is the personalized shopper report.
type Report struct {
	Profile            Profile     `json:"profile"`
	Match              MatchState  `json:"match"`
	Message            string      `json:"message,omitempty"`
	SegmentSize        int         `json:"segment_size"`
	AvgSpending        float64     `json:"avg_spending"`
	TopCategory        string      `json:"top_category"`
	AvgFrequency       float64     `json:"avg_frequency"`
	Recommendation     string      `json:"recommendation,omitempty"`
	RecommendationText string      `json:"recommendation_text,omitempty"`
	Comparison         *Comparison `json:"comparison,omitempty"`
}

// recommend classifies the segment against the baseline. Precedence: both
// above baseline, then spending only, then frequency only, then the default.
func recommend(c *Comparison) (string, string) {
	spendsMore := c.SegmentSpending > c.OverallSpending
	shopsMore := c.SegmentFrequency > c.OverallFrequency

	var code string
	switch {
	case spendsMore && shopsMore:
		code = RecommendHighValueFrequent
	case spendsMore:
		code = RecommendPremium
	case shopsMore:
		code = RecommendFrequent
	default:
		code = RecommendValueSeeking
	}
	return code, recommendationTexts[code]
}

// Text renders the downloadable plain-text report. The field order is a
// fixed external contract: age group, income level, preferred channel,
// average amount (2 decimals), most purchased category, monthly order
// frequency (1 decimal), recommendation.
func (r *Report) Text() string {
	if r.Match == MatchNone {
		return fmt.Sprintf("Personalized Shopper Report:\n%s\n", r.Message)
	}

	var b strings.Builder
	b.WriteString("Personalized Shopper Report:\n")
	fmt.Fprintf(&b, "Age Group: %d\n", r.Profile.Age)
	fmt.Fprintf(&b, "Income Level: %s\n", r.Profile.IncomeLevel)
	fmt.Fprintf(&b, "Preferred Channel: %s\n", r.Profile.Channel)
	fmt.Fprintf(&b, "Avg Purchase Amount: $%.2f\n", r.AvgSpending)
	fmt.Fprintf(&b, "Most Purchased Category: %s\n", r.TopCategory)
	fmt.Fprintf(&b, "Monthly Order Frequency: %.1f\n", r.AvgFrequency)
	fmt.Fprintf(&b, "Recommendation: %s\n", r.RecommendationText)
	return b.String()
}
