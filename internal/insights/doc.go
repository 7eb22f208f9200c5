// Package insights matches a user profile against the full dataset and
// produces the personalized shopper report: segment statistics, a comparison
// against the global baseline, and a rule-based recommendation.
package insights
