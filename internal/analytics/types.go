package analytics

// CategoryRevenue is one bar of the revenue-by-category chart.
type CategoryRevenue struct {
	Category string  `json:"category"`
	Revenue  float64 `json:"revenue"`
}

// ValueCount is one slice/bar of a value-frequency chart.
type ValueCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// GroupMean is one bar of a grouped-mean chart.
type GroupMean struct {
	Group string  `json:"group"`
	Mean  float64 `json:"mean"`
}

// HistogramBin is one bucket of the age histogram.
type HistogramBin struct {
	From  int `json:"from"`
	To    int `json:"to"`
	Count int `json:"count"`
}

// BehaviorPoint is one point of the frequency-vs-amount scatter.
type BehaviorPoint struct {
	Frequency float64 `json:"frequency"`
	Amount    float64 `json:"amount"`
	Category  string  `json:"category,omitempty"`
}
