package domain

// QQPoint pairs a theoretical normal quantile with the empirical quantile
// observed at the same rank position.
type QQPoint struct {
	Theoretical float64 `json:"theoretical"`
	Empirical   float64 `json:"empirical"`
}

// ResidualFitted pairs a residual with its fitted value for
// heteroscedasticity inspection.
type ResidualFitted struct {
	Fitted   float64 `json:"fitted"`
	Residual float64 `json:"residual"`
}

// GroupCounts holds one group's above/below split against the grand median
type GroupCounts struct {
	Group   string `json:"group"`
	Above   int    `json:"above"`
	AtBelow int    `json:"at_below"`
}

// PairwiseComparison represents a two-group median comparison
type PairwiseComparison struct {
	GroupA     string  `json:"group_a"`
	GroupB     string  `json:"group_b"`
	Statistic  float64 `json:"statistic"`
	PValue     float64 `json:"p_value"`
	Computable bool    `json:"computable"`
}

// MedianTestResult represents a grouped median comparison (Mood's test):
// an omnibus chi-squared statistic over the group x {above, at-or-below}
// contingency table plus all pairwise group comparisons.
type MedianTestResult struct {
	GrandMedian      float64              `json:"grand_median"`
	Statistic        float64              `json:"statistic"`
	DegreesOfFreedom int                  `json:"degrees_of_freedom"`
	PValue           float64              `json:"p_value"`
	Computable       bool                 `json:"computable"`
	Groups           []GroupCounts        `json:"groups"`
	Pairwise         []PairwiseComparison `json:"pairwise"`
}

// MonthSummary is the five-number summary of log cost for one month group,
// the data behind a grouped boxplot.
type MonthSummary struct {
	Month  string  `json:"month"`
	Count  int     `json:"count"`
	Min    float64 `json:"min"`
	Q1     float64 `json:"q1"`
	Median float64 `json:"median"`
	Q3     float64 `json:"q3"`
	Max    float64 `json:"max"`
}
