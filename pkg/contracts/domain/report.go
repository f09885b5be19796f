package domain

// AnalysisReport aggregates everything one pipeline run produced.
// A model that could not be fitted carries its failure reason instead of a
// fit; the rest of the report is still populated.
type AnalysisReport struct {
	Records []MemoryRecord `json:"records"`

	LinearModel       *ModelFit `json:"linear_model,omitempty"`
	LinearModelErr    string    `json:"linear_model_error,omitempty"`
	LogLinearModel    *ModelFit `json:"log_linear_model,omitempty"`
	LogLinearModelErr string    `json:"log_linear_model_error,omitempty"`

	QQ             []QQPoint        `json:"qq,omitempty"`
	ResidualFitted []ResidualFitted `json:"residual_fitted,omitempty"`
	MonthSummaries []MonthSummary   `json:"month_summaries,omitempty"`
	MedianTest     *MedianTestResult `json:"median_test,omitempty"`

	// SignificanceThreshold annotates median-test rows in the exported
	// report; it does not filter them.
	SignificanceThreshold float64 `json:"significance_threshold"`
}
