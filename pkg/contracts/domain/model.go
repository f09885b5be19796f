package domain

// ModelKind identifies which regression model a fit belongs to
type ModelKind string

const (
	// ModelLinear regresses cost per megabyte on fractional year.
	ModelLinear ModelKind = "linear"
	// ModelLogLinear regresses log cost per megabyte on fractional year.
	ModelLogLinear ModelKind = "log_linear"
)

// ModelFit represents the result of fitting a simple linear regression
type ModelFit struct {
	Kind          ModelKind `json:"kind"`
	Response      string    `json:"response"`
	Predictor     string    `json:"predictor"`
	Intercept     float64   `json:"intercept"`
	Slope         float64   `json:"slope"`
	SlopeStdErr   float64   `json:"slope_std_err"`
	TStatistic    float64   `json:"t_statistic"`
	PValue        float64   `json:"p_value"`
	RSquared      float64   `json:"r_squared"`
	AdjRSquared   float64   `json:"adj_r_squared"`
	Observations  int       `json:"observations"`
	Residuals     []float64 `json:"residuals,omitempty"`
	FittedValues  []float64 `json:"fitted_values,omitempty"`
}

// Predict returns the fitted response at predictor value x.
func (m *ModelFit) Predict(x float64) float64 {
	return m.Intercept + m.Slope*x
}
