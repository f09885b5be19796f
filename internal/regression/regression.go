// Package regression fits the two ordinary-least-squares models of the
// analysis: cost per megabyte against fractional year, and its logarithm
// against fractional year. The log-linear model captures the exponential
// price decline as a straight line.
package regression

import (
	"context"
	"log/slog"
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	apperrors "memtrend/internal/errors"
	"memtrend/pkg/contracts/domain"
)

// Modeler fits simple linear regressions over cleaned records
type Modeler struct {
	logger *slog.Logger
	minObs int
}

// NewModeler creates a modeler. minObs is the smallest sample a model may
// be fitted on; three observations leave one degree of freedom for slope
// inference. A nil logger falls back to slog.Default().
func NewModeler(logger *slog.Logger, minObs int) *Modeler {
	if logger == nil {
		logger = slog.Default()
	}
	if minObs < 3 {
		minObs = 3
	}
	return &Modeler{logger: logger, minObs: minObs}
}

// FitLinear fits cost per megabyte against fractional year (Model A).
func (m *Modeler) FitLinear(ctx context.Context, records []domain.MemoryRecord) (*domain.ModelFit, error) {
	x := make([]float64, len(records))
	y := make([]float64, len(records))
	for i, rec := range records {
		x[i] = rec.FractionalYear
		y[i] = rec.CostPerMB
	}

	fit, err := m.fit(ctx, string(domain.ModelLinear), x, y)
	if err != nil {
		return nil, err
	}
	fit.Kind = domain.ModelLinear
	fit.Response = "cost_per_megabyte"
	fit.Predictor = "fractional_year"
	return fit, nil
}

// FitLogLinear fits log cost per megabyte against fractional year
// (Model B). A non-positive response value makes the model not fittable;
// it never produces NaN coefficients.
func (m *Modeler) FitLogLinear(ctx context.Context, records []domain.MemoryRecord) (*domain.ModelFit, error) {
	x := make([]float64, len(records))
	y := make([]float64, len(records))
	for i, rec := range records {
		if rec.CostPerMB <= 0 {
			return nil, apperrors.ModelNotFittableError(string(domain.ModelLogLinear),
				"response contains a non-positive value, log transform undefined")
		}
		x[i] = rec.FractionalYear
		y[i] = math.Log(rec.CostPerMB)
	}

	fit, err := m.fit(ctx, string(domain.ModelLogLinear), x, y)
	if err != nil {
		return nil, err
	}
	fit.Kind = domain.ModelLogLinear
	fit.Response = "log_cost_per_megabyte"
	fit.Predictor = "fractional_year"
	return fit, nil
}

// fit runs OLS with slope inference. Degenerate inputs are reported as
// MODEL_NOT_FITTABLE rather than returned as degenerate coefficients.
func (m *Modeler) fit(ctx context.Context, name string, x, y []float64) (*domain.ModelFit, error) {
	n := len(x)
	if n < m.minObs {
		return nil, apperrors.ModelNotFittableError(name, "insufficient observations")
	}

	xMean := stat.Mean(x, nil)
	sxx := 0.0
	for _, xi := range x {
		sxx += (xi - xMean) * (xi - xMean)
	}
	if sxx == 0 {
		return nil, apperrors.ModelNotFittableError(name, "predictor has zero variance")
	}

	alpha, beta := stat.LinearRegression(x, y, nil, false)

	fitted := make([]float64, n)
	residuals := make([]float64, n)
	rss := 0.0
	for i := range x {
		fitted[i] = alpha + beta*x[i]
		residuals[i] = y[i] - fitted[i]
		rss += residuals[i] * residuals[i]
	}

	r2 := stat.RSquared(x, y, nil, alpha, beta)
	dof := float64(n - 2)
	adjR2 := 1 - (1-r2)*float64(n-1)/dof

	stdErr := math.Sqrt(rss / dof / sxx)
	tStat := beta / stdErr
	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: dof}
	pValue := 2 * tDist.CDF(-math.Abs(tStat))

	m.logger.InfoContext(ctx, "model fitted",
		"model", name,
		"observations", n,
		"intercept", alpha,
		"slope", beta,
		"r_squared", r2,
		"p_value", pValue,
	)

	return &domain.ModelFit{
		Intercept:    alpha,
		Slope:        beta,
		SlopeStdErr:  stdErr,
		TStatistic:   tStat,
		PValue:       pValue,
		RSquared:     r2,
		AdjRSquared:  adjR2,
		Observations: n,
		Residuals:    residuals,
		FittedValues: fitted,
	}, nil
}
