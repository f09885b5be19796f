package diagnostics

import (
	"sort"

	"gonum.org/v1/gonum/stat/distuv"

	"memtrend/pkg/contracts/domain"
)

// QQNormal pairs each sorted sample value with the standard normal
// quantile at the same rank, using the (i - 0.5)/n plotting position.
// The result is descriptive; straight-line points indicate normality.
func QQNormal(values []float64) []domain.QQPoint {
	n := len(values)
	if n == 0 {
		return nil
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	norm := distuv.Normal{Mu: 0, Sigma: 1}
	points := make([]domain.QQPoint, n)
	for i, v := range sorted {
		p := (float64(i) + 0.5) / float64(n)
		points[i] = domain.QQPoint{
			Theoretical: norm.Quantile(p),
			Empirical:   v,
		}
	}
	return points
}

// PairResiduals pairs each residual with its fitted value for
// heteroscedasticity inspection.
func PairResiduals(fit *domain.ModelFit) []domain.ResidualFitted {
	if fit == nil || len(fit.Residuals) != len(fit.FittedValues) {
		return nil
	}
	pairs := make([]domain.ResidualFitted, len(fit.Residuals))
	for i := range fit.Residuals {
		pairs[i] = domain.ResidualFitted{
			Fitted:   fit.FittedValues[i],
			Residual: fit.Residuals[i],
		}
	}
	return pairs
}
