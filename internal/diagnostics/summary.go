package diagnostics

import (
	moremath "github.com/aclements/go-moremath/stats"

	"memtrend/pkg/contracts/domain"
)

// MonthlySummaries computes the five-number summary of log cost for each
// month group, in calendar order. This is the data behind the grouped
// boxplot.
func MonthlySummaries(groups map[string][]float64) []domain.MonthSummary {
	names := sortedGroupNames(groups)
	summaries := make([]domain.MonthSummary, 0, len(names))

	for _, name := range names {
		values := groups[name]
		if len(values) == 0 {
			continue
		}
		s := moremath.Sample{Xs: append([]float64(nil), values...)}
		s.Sort()
		summaries = append(summaries, domain.MonthSummary{
			Month:  name,
			Count:  len(values),
			Min:    s.Quantile(0),
			Q1:     s.Quantile(0.25),
			Median: s.Quantile(0.5),
			Q3:     s.Quantile(0.75),
			Max:    s.Quantile(1),
		})
	}

	return summaries
}
