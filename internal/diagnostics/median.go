package diagnostics

import (
	"context"
	"log/slog"
	"math"
	"sort"

	moremath "github.com/aclements/go-moremath/stats"
	"gonum.org/v1/gonum/stat/distuv"

	"memtrend/pkg/contracts/domain"
)

// GroupLogCostByMonth buckets log cost per megabyte by month label.
func GroupLogCostByMonth(records []domain.MemoryRecord) map[string][]float64 {
	groups := make(map[string][]float64)
	for _, rec := range records {
		groups[rec.Month] = append(groups[rec.Month], math.Log(rec.CostPerMB))
	}
	return groups
}

// MedianTest runs Mood's median test across the groups: the grand median
// is computed over all observations, each group is split into counts above
// vs at-or-below it, and a chi-squared test of independence is applied to
// the resulting group x 2 contingency table. All pairwise two-group
// comparisons are run the same way, each against the pooled median of that
// pair.
//
// A degenerate table (an empty above or at-or-below margin, as when every
// observation equals the grand median) is reported as not computable for
// that comparison rather than as NaN.
func MedianTest(ctx context.Context, groups map[string][]float64) *domain.MedianTestResult {
	logger := slog.Default()

	names := sortedGroupNames(groups)
	var all []float64
	for _, name := range names {
		all = append(all, groups[name]...)
	}

	result := &domain.MedianTestResult{
		GrandMedian: median(all),
	}

	counts := make([]domain.GroupCounts, 0, len(names))
	for _, name := range names {
		above, atBelow := splitCounts(groups[name], result.GrandMedian)
		counts = append(counts, domain.GroupCounts{Group: name, Above: above, AtBelow: atBelow})
	}
	result.Groups = counts

	stat, dof, ok := chiSquaredIndependence(counts)
	result.Statistic = stat
	result.DegreesOfFreedom = dof
	result.Computable = ok
	if ok {
		result.PValue = distuv.ChiSquared{K: float64(dof)}.Survival(stat)
	} else {
		result.PValue = 1
	}

	// All pairwise comparisons are reported; filtering by significance is
	// the caller's decision.
	for i := 0; i < len(names); i++ {
		for j := i + 1; j < len(names); j++ {
			result.Pairwise = append(result.Pairwise,
				pairwiseComparison(names[i], groups[names[i]], names[j], groups[names[j]]))
		}
	}

	logger.InfoContext(ctx, "median test completed",
		"groups", len(names),
		"statistic", result.Statistic,
		"p_value", result.PValue,
		"computable", result.Computable,
		"pairwise", len(result.Pairwise),
	)

	return result
}

// pairwiseComparison runs the two-group median test against the pooled
// median of the pair.
func pairwiseComparison(nameA string, a []float64, nameB string, b []float64) domain.PairwiseComparison {
	pooled := make([]float64, 0, len(a)+len(b))
	pooled = append(pooled, a...)
	pooled = append(pooled, b...)
	m := median(pooled)

	aboveA, atBelowA := splitCounts(a, m)
	aboveB, atBelowB := splitCounts(b, m)
	counts := []domain.GroupCounts{
		{Group: nameA, Above: aboveA, AtBelow: atBelowA},
		{Group: nameB, Above: aboveB, AtBelow: atBelowB},
	}

	stat, dof, ok := chiSquaredIndependence(counts)
	cmp := domain.PairwiseComparison{
		GroupA:     nameA,
		GroupB:     nameB,
		Statistic:  stat,
		Computable: ok,
		PValue:     1,
	}
	if ok {
		cmp.PValue = distuv.ChiSquared{K: float64(dof)}.Survival(stat)
	}
	return cmp
}

// chiSquaredIndependence computes the test statistic for a groups x
// {above, at-or-below} contingency table. ok is false when a margin is
// zero and the statistic is undefined.
func chiSquaredIndependence(counts []domain.GroupCounts) (stat float64, dof int, ok bool) {
	if len(counts) < 2 {
		return 0, 0, false
	}

	totalAbove, totalAtBelow := 0, 0
	rowTotals := make([]int, len(counts))
	for i, c := range counts {
		rowTotals[i] = c.Above + c.AtBelow
		totalAbove += c.Above
		totalAtBelow += c.AtBelow
	}
	n := totalAbove + totalAtBelow
	if n == 0 || totalAbove == 0 || totalAtBelow == 0 {
		return 0, 0, false
	}
	for _, rt := range rowTotals {
		if rt == 0 {
			return 0, 0, false
		}
	}

	for i, c := range counts {
		expAbove := float64(rowTotals[i]) * float64(totalAbove) / float64(n)
		expAtBelow := float64(rowTotals[i]) * float64(totalAtBelow) / float64(n)
		stat += (float64(c.Above) - expAbove) * (float64(c.Above) - expAbove) / expAbove
		stat += (float64(c.AtBelow) - expAtBelow) * (float64(c.AtBelow) - expAtBelow) / expAtBelow
	}

	return stat, len(counts) - 1, true
}

// splitCounts counts observations strictly above vs at-or-below the median
func splitCounts(values []float64, m float64) (above, atBelow int) {
	for _, v := range values {
		if v > m {
			above++
		} else {
			atBelow++
		}
	}
	return above, atBelow
}

// median computes the sample median via the sorted-sample percentile idiom
func median(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	s := moremath.Sample{Xs: append([]float64(nil), values...)}
	s.Sort()
	return s.Quantile(0.5)
}

// sortedGroupNames orders month labels calendar-first, then any remaining
// labels lexically for deterministic output.
func sortedGroupNames(groups map[string][]float64) []string {
	names := make([]string, 0, len(groups))
	seen := make(map[string]bool, len(groups))
	for _, m := range domain.MonthAbbreviations {
		if _, ok := groups[m]; ok {
			names = append(names, m)
			seen[m] = true
		}
	}
	var rest []string
	for name := range groups {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(names, rest...)
}
