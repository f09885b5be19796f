package exporter

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"memtrend/pkg/contracts/domain"
)

// PrintSummary renders the human-readable run summary to w.
func PrintSummary(w io.Writer, report *domain.AnalysisReport) {
	title := color.New(color.FgCyan, color.Bold)
	ok := color.New(color.FgGreen)
	warn := color.New(color.FgYellow)
	bad := color.New(color.FgRed)

	title.Fprintln(w, "Memory price trend analysis")
	fmt.Fprintf(w, "  records: %d\n\n", len(report.Records))

	printModel := func(name string, fit *domain.ModelFit, fitErr string) {
		title.Fprintf(w, "%s\n", name)
		if fit == nil {
			bad.Fprintf(w, "  not fittable: %s\n\n", fitErr)
			return
		}
		fmt.Fprintf(w, "  %s = %.4g + %.4g * %s\n", fit.Response, fit.Intercept, fit.Slope, fit.Predictor)
		fmt.Fprintf(w, "  R² = %.4f  adj R² = %.4f  slope p = %.3g\n", fit.RSquared, fit.AdjRSquared, fit.PValue)
		if fit.PValue < report.SignificanceThreshold {
			ok.Fprintf(w, "  slope significant at %.2g\n", report.SignificanceThreshold)
		} else {
			warn.Fprintf(w, "  slope not significant at %.2g\n", report.SignificanceThreshold)
		}
		fmt.Fprintln(w)
	}

	printModel("Model A (linear)", report.LinearModel, report.LinearModelErr)
	printModel("Model B (log-linear)", report.LogLinearModel, report.LogLinearModelErr)

	if mt := report.MedianTest; mt != nil {
		title.Fprintln(w, "Mood's median test by month")
		fmt.Fprintf(w, "  grand median (log cost) = %.4g\n", mt.GrandMedian)
		if !mt.Computable {
			warn.Fprintln(w, "  omnibus test not computable (degenerate table)")
		} else {
			fmt.Fprintf(w, "  chi² = %.4g  df = %d  p = %.3g\n", mt.Statistic, mt.DegreesOfFreedom, mt.PValue)
			if mt.PValue < report.SignificanceThreshold {
				ok.Fprintf(w, "  monthly medians differ at %.2g\n", report.SignificanceThreshold)
			} else {
				warn.Fprintf(w, "  no evidence of differing monthly medians at %.2g\n", report.SignificanceThreshold)
			}
		}
		significant := 0
		for _, pw := range mt.Pairwise {
			if pw.Computable && pw.PValue < report.SignificanceThreshold {
				significant++
			}
		}
		fmt.Fprintf(w, "  pairwise comparisons: %d (%d significant at %.2g)\n",
			len(mt.Pairwise), significant, report.SignificanceThreshold)
	}
}
