package exporter

import (
	"context"
	"fmt"
	"log/slog"

	"memtrend/pkg/contracts/domain"
)

// Report table file names under the output directory.
const (
	FileCleanedRecords  = "cleaned_records.csv"
	FileModelSummary    = "model_summary.csv"
	FileQQPoints        = "qq_points.csv"
	FileResidualsFitted = "residuals_fitted.csv"
	FileMonthlyBoxplot  = "monthly_boxplot.csv"
	FileMedianTest      = "median_test.csv"
)

// ReportExporter writes the analysis report tables as CSV files
type ReportExporter struct {
	logger *slog.Logger
	writer *CSVWriter
}

// NewReportExporter creates a report exporter writing under outDir.
// A nil logger falls back to slog.Default().
func NewReportExporter(logger *slog.Logger, outDir string) *ReportExporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportExporter{
		logger: logger,
		writer: NewCSVWriter(outDir),
	}
}

// Export writes every report table. Any table failure aborts the export.
func (e *ReportExporter) Export(ctx context.Context, report *domain.AnalysisReport) error {
	steps := []struct {
		name string
		fn   func(*domain.AnalysisReport) error
	}{
		{FileCleanedRecords, e.exportRecords},
		{FileModelSummary, e.exportModelSummary},
		{FileQQPoints, e.exportQQ},
		{FileResidualsFitted, e.exportResidualsFitted},
		{FileMonthlyBoxplot, e.exportMonthlyBoxplot},
		{FileMedianTest, e.exportMedianTest},
	}

	for _, step := range steps {
		if err := step.fn(report); err != nil {
			return fmt.Errorf("export %s: %w", step.name, err)
		}
	}

	e.logger.InfoContext(ctx, "report exported", "tables", len(steps))
	return nil
}

func (e *ReportExporter) exportRecords(report *domain.AnalysisReport) error {
	headers := []string{"fractional_year", "year", "month", "kilobytes", "unit_cost", "cost_per_megabyte", "cost_diff"}
	records := make([][]string, 0, len(report.Records))
	for _, rec := range report.Records {
		records = append(records, []string{
			formatFloat(rec.FractionalYear),
			formatInt(rec.Year),
			rec.Month,
			formatNullFloat(rec.Kilobytes),
			formatNullFloat(rec.UnitCost),
			formatFloat(rec.CostPerMB),
			formatNullFloat(rec.CostDiff),
		})
	}
	return e.writer.WriteSimpleCSV(FileCleanedRecords, headers, records)
}

func (e *ReportExporter) exportModelSummary(report *domain.AnalysisReport) error {
	headers := []string{"model", "response", "predictor", "observations",
		"intercept", "slope", "slope_std_err", "t_statistic", "p_value",
		"r_squared", "adj_r_squared", "error"}

	row := func(kind domain.ModelKind, fit *domain.ModelFit, fitErr string) []string {
		if fit == nil {
			return []string{string(kind), "", "", "", "", "", "", "", "", "", "", fitErr}
		}
		return []string{
			string(fit.Kind), fit.Response, fit.Predictor, formatInt(fit.Observations),
			formatFloat(fit.Intercept), formatFloat(fit.Slope), formatFloat(fit.SlopeStdErr),
			formatFloat(fit.TStatistic), formatFloat(fit.PValue),
			formatFloat(fit.RSquared), formatFloat(fit.AdjRSquared), "",
		}
	}

	records := [][]string{
		row(domain.ModelLinear, report.LinearModel, report.LinearModelErr),
		row(domain.ModelLogLinear, report.LogLinearModel, report.LogLinearModelErr),
	}
	return e.writer.WriteSimpleCSV(FileModelSummary, headers, records)
}

func (e *ReportExporter) exportQQ(report *domain.AnalysisReport) error {
	headers := []string{"theoretical", "empirical"}
	records := make([][]string, 0, len(report.QQ))
	for _, p := range report.QQ {
		records = append(records, []string{formatFloat(p.Theoretical), formatFloat(p.Empirical)})
	}
	return e.writer.WriteSimpleCSV(FileQQPoints, headers, records)
}

func (e *ReportExporter) exportResidualsFitted(report *domain.AnalysisReport) error {
	headers := []string{"fitted", "residual"}
	records := make([][]string, 0, len(report.ResidualFitted))
	for _, p := range report.ResidualFitted {
		records = append(records, []string{formatFloat(p.Fitted), formatFloat(p.Residual)})
	}
	return e.writer.WriteSimpleCSV(FileResidualsFitted, headers, records)
}

func (e *ReportExporter) exportMonthlyBoxplot(report *domain.AnalysisReport) error {
	headers := []string{"month", "count", "min", "q1", "median", "q3", "max"}
	records := make([][]string, 0, len(report.MonthSummaries))
	for _, s := range report.MonthSummaries {
		records = append(records, []string{
			s.Month, formatInt(s.Count),
			formatFloat(s.Min), formatFloat(s.Q1), formatFloat(s.Median),
			formatFloat(s.Q3), formatFloat(s.Max),
		})
	}
	return e.writer.WriteSimpleCSV(FileMonthlyBoxplot, headers, records)
}

func (e *ReportExporter) exportMedianTest(report *domain.AnalysisReport) error {
	headers := []string{"comparison", "group_a", "group_b", "statistic", "df", "p_value", "computable", "significant"}

	var records [][]string
	if mt := report.MedianTest; mt != nil {
		records = append(records, []string{
			"omnibus", "", "",
			formatFloat(mt.Statistic), formatInt(mt.DegreesOfFreedom), formatFloat(mt.PValue),
			formatBool(mt.Computable),
			formatBool(mt.Computable && mt.PValue < report.SignificanceThreshold),
		})
		for _, pw := range mt.Pairwise {
			records = append(records, []string{
				"pairwise", pw.GroupA, pw.GroupB,
				formatFloat(pw.Statistic), formatInt(1), formatFloat(pw.PValue),
				formatBool(pw.Computable),
				formatBool(pw.Computable && pw.PValue < report.SignificanceThreshold),
			})
		}
	}
	return e.writer.WriteSimpleCSV(FileMedianTest, headers, records)
}
