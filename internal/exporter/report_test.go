package exporter

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memtrend/pkg/contracts/domain"
)

func sampleReport() *domain.AnalysisReport {
	return &domain.AnalysisReport{
		Records: []domain.MemoryRecord{
			{
				FractionalYear: 1990.0, Year: 1990, Month: "Jan",
				CostPerMB: 100, Kilobytes: domain.Float(64), UnitCost: domain.Float(6400),
			},
			{
				FractionalYear: 1991.0, Year: 1991, Month: "Feb",
				CostPerMB: 50, Kilobytes: domain.Float(256), UnitCost: domain.Float(12800),
				CostDiff: domain.Float(-50),
			},
		},
		LogLinearModel: &domain.ModelFit{
			Kind: domain.ModelLogLinear, Response: "log_cost_per_megabyte", Predictor: "fractional_year",
			Intercept: 1000, Slope: -0.5, RSquared: 0.99, AdjRSquared: 0.98,
			PValue: 0.001, Observations: 2,
		},
		LinearModelErr: "model linear not fittable: insufficient observations",
		QQ: []domain.QQPoint{
			{Theoretical: -0.67, Empirical: 3.9},
			{Theoretical: 0.67, Empirical: 4.6},
		},
		ResidualFitted: []domain.ResidualFitted{{Fitted: 4.0, Residual: 0.1}},
		MonthSummaries: []domain.MonthSummary{
			{Month: "Jan", Count: 1, Min: 4.6, Q1: 4.6, Median: 4.6, Q3: 4.6, Max: 4.6},
		},
		MedianTest: &domain.MedianTestResult{
			GrandMedian: 4.25, Statistic: 2.0, DegreesOfFreedom: 1, PValue: 0.157,
			Computable: true,
			Pairwise: []domain.PairwiseComparison{
				{GroupA: "Jan", GroupB: "Feb", Statistic: 2.0, PValue: 0.157, Computable: true},
			},
		},
		SignificanceThreshold: 0.05,
	}
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	content := strings.TrimPrefix(string(data), "\xef\xbb\xbf")
	rows, err := csv.NewReader(strings.NewReader(content)).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestReportExporterExport(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	err := NewReportExporter(nil, dir).Export(ctx, sampleReport())
	require.NoError(t, err)

	for _, name := range []string{
		FileCleanedRecords, FileModelSummary, FileQQPoints,
		FileResidualsFitted, FileMonthlyBoxplot, FileMedianTest,
	} {
		_, statErr := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, statErr, name)
	}
}

func TestExportedRecordsTable(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	require.NoError(t, NewReportExporter(nil, dir).Export(ctx, sampleReport()))

	rows := readCSV(t, filepath.Join(dir, FileCleanedRecords))
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"fractional_year", "year", "month", "kilobytes", "unit_cost", "cost_per_megabyte", "cost_diff"}, rows[0])

	// The undefined leading cost difference is an empty cell, not a zero.
	assert.Equal(t, "", rows[1][6])
	assert.Equal(t, "-50", rows[2][6])
}

func TestExportedModelSummaryCarriesFailure(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	require.NoError(t, NewReportExporter(nil, dir).Export(ctx, sampleReport()))

	rows := readCSV(t, filepath.Join(dir, FileModelSummary))
	require.Len(t, rows, 3)

	linear, logLinear := rows[1], rows[2]
	assert.Equal(t, "linear", linear[0])
	assert.Contains(t, linear[len(linear)-1], "not fittable")
	assert.Equal(t, "log_linear", logLinear[0])
	assert.Equal(t, "", logLinear[len(logLinear)-1])
}

func TestExportedMedianTestAnnotatesSignificance(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	require.NoError(t, NewReportExporter(nil, dir).Export(ctx, sampleReport()))

	rows := readCSV(t, filepath.Join(dir, FileMedianTest))
	require.Len(t, rows, 3)

	omnibus := rows[1]
	assert.Equal(t, "omnibus", omnibus[0])
	assert.Equal(t, "false", omnibus[len(omnibus)-1], "p=0.157 at threshold 0.05 is not significant")

	pairwise := rows[2]
	assert.Equal(t, "pairwise", pairwise[0])
	assert.Equal(t, "Jan", pairwise[1])
	assert.Equal(t, "Feb", pairwise[2])
}

func TestCSVWriterBOM(t *testing.T) {
	dir := t.TempDir()
	w := NewCSVWriter(dir)
	require.NoError(t, w.WriteSimpleCSV("x.csv", []string{"a"}, [][]string{{"1"}}))

	data, err := os.ReadFile(filepath.Join(dir, "x.csv"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "\xef\xbb\xbf"))
}

func TestPrintSummary(t *testing.T) {
	var sb strings.Builder
	PrintSummary(&sb, sampleReport())

	out := sb.String()
	assert.Contains(t, out, "Model A")
	assert.Contains(t, out, "not fittable")
	assert.Contains(t, out, "Model B")
	assert.Contains(t, out, "median test")
}
