package app

import (
	"context"
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"memtrend/internal/config"
	apperrors "memtrend/internal/errors"
)

// writeFixture builds a workbook in the default schema layout: four header
// rows, then data rows of fractional year, year, month, three irrelevant
// columns, kilobytes, unit cost, an outdated duplicate, and cost per
// megabyte. Rows are deliberately out of chronological order; the pipeline
// must sort before differencing.
func writeFixture(t *testing.T, dir string) string {
	t.Helper()

	rows := [][]interface{}{
		{"Memory prices"},
		{"collected retail price points"},
		{"decimal date", "year", "month", "cat", "page", "store", "KB", "cost", "old $/MB", "$/MB"},
		{"", "", "", "", "", "", "", "", "", ""},
		{"1992.0", "1992", "January", "c1", "12", "storeA", "4,096", "200", "x", "25.0"},
		{"1990.0", "1990", "January", "c2", "31", "storeB", "1,024", "100", "x", "100.0"},
		{"1991.0", "1991", "July", "c3", "7", "storeC", "2,048", "150", "x", "50.0"},
		{"1993.5", "1993", "JUL", "c4", "2", "storeD", "8,192", "120", "x", "12.5"},
		{"1994.5", "1994", "feb", "c5", "9", "storeE", "8,192", "90", "x", "6.25"},
		{"", "", "", "", "", "", "", "", "", ""},
		{"1995.0", "1995", "Feb", "c6", "4", "storeF", "16,384", "60", "x", "3.125"},
	}

	f := excelize.NewFile()
	defer f.Close()
	_, err := f.NewSheet("MEMORY")
	require.NoError(t, err)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("MEMORY", cell, &row))
	}

	path := filepath.Join(dir, "memory.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func fixtureConfig(workbook string) *config.Config {
	cfg := config.Default()
	cfg.Input.WorkbookPath = workbook
	return cfg
}

func TestPipelineRun(t *testing.T) {
	ctx := context.Background()
	path := writeFixture(t, t.TempDir())

	report, err := NewPipeline(nil, fixtureConfig(path)).Run(ctx)
	require.NoError(t, err)

	require.Len(t, report.Records, 6, "blank rows are dropped, data rows kept")

	// Sorted ascending by fractional year with truncated months.
	prev := math.Inf(-1)
	for _, rec := range report.Records {
		assert.GreaterOrEqual(t, rec.FractionalYear, prev)
		prev = rec.FractionalYear
		assert.Greater(t, rec.CostPerMB, 0.0)
		assert.Len(t, rec.Month, 3)
	}
	assert.Equal(t, "Jan", report.Records[0].Month)
	assert.Equal(t, "Jul", report.Records[1].Month)

	// Leading diff undefined, the rest consecutive differences.
	assert.False(t, report.Records[0].CostDiff.Valid)
	require.True(t, report.Records[1].CostDiff.Valid)
	assert.InDelta(t, -50.0, report.Records[1].CostDiff.Float64, 1e-9)
	assert.InDelta(t, -25.0, report.Records[2].CostDiff.Float64, 1e-9)

	// Both models fit; the halving trend makes log cost close to linear.
	require.NotNil(t, report.LinearModel)
	require.NotNil(t, report.LogLinearModel)
	assert.Less(t, report.LogLinearModel.Slope, 0.0)
	assert.Greater(t, report.LogLinearModel.RSquared, 0.95)

	assert.Len(t, report.QQ, 6)
	assert.Len(t, report.ResidualFitted, 6)
	assert.NotEmpty(t, report.MonthSummaries)
	require.NotNil(t, report.MedianTest)
	assert.Equal(t, 2, report.MedianTest.DegreesOfFreedom, "Jan, Jul, Feb groups")
	assert.Len(t, report.MedianTest.Pairwise, 3)
}

func TestPipelineRunDeterministic(t *testing.T) {
	ctx := context.Background()
	path := writeFixture(t, t.TempDir())
	cfg := fixtureConfig(path)

	first, err := NewPipeline(nil, cfg).Run(ctx)
	require.NoError(t, err)
	second, err := NewPipeline(nil, cfg).Run(ctx)
	require.NoError(t, err)

	assert.Equal(t, first.LinearModel, second.LinearModel)
	assert.Equal(t, first.LogLinearModel, second.LogLinearModel)
	assert.Equal(t, first.Records, second.Records)
	assert.Equal(t, first.MedianTest.PValue, second.MedianTest.PValue)
}

func TestPipelineRunMissingWorkbook(t *testing.T) {
	ctx := context.Background()
	cfg := fixtureConfig(filepath.Join(t.TempDir(), "absent.xlsx"))

	report, err := NewPipeline(nil, cfg).Run(ctx)
	require.Error(t, err)
	assert.Nil(t, report)
	assert.True(t, errors.Is(err, apperrors.ErrSourceNotFound))
}

func TestPipelineRunMissingSheet(t *testing.T) {
	ctx := context.Background()
	path := writeFixture(t, t.TempDir())
	cfg := fixtureConfig(path)
	cfg.Input.SheetName = "DDRIVES"

	_, err := NewPipeline(nil, cfg).Run(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrSheetNotFound))
}
