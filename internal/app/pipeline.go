package app

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"

	"memtrend/internal/config"
	"memtrend/internal/dataprocessing"
	"memtrend/internal/diagnostics"
	"memtrend/internal/regression"
	"memtrend/pkg/contracts/domain"
)

// Pipeline runs one complete analysis over the configured workbook
type Pipeline struct {
	logger  *slog.Logger
	cfg     *config.Config
	cleaner *dataprocessing.Cleaner
	modeler *regression.Modeler
}

// NewPipeline creates a pipeline from configuration. A nil logger falls
// back to slog.Default().
func NewPipeline(logger *slog.Logger, cfg *config.Config) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		logger:  logger,
		cfg:     cfg,
		cleaner: dataprocessing.NewCleaner(logger, cfg.Schema),
		modeler: regression.NewModeler(logger, cfg.Analysis.MinObservations),
	}
}

// Run executes the pipeline once and returns the assembled report.
//
// Load and cleaning failures are fatal. Model-fit failures are recorded in
// the report per model; the diagnostics that do not depend on a fitted
// model still run.
func (p *Pipeline) Run(ctx context.Context) (*domain.AnalysisReport, error) {
	rows, err := dataprocessing.LoadWorkbook(ctx, p.cfg.Input.WorkbookPath, p.cfg.Input.SheetName)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}

	records, err := p.cleaner.Clean(ctx, rows)
	if err != nil {
		return nil, fmt.Errorf("clean: %w", err)
	}

	// The difference computation depends on chronological order; sort
	// explicitly rather than assuming the sheet is ordered.
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].FractionalYear < records[j].FractionalYear
	})

	records, err = dataprocessing.DeriveFeatures(ctx, records)
	if err != nil {
		return nil, fmt.Errorf("derive: %w", err)
	}

	report := &domain.AnalysisReport{
		Records:               records,
		SignificanceThreshold: p.cfg.Analysis.SignificanceThreshold,
	}

	if fit, err := p.modeler.FitLinear(ctx, records); err != nil {
		p.logger.WarnContext(ctx, "linear model not fitted", "error", err)
		report.LinearModelErr = err.Error()
	} else {
		report.LinearModel = fit
	}

	if fit, err := p.modeler.FitLogLinear(ctx, records); err != nil {
		p.logger.WarnContext(ctx, "log-linear model not fitted", "error", err)
		report.LogLinearModelErr = err.Error()
	} else {
		report.LogLinearModel = fit
		report.ResidualFitted = diagnostics.PairResiduals(fit)
	}

	logCosts := make([]float64, len(records))
	for i, rec := range records {
		logCosts[i] = math.Log(rec.CostPerMB)
	}
	report.QQ = diagnostics.QQNormal(logCosts)

	groups := diagnostics.GroupLogCostByMonth(records)
	report.MonthSummaries = diagnostics.MonthlySummaries(groups)
	if len(groups) >= 2 {
		report.MedianTest = diagnostics.MedianTest(ctx, groups)
	} else {
		p.logger.WarnContext(ctx, "median test skipped, fewer than two month groups",
			"groups", len(groups))
	}

	return report, nil
}
