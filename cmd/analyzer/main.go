package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"memtrend/internal/app"
	"memtrend/internal/config"
	"memtrend/internal/exporter"
	"memtrend/internal/infrastructure"
	"memtrend/internal/validation"
)

func main() {
	workbook := flag.String("in", "", "input workbook path (overrides config)")
	sheet := flag.String("sheet", "", "sheet name (overrides config)")
	outDir := flag.String("out", "", "output directory for report tables (overrides config)")
	configFile := flag.String("config", "", "optional YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	if *workbook != "" {
		cfg.Input.WorkbookPath = *workbook
	}
	if *sheet != "" {
		cfg.Input.SheetName = *sheet
	}
	if *outDir != "" {
		cfg.Output.Dir = *outDir
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	ctx := infrastructure.WithRunID(context.Background(), uuid.NewString())

	logger.InfoContext(ctx, "Starting memory price trend analysis",
		slog.String("workbook", cfg.Input.WorkbookPath),
		slog.String("sheet", cfg.Input.SheetName),
		slog.String("output_dir", cfg.Output.Dir))

	validator := validation.NewFileValidator(logger)
	if err := validator.ValidateWorkbook(cfg.Input.WorkbookPath); err != nil {
		logger.ErrorContext(ctx, "Workbook validation failed", "error", err)
		os.Exit(1)
	}
	if err := validator.ValidateOutputDirectory(cfg.Output.Dir); err != nil {
		logger.ErrorContext(ctx, "Output directory validation failed", "error", err)
		os.Exit(1)
	}

	report, err := app.NewPipeline(logger, cfg).Run(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "Analysis failed", "error", err)
		os.Exit(1)
	}

	if err := exporter.NewReportExporter(logger, cfg.Output.Dir).Export(ctx, report); err != nil {
		logger.ErrorContext(ctx, "Report export failed", "error", err)
		os.Exit(1)
	}

	exporter.PrintSummary(os.Stdout, report)

	logger.InfoContext(ctx, "Analysis completed",
		slog.Int("records", len(report.Records)),
		slog.String("output_dir", cfg.Output.Dir))
}
