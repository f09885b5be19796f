package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete analyzer configuration
type Config struct {
	Input    InputConfig    `yaml:"input" envconfig:"INPUT"`
	Schema   SchemaConfig   `yaml:"schema" envconfig:"SCHEMA"`
	Analysis AnalysisConfig `yaml:"analysis" envconfig:"ANALYSIS"`
	Output   OutputConfig   `yaml:"output" envconfig:"OUTPUT"`
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
}

// InputConfig identifies the source workbook and sheet
type InputConfig struct {
	WorkbookPath string `yaml:"workbook_path" envconfig:"WORKBOOK_PATH" validate:"required"`
	SheetName    string `yaml:"sheet_name" envconfig:"SHEET_NAME" validate:"required"`
}

// SchemaConfig describes the fixed layout of the source sheet. Column
// positions, not header names, are authoritative: the rename mapping is
// positional and the raw width is validated before it is applied.
type SchemaConfig struct {
	// RawWidth is the expected number of columns in the sheet's tabular
	// region, including the trailing artifact columns.
	RawWidth int `yaml:"raw_width" envconfig:"RAW_WIDTH" validate:"required,min=1"`
	// TrailingArtifactColumns counts the empty columns at the right edge of
	// the source format, removed unconditionally.
	TrailingArtifactColumns int `yaml:"trailing_artifact_columns" envconfig:"TRAILING_ARTIFACT_COLUMNS" validate:"min=0"`
	// HeaderRows is the fixed number of leading header-artifact rows to
	// discard. Known from the source format, not data-detected.
	HeaderRows int `yaml:"header_rows" envconfig:"HEADER_ROWS" validate:"min=0"`
	// ThousandsSeparator is stripped from numeric cells before parsing.
	ThousandsSeparator string `yaml:"thousands_separator" envconfig:"THOUSANDS_SEPARATOR"`
	Columns            ColumnIndexes `yaml:"columns" envconfig:"COLUMNS"`
}

// ColumnIndexes is the positional rename mapping from raw column index to
// semantic field. Columns not listed here (catalogue, page, store, brand,
// outdated duplicates) carry no analytical signal and are dropped
// unconditionally.
type ColumnIndexes struct {
	FractionalYear int `yaml:"fractional_year" envconfig:"FRACTIONAL_YEAR" validate:"min=0"`
	Year           int `yaml:"year" envconfig:"YEAR" validate:"min=0"`
	Month          int `yaml:"month" envconfig:"MONTH" validate:"min=0"`
	Kilobytes      int `yaml:"kilobytes" envconfig:"KILOBYTES" validate:"min=0"`
	UnitCost       int `yaml:"unit_cost" envconfig:"UNIT_COST" validate:"min=0"`
	CostPerMB      int `yaml:"cost_per_mb" envconfig:"COST_PER_MB" validate:"min=0"`
}

// AnalysisConfig carries the statistical parameters
type AnalysisConfig struct {
	// SignificanceThreshold annotates median-test results in the report.
	// It does not filter them; all pairwise results are reported.
	SignificanceThreshold float64 `yaml:"significance_threshold" envconfig:"SIGNIFICANCE_THRESHOLD" validate:"gt=0,lt=1"`
	// MinObservations is the smallest sample a model may be fitted on.
	// Three observations leave one degree of freedom for slope inference.
	MinObservations int `yaml:"min_observations" envconfig:"MIN_OBSERVATIONS" validate:"min=3"`
}

// OutputConfig controls where report tables are written
type OutputConfig struct {
	Dir string `yaml:"dir" envconfig:"DIR" validate:"required"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn warning error"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

var validate = validator.New()

// Load loads configuration from environment variables and an optional YAML
// config file. Environment variables take precedence.
func Load(configFile string) (*Config, error) {
	cfg := Default()

	if configFile != "" {
		if _, err := os.Stat(configFile); err != nil {
			return nil, fmt.Errorf("config file not found: %w", err)
		}
		fileCfg, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = fileCfg
	}

	if err := envconfig.Process("MEMTREND", cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads configuration from a YAML file on top of the defaults
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the configuration via struct tags plus the cross-field
// rules the tags cannot express.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}

	schemaWidth := c.Schema.RawWidth - c.Schema.TrailingArtifactColumns
	if schemaWidth < 1 {
		return fmt.Errorf("trailing artifact columns (%d) leave no schema columns out of %d",
			c.Schema.TrailingArtifactColumns, c.Schema.RawWidth)
	}

	for name, idx := range c.Schema.Columns.byField() {
		if idx >= schemaWidth {
			return fmt.Errorf("column %s index %d outside schema width %d", name, idx, schemaWidth)
		}
	}

	return nil
}

// byField returns the mapping as field name to index for validation and
// positional rename.
func (ci ColumnIndexes) byField() map[string]int {
	return map[string]int{
		"fractional_year": ci.FractionalYear,
		"year":            ci.Year,
		"month":           ci.Month,
		"kilobytes":       ci.Kilobytes,
		"unit_cost":       ci.UnitCost,
		"cost_per_mb":     ci.CostPerMB,
	}
}

// Default returns the default configuration for the known source format
func Default() *Config {
	return &Config{
		Input: InputConfig{
			WorkbookPath: "data/memory-prices.xlsx",
			SheetName:    "MEMORY",
		},
		Schema: SchemaConfig{
			RawWidth:                12,
			TrailingArtifactColumns: 2,
			HeaderRows:              4,
			ThousandsSeparator:      ",",
			Columns: ColumnIndexes{
				FractionalYear: 0,
				Year:           1,
				Month:          2,
				Kilobytes:      6,
				UnitCost:       7,
				CostPerMB:      9,
			},
		},
		Analysis: AnalysisConfig{
			SignificanceThreshold: 0.05,
			MinObservations:       3,
		},
		Output: OutputConfig{
			Dir: "reports",
		},
		Logging: LoggingConfig{
			Level:    "info",
			Output:   "console",
			FilePath: "logs/analyzer.log",
		},
	}
}
