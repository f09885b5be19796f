package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "MEMORY", cfg.Input.SheetName)
	assert.Equal(t, 12, cfg.Schema.RawWidth)
	assert.Equal(t, 2, cfg.Schema.TrailingArtifactColumns)
	assert.Equal(t, 4, cfg.Schema.HeaderRows)
	assert.Equal(t, ",", cfg.Schema.ThousandsSeparator)
	assert.Equal(t, 0.05, cfg.Analysis.SignificanceThreshold)
}

func TestValidateRejectsBadSchemas(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{
			name: "trailing artifacts consume all columns",
			mutate: func(c *Config) {
				c.Schema.TrailingArtifactColumns = c.Schema.RawWidth
			},
		},
		{
			name: "column index outside schema width",
			mutate: func(c *Config) {
				c.Schema.Columns.CostPerMB = c.Schema.RawWidth - 1
			},
		},
		{
			name: "significance threshold out of range",
			mutate: func(c *Config) {
				c.Analysis.SignificanceThreshold = 1.5
			},
		},
		{
			name: "too few observations allowed",
			mutate: func(c *Config) {
				c.Analysis.MinObservations = 2
			},
		},
		{
			name: "empty sheet name",
			mutate: func(c *Config) {
				c.Input.SheetName = ""
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoadFromYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte("input:\n  workbook_path: other.xlsx\n  sheet_name: PRICES\nschema:\n  header_rows: 2\n")
	require.NoError(t, os.WriteFile(path, content, 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "other.xlsx", cfg.Input.WorkbookPath)
	assert.Equal(t, "PRICES", cfg.Input.SheetName)
	assert.Equal(t, 2, cfg.Schema.HeaderRows)
	// Untouched fields keep their defaults.
	assert.Equal(t, 12, cfg.Schema.RawWidth)
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("input:\n  sheet_name: PRICES\n"), 0644))

	t.Setenv("MEMTREND_INPUT_SHEET_NAME", "OVERRIDE")
	t.Setenv("MEMTREND_SCHEMA_HEADER_ROWS", "6")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "OVERRIDE", cfg.Input.SheetName)
	assert.Equal(t, 6, cfg.Schema.HeaderRows)
}

func TestLoadMissingConfigFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadWithoutFileUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().Schema, cfg.Schema)
}
