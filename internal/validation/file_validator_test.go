package validation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateWorkbook(t *testing.T) {
	dir := t.TempDir()

	write := func(name string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte("stub"), 0644))
		return path
	}

	tests := []struct {
		name    string
		path    string
		wantErr string
	}{
		{
			name: "xlsx workbook",
			path: write("prices.xlsx"),
		},
		{
			name: "legacy xls workbook",
			path: write("prices.xls"),
		},
		{
			name:    "missing file",
			path:    filepath.Join(dir, "absent.xlsx"),
			wantErr: "does not exist",
		},
		{
			name:    "wrong extension",
			path:    write("prices.csv"),
			wantErr: "not a spreadsheet",
		},
		{
			name:    "excel lock file",
			path:    write("~$prices.xlsx"),
			wantErr: "temporary Excel lock file",
		},
		{
			name:    "directory instead of file",
			path:    dir,
			wantErr: "is a directory",
		},
	}

	v := NewFileValidator(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateWorkbook(tt.path)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateOutputDirectory(t *testing.T) {
	v := NewFileValidator(nil)

	t.Run("creates missing directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "reports", "nested")
		require.NoError(t, v.ValidateOutputDirectory(dir))

		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("accepts existing directory", func(t *testing.T) {
		assert.NoError(t, v.ValidateOutputDirectory(t.TempDir()))
	})

	t.Run("leaves no probe file behind", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, v.ValidateOutputDirectory(dir))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}
