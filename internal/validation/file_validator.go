// Package validation provides pre-flight checks for the analyzer's
// input workbook and output directory, so path problems surface before
// the pipeline starts.
package validation

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// FileValidator checks input and output paths before a run.
type FileValidator struct {
	logger *slog.Logger
}

// NewFileValidator creates a new file validator. A nil logger falls
// back to slog.Default().
func NewFileValidator(logger *slog.Logger) *FileValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileValidator{
		logger: logger,
	}
}

// ValidateWorkbook checks that path names a readable spreadsheet file.
func (v *FileValidator) ValidateWorkbook(path string) error {
	if err := v.validateFile(path); err != nil {
		return err
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".xlsx" && ext != ".xls" {
		v.logger.Error("workbook path is not a spreadsheet",
			slog.String("file", path),
			slog.String("extension", ext))
		return fmt.Errorf("file %s is not a spreadsheet (extension: %s)", path, ext)
	}

	// Lock files left by an open Excel session start with ~$ and do
	// not contain the sheet data.
	base := filepath.Base(path)
	if strings.HasPrefix(base, "~$") {
		v.logger.Warn("workbook path is a temporary lock file",
			slog.String("file", path))
		return fmt.Errorf("file %s is a temporary Excel lock file", path)
	}

	return nil
}

// ValidateOutputDirectory ensures the report directory exists, creating
// it if needed, and verifies it is writable.
func (v *FileValidator) ValidateOutputDirectory(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		v.logger.Error("failed to create output directory",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	// Verify it's writable by creating a test file.
	testFile := filepath.Join(dir, ".write_test")
	file, err := os.Create(testFile)
	if err != nil {
		v.logger.Error("output directory is not writable",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return fmt.Errorf("output directory %s is not writable: %w", dir, err)
	}
	file.Close()
	os.Remove(testFile)

	v.logger.Debug("output directory validated",
		slog.String("directory", dir))
	return nil
}

// validateFile checks that path exists, is a regular file, and is
// readable.
func (v *FileValidator) validateFile(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		v.logger.Error("file does not exist",
			slog.String("file", path))
		return fmt.Errorf("file %s does not exist", path)
	}
	if err != nil {
		v.logger.Error("failed to stat file",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to stat file %s: %w", path, err)
	}
	if info.IsDir() {
		v.logger.Error("path is a directory, not a file",
			slog.String("path", path))
		return fmt.Errorf("%s is a directory, not a file", path)
	}

	file, err := os.Open(path)
	if err != nil {
		v.logger.Error("file is not readable",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return fmt.Errorf("file %s is not readable: %w", path, err)
	}
	file.Close()

	v.logger.Debug("file validated",
		slog.String("file", path),
		slog.Int64("size", info.Size()))
	return nil
}
