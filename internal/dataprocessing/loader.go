package dataprocessing

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/xuri/excelize/v2"

	apperrors "memtrend/internal/errors"
)

// LoadWorkbook reads the named sheet from an Excel workbook and returns its
// rows as raw strings with no type coercion.
//
// Failure modes are distinct and fatal to the run:
//   - the workbook file does not exist (SOURCE_NOT_FOUND)
//   - the sheet is not present in the workbook (SHEET_NOT_FOUND)
//
// A nonexistent path never yields an empty dataset.
func LoadWorkbook(ctx context.Context, path, sheet string) ([][]string, error) {
	logger := slog.Default()

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.SourceNotFoundError(path, err)
		}
		return nil, fmt.Errorf("stat workbook: %w", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer f.Close()

	idx, err := f.GetSheetIndex(sheet)
	if err != nil {
		return nil, fmt.Errorf("resolve sheet %q: %w", sheet, err)
	}
	if idx == -1 {
		return nil, apperrors.SheetNotFoundError(sheet, f.GetSheetList())
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	logger.InfoContext(ctx, "loaded workbook sheet",
		"path", path,
		"sheet", sheet,
		"raw_rows", len(rows),
	)

	return rows, nil
}
