package dataprocessing

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"memtrend/internal/config"
	apperrors "memtrend/internal/errors"
	"memtrend/pkg/contracts/domain"
)

// Cleaner converts raw sheet rows into MemoryRecords according to a fixed
// schema
type Cleaner struct {
	logger *slog.Logger
	schema config.SchemaConfig
}

// NewCleaner creates a cleaner for the given schema. A nil logger falls
// back to slog.Default().
func NewCleaner(logger *slog.Logger, schema config.SchemaConfig) *Cleaner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cleaner{logger: logger, schema: schema}
}

// Clean produces MemoryRecords from the raw table.
//
// The raw width is validated before the positional rename is applied: a row
// wider than the configured schema is a loud SCHEMA_MISMATCH error, never a
// silent field misalignment. Rows shorter than the schema width are padded
// with empty cells, because the sheet reader trims trailing blanks.
//
// Row-level policy is fail-soft: a row with an empty month, an unparsable
// required numeric, or a non-positive cost per megabyte is dropped and the
// run continues. An empty result is INSUFFICIENT_DATA, not a silently empty
// dataset.
func (c *Cleaner) Clean(ctx context.Context, rows [][]string) ([]domain.MemoryRecord, error) {
	if len(rows) <= c.schema.HeaderRows {
		return nil, apperrors.NewWithDetails(
			apperrors.ErrInsufficientData.ErrorCode,
			"sheet has no data rows beyond the header block",
			map[string]int{"rows": len(rows), "header_rows": c.schema.HeaderRows},
		)
	}

	schemaWidth := c.schema.RawWidth - c.schema.TrailingArtifactColumns
	cols := c.schema.Columns

	records := make([]domain.MemoryRecord, 0, len(rows)-c.schema.HeaderRows)
	dropped := 0

	for i, row := range rows[c.schema.HeaderRows:] {
		rowNum := i + c.schema.HeaderRows

		if len(row) > c.schema.RawWidth {
			return nil, apperrors.SchemaMismatchError(c.schema.RawWidth, len(row))
		}

		// Trailing artifact columns go first; the reader may already have
		// trimmed them, so pad back up to the schema width.
		if len(row) > schemaWidth {
			row = row[:schemaWidth]
		}
		row = padRow(row, schemaWidth)

		month := strings.TrimSpace(row[cols.Month])
		if month == "" {
			c.logger.DebugContext(ctx, "dropping row with empty month", "row", rowNum)
			dropped++
			continue
		}

		fractionalYear := c.parseNullFloat(row[cols.FractionalYear])
		costPerMB := c.parseNullFloat(row[cols.CostPerMB])
		year := c.parseNullInt(row[cols.Year])

		if !fractionalYear.Valid || !costPerMB.Valid || !year.Valid {
			c.logger.DebugContext(ctx, "dropping row with unparsable required field",
				"row", rowNum,
				"fractional_year_ok", fractionalYear.Valid,
				"cost_per_mb_ok", costPerMB.Valid,
				"year_ok", year.Valid,
			)
			dropped++
			continue
		}

		if costPerMB.Float64 <= 0 {
			c.logger.WarnContext(ctx, "dropping row with non-positive cost per megabyte",
				"row", rowNum,
				"cost_per_mb", costPerMB.Float64,
			)
			dropped++
			continue
		}

		records = append(records, domain.MemoryRecord{
			FractionalYear: fractionalYear.Float64,
			CostPerMB:      costPerMB.Float64,
			Year:           int(year.Float64),
			Month:          month,
			Kilobytes:      c.parseNullFloat(row[cols.Kilobytes]),
			UnitCost:       c.parseNullFloat(row[cols.UnitCost]),
		})
	}

	if len(records) == 0 {
		return nil, apperrors.NewWithDetails(
			apperrors.ErrInsufficientData.ErrorCode,
			"no usable rows after cleaning",
			map[string]int{"dropped": dropped},
		)
	}

	c.logger.InfoContext(ctx, "cleaning completed",
		"records", len(records),
		"dropped", dropped,
	)

	return records, nil
}

// parseNullFloat strips the thousands separator and parses the cell.
// An empty or unparsable cell becomes an explicit missing value, never a
// silent zero.
func (c *Cleaner) parseNullFloat(cell string) domain.NullFloat64 {
	s := strings.TrimSpace(cell)
	if c.schema.ThousandsSeparator != "" {
		s = strings.ReplaceAll(s, c.schema.ThousandsSeparator, "")
	}
	if s == "" {
		return domain.NullFloat64{}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return domain.NullFloat64{}
	}
	return domain.Float(v)
}

// parseNullInt parses an integer cell through the same separator stripping
func (c *Cleaner) parseNullInt(cell string) domain.NullFloat64 {
	s := strings.TrimSpace(cell)
	if c.schema.ThousandsSeparator != "" {
		s = strings.ReplaceAll(s, c.schema.ThousandsSeparator, "")
	}
	if s == "" {
		return domain.NullFloat64{}
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return domain.NullFloat64{}
	}
	return domain.Float(float64(v))
}

// padRow extends row with empty cells up to width
func padRow(row []string, width int) []string {
	for len(row) < width {
		row = append(row, "")
	}
	return row
}
