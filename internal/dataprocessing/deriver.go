package dataprocessing

import (
	"context"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "memtrend/internal/errors"
	"memtrend/pkg/contracts/domain"
)

var recordValidator = validator.New()

// DeriveFeatures finalizes cleaned records for analysis:
//
//   - truncates the month label to its three-letter abbreviation and drops
//     records whose label is not one of the 12 valid values
//   - verifies ascending fractional-year order, returning UNSORTED_INPUT if
//     violated (the pipeline sorts before calling; this is the backstop)
//   - computes the first difference of cost per megabyte, with the leading
//     element explicitly undefined
//
// The returned slice is a new allocation; the input is not mutated.
func DeriveFeatures(ctx context.Context, records []domain.MemoryRecord) ([]domain.MemoryRecord, error) {
	logger := slog.Default()

	out := make([]domain.MemoryRecord, 0, len(records))
	for _, rec := range records {
		rec.Month = truncateMonth(rec.Month)
		if err := recordValidator.StructCtx(ctx, rec); err != nil {
			logger.WarnContext(ctx, "dropping record failing validation",
				"fractional_year", rec.FractionalYear,
				"month", rec.Month,
				"error", err,
			)
			continue
		}
		out = append(out, rec)
	}

	if len(out) == 0 {
		return nil, apperrors.NewWithDetails(
			apperrors.ErrInsufficientData.ErrorCode,
			"no records survived month validation",
			len(records),
		)
	}

	for i := 1; i < len(out); i++ {
		if out[i].FractionalYear < out[i-1].FractionalYear {
			return nil, apperrors.NewWithDetails(
				apperrors.ErrUnsortedInput.ErrorCode,
				"records must be in ascending fractional-year order before differencing",
				map[string]float64{
					"previous": out[i-1].FractionalYear,
					"current":  out[i].FractionalYear,
				},
			)
		}
	}

	// First difference of cost; element 0 has no prior observation.
	out[0].CostDiff = domain.NullFloat64{}
	for i := 1; i < len(out); i++ {
		out[i].CostDiff = domain.Float(out[i].CostPerMB - out[i-1].CostPerMB)
	}

	logger.InfoContext(ctx, "feature derivation completed",
		"records", len(out),
		"dropped", len(records)-len(out),
	)

	return out, nil
}

// truncateMonth reduces a month label to its canonical three-letter form.
// "January", "JAN" and "jan" all become "Jan"; labels shorter than three
// characters are returned as-is and fail validation downstream.
func truncateMonth(month string) string {
	m := strings.TrimSpace(month)
	if len(m) < 3 {
		return m
	}
	m = m[:3]
	return strings.ToUpper(m[:1]) + strings.ToLower(m[1:])
}
