// Package dataprocessing turns the raw memory-price workbook into cleaned,
// feature-complete records ready for modeling.
//
// The package covers the first three stages of the pipeline:
//
//   - Loader: opens the workbook and returns the target sheet's rows with
//     no type coercion. Missing file and missing sheet are distinct fatal
//     errors.
//   - Cleaner: validates the raw layout against the configured schema,
//     discards the fixed header block and artifact columns, applies the
//     positional rename, strips thousands separators, and drops rows with
//     missing required fields. Row-level failures are fail-soft: the row is
//     excluded and the run continues.
//   - Deriver: truncates month labels to their three-letter form, verifies
//     ascending time order, and computes the first difference of cost per
//     megabyte with an explicitly undefined leading value.
//
// Column positions, not header names, are authoritative for the rename
// mapping; the schema width is validated before the mapping is applied.
package dataprocessing
