// Package exporter writes the analysis report.
//
// Two surfaces:
//
// CSVWriter: core CSV writing with headers and an optional UTF-8 BOM for
// Excel compatibility.
//
// ReportExporter: emits the report tables: cleaned records with cost
// differences, model summaries, Q-Q points, residual-vs-fitted pairs,
// monthly five-number summaries, and the median-test results with
// significance annotation at the configured threshold.
//
// PrintSummary renders the human-readable terminal summary.
package exporter
