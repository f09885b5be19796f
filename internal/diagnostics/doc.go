// Package diagnostics assesses the log-linear model's assumptions and
// compares monthly groups.
//
// The three analyses are independent and descriptive: a normal
// quantile-quantile comparison of the log response, residual-vs-fitted
// pairing for heteroscedasticity inspection, and a Mood's median test of
// whether the monthly groups share a common median, with all pairwise group
// comparisons reported. No pass/fail threshold is applied here; the
// configured significance level only annotates the exported report.
package diagnostics
