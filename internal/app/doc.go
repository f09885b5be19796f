// Package app wires the pipeline stages together and runs them in order:
// load, clean, sort, derive, model, diagnose. The flow is strictly
// sequential; a load or cleaning failure aborts the run, while a model that
// cannot be fitted is recorded in the report and the remaining analyses
// continue.
package app
