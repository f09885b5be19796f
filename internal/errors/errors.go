package errors

import (
	"errors"
	"fmt"
)

// AnalysisError represents a structured pipeline error with a stable code
type AnalysisError struct {
	ErrorCode string      `json:"error_code"`
	Message   string      `json:"message"`
	Details   interface{} `json:"details,omitempty"`
	Cause     error       `json:"-"`
}

// Error implements the error interface
func (e *AnalysisError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap exposes the underlying cause for errors.Is/As chains
func (e *AnalysisError) Unwrap() error {
	return e.Cause
}

// Is matches AnalysisErrors by code so wrapped instances compare equal to
// their sentinels.
func (e *AnalysisError) Is(target error) bool {
	var t *AnalysisError
	if errors.As(target, &t) {
		return e.ErrorCode == t.ErrorCode
	}
	return false
}

// New creates a new AnalysisError with the given code and message
func New(errorCode, message string) *AnalysisError {
	return &AnalysisError{
		ErrorCode: errorCode,
		Message:   message,
	}
}

// NewWithDetails creates a new AnalysisError with additional details
func NewWithDetails(errorCode, message string, details interface{}) *AnalysisError {
	return &AnalysisError{
		ErrorCode: errorCode,
		Message:   message,
		Details:   details,
	}
}

// Predefined error types for the pipeline's failure taxonomy
var (
	// Fatal load errors: the run aborts.
	ErrSourceNotFound = New("SOURCE_NOT_FOUND", "Source workbook not found")
	ErrSheetNotFound  = New("SHEET_NOT_FOUND", "Sheet not found in workbook")

	// Dataset errors: cleaning produced nothing usable.
	ErrInsufficientData = New("INSUFFICIENT_DATA", "No usable rows after cleaning")
	ErrSchemaMismatch   = New("SCHEMA_MISMATCH", "Raw column count does not match the configured schema")

	// Model errors: reported per model, the rest of the run continues.
	ErrModelNotFittable = New("MODEL_NOT_FITTABLE", "Model could not be fitted")
	ErrUnsortedInput    = New("UNSORTED_INPUT", "Records are not in ascending time order")
)

// SourceNotFoundError wraps a filesystem error with the source-not-found code
func SourceNotFoundError(path string, err error) *AnalysisError {
	return &AnalysisError{
		ErrorCode: ErrSourceNotFound.ErrorCode,
		Message:   fmt.Sprintf("source workbook not found: %s", path),
		Details:   path,
		Cause:     err,
	}
}

// SheetNotFoundError reports a missing sheet with the available sheet names
func SheetNotFoundError(sheet string, available []string) *AnalysisError {
	return &AnalysisError{
		ErrorCode: ErrSheetNotFound.ErrorCode,
		Message:   fmt.Sprintf("sheet %q not found in workbook", sheet),
		Details:   available,
	}
}

// SchemaMismatchError reports an unexpected raw column count
func SchemaMismatchError(want, got int) *AnalysisError {
	return &AnalysisError{
		ErrorCode: ErrSchemaMismatch.ErrorCode,
		Message:   fmt.Sprintf("expected %d raw columns, got %d", want, got),
		Details:   map[string]int{"want": want, "got": got},
	}
}

// ModelNotFittableError explains why a specific model could not be fitted
func ModelNotFittableError(model, reason string) *AnalysisError {
	return &AnalysisError{
		ErrorCode: ErrModelNotFittable.ErrorCode,
		Message:   fmt.Sprintf("model %s not fittable: %s", model, reason),
		Details:   reason,
	}
}
