// Package errors defines the structured error taxonomy shared by the loader
// and the signal processors. Every failure mode the toolkit can report carries
// a stable code so callers (and tests) can match on the condition rather than
// on message text.
package errors

import (
	"errors"
	"fmt"
)

// Code identifies a failure condition.
type Code string

const (
	// CodeUnsupportedFormat indicates a data or metadata file extension that
	// the loader does not recognize.
	CodeUnsupportedFormat Code = "UNSUPPORTED_FORMAT"

	// CodeMissingFile indicates a path that does not exist or is unreadable.
	CodeMissingFile Code = "MISSING_FILE"

	// CodeMissingColumn indicates a referenced column absent from its table.
	CodeMissingColumn Code = "MISSING_COLUMN"

	// CodeMissingExperiment indicates a referenced experiment or result table
	// absent from the loaded record.
	CodeMissingExperiment Code = "MISSING_EXPERIMENT"

	// CodeInvalidWindow indicates a window name outside the recognized set.
	CodeInvalidWindow Code = "INVALID_WINDOW"

	// CodeInvalidSweepType indicates a sweep type outside the recognized set.
	CodeInvalidSweepType Code = "INVALID_SWEEP_TYPE"

	// CodeInvalidDirection indicates a sweep direction outside the recognized set.
	CodeInvalidDirection Code = "INVALID_DIRECTION"

	// CodeInvalidArgument indicates an otherwise malformed argument, such as a
	// non-positive window width or mismatched series lengths.
	CodeInvalidArgument Code = "INVALID_ARGUMENT"
)

// AnalysisError is a structured error with a stable code and optional cause.
type AnalysisError struct {
	Code    Code
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AnalysisError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the underlying cause for errors.Is/As chains.
func (e *AnalysisError) Unwrap() error {
	return e.Err
}

// New creates an AnalysisError with the given code and formatted message.
func New(code Code, format string, args ...any) *AnalysisError {
	return &AnalysisError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an AnalysisError that records err as its cause.
func Wrap(code Code, err error, format string, args ...any) *AnalysisError {
	return &AnalysisError{Code: code, Message: fmt.Sprintf(format, args...), Err: err}
}

// IsCode reports whether any error in err's chain is an AnalysisError with
// the given code.
func IsCode(err error, code Code) bool {
	var ae *AnalysisError
	for errors.As(err, &ae) {
		if ae.Code == code {
			return true
		}
		err = ae.Err
		ae = nil
		if err == nil {
			return false
		}
	}
	return false
}

// Helper constructors for the common conditions.

// UnsupportedFormat reports an unrecognized file extension.
func UnsupportedFormat(ext string) *AnalysisError {
	return New(CodeUnsupportedFormat, "file extension %q is not supported", ext)
}

// MissingFile reports an absent or unreadable path.
func MissingFile(path string, err error) *AnalysisError {
	return Wrap(CodeMissingFile, err, "cannot read %s", path)
}

// MissingColumn reports a column absent from a table.
func MissingColumn(table, column string) *AnalysisError {
	return New(CodeMissingColumn, "table %q has no column %q", table, column)
}

// MissingExperiment reports an experiment or result table absent from a record.
func MissingExperiment(name string) *AnalysisError {
	return New(CodeMissingExperiment, "no experiment or table named %q", name)
}

// InvalidWindow reports an unrecognized window function name.
func InvalidWindow(name string) *AnalysisError {
	return New(CodeInvalidWindow, "window %q is not one of the recognized window functions", name)
}
