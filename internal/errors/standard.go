// Package errors provides categorized error values for plc.
package errors

import (
	"errors"
	"fmt"
	"runtime"
)

// ErrorCategory represents different categories of errors
type ErrorCategory string

const (
	CategorySymbol    ErrorCategory = "SYMBOL"
	CategoryType      ErrorCategory = "TYPE"
	CategoryIO        ErrorCategory = "IO"
	CategoryStructure ErrorCategory = "STRUCTURE"
)

// StandardError provides a consistent error format
type StandardError struct {
	Category ErrorCategory
	Code     string
	Message  string
	Context  map[string]interface{}
	Caller   string
	Err      error
}

// Error implements the error interface
func (e *StandardError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s:%s] %s: %v", e.Category, e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s:%s] %s", e.Category, e.Code, e.Message)
}

// Unwrap returns the wrapped cause, if any.
func (e *StandardError) Unwrap() error { return e.Err }

// NewStandardError creates a new standardized error
func NewStandardError(category ErrorCategory, code, message string, context map[string]interface{}) *StandardError {
	pc, _, _, ok := runtime.Caller(1)
	caller := "unknown"
	if ok {
		if fn := runtime.FuncForPC(pc); fn != nil {
			caller = fn.Name()
		}
	}

	return &StandardError{
		Category: category,
		Code:     code,
		Message:  message,
		Context:  context,
		Caller:   caller,
	}
}

// Is reports whether err is a StandardError of the given category.
func Is(err error, category ErrorCategory) bool {
	var se *StandardError
	if errors.As(err, &se) {
		return se.Category == category
	}
	return false
}

// Common error constructors

// MalformedProgram reports a program whose top-level structure cannot be
// recovered from.
func MalformedProgram(line int, lexeme string) *StandardError {
	return NewStandardError(CategoryStructure, "MALFORMED_PROGRAM",
		fmt.Sprintf("malformed program structure at line %d near %q", line, lexeme),
		map[string]interface{}{"line": line, "lexeme": lexeme})
}

// UnexpectedEOF reports input that ended while required structure was still expected.
func UnexpectedEOF() *StandardError {
	return NewStandardError(CategoryStructure, "UNEXPECTED_EOF",
		"input ended before the program was complete", nil)
}

// DuplicateSymbol reports a second binding for an existing scope key.
func DuplicateSymbol(key string) *StandardError {
	return NewStandardError(CategorySymbol, "DUPLICATE_SYMBOL",
		fmt.Sprintf("symbol %q is already defined", key),
		map[string]interface{}{"key": key})
}

// InvalidBounds reports array bounds that cannot size an array.
func InvalidBounds(lower, upper string) *StandardError {
	return NewStandardError(CategoryType, "INVALID_BOUNDS",
		fmt.Sprintf("invalid array bounds [%s:%s]", lower, upper),
		map[string]interface{}{"lower": lower, "upper": upper})
}

// UnbalancedUnits reports a close or discard without a matching open.
func UnbalancedUnits() *StandardError {
	return NewStandardError(CategoryStructure, "UNBALANCED_UNITS",
		"no enclosing unit to resume", nil)
}

// ReadFailed wraps a failure to read a source file.
func ReadFailed(path string, err error) *StandardError {
	e := NewStandardError(CategoryIO, "READ_FAILED",
		fmt.Sprintf("failed to read %s", path),
		map[string]interface{}{"path": path})
	e.Err = err
	return e
}

// WriteFailed wraps a failure to write generated output.
func WriteFailed(path string, err error) *StandardError {
	e := NewStandardError(CategoryIO, "WRITE_FAILED",
		fmt.Sprintf("failed to write %s", path),
		map[string]interface{}{"path": path})
	e.Err = err
	return e
}
