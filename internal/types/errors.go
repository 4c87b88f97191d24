package types

import (
	"errors"
	"fmt"
)

// ErrorCode represents a namespaced error code for Pikar framework errors.
type ErrorCode string

// Configuration error codes
const (
	CONFIG_LOAD_FAILED       ErrorCode = "CONFIG_LOAD_FAILED"
	CONFIG_PARSE_FAILED      ErrorCode = "CONFIG_PARSE_FAILED"
	CONFIG_VALIDATION_FAILED ErrorCode = "CONFIG_VALIDATION_FAILED"
)

// Store error codes
const (
	STORE_OPEN_FAILED      ErrorCode = "STORE_OPEN_FAILED"
	STORE_MIGRATION_FAILED ErrorCode = "STORE_MIGRATION_FAILED"
	STORE_QUERY_FAILED     ErrorCode = "STORE_QUERY_FAILED"
)

// Workflow error codes
const (
	WORKFLOW_NOT_FOUND      ErrorCode = "WORKFLOW_NOT_FOUND"
	WORKFLOW_INVALID        ErrorCode = "WORKFLOW_INVALID"
	WORKFLOW_DECODE_FAILED  ErrorCode = "WORKFLOW_DECODE_FAILED"
	WORKFLOW_UPSERT_FAILED  ErrorCode = "WORKFLOW_UPSERT_FAILED"
	WORKFLOW_IMPORT_FAILED  ErrorCode = "WORKFLOW_IMPORT_FAILED"
)

// Catalog error codes
const (
	CATALOG_SEED_FAILED ErrorCode = "CATALOG_SEED_FAILED"
	CATALOG_LIST_FAILED ErrorCode = "CATALOG_LIST_FAILED"
)

// PikarError represents a structured error with error code, message, and optional cause.
// It supports error wrapping and retryability hints for error handling logic.
type PikarError struct {
	Code      ErrorCode
	Message   string
	Retryable bool
	Cause     error
}

// Error implements the error interface, returning a formatted error message.
// Format: "[CODE] message" or "[CODE] message: cause" if cause exists.
func (e *PikarError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause error for error unwrapping chains.
func (e *PikarError) Unwrap() error {
	return e.Cause
}

// Is checks if the target error matches this error by error code.
func (e *PikarError) Is(target error) bool {
	var pikarErr *PikarError
	if errors.As(target, &pikarErr) {
		return e.Code == pikarErr.Code
	}
	return false
}

// NewError creates a new non-retryable PikarError with the given code and message.
func NewError(code ErrorCode, message string) *PikarError {
	return &PikarError{
		Code:    code,
		Message: message,
	}
}

// WrapError creates a new PikarError wrapping an underlying cause.
func WrapError(code ErrorCode, message string, cause error) *PikarError {
	return &PikarError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}
