package errors

import (
	"fmt"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrTypeNotFound   ErrorType = "FILE_NOT_FOUND"
	ErrTypeParsing    ErrorType = "MALFORMED_INPUT"
	ErrTypeStorage    ErrorType = "WRITE_FAILED"
	ErrTypeValidation ErrorType = "INVALID_INPUT"
	ErrTypeConfig     ErrorType = "CONFIG"
)

// AppError represents an application-specific error
type AppError struct {
	Type    ErrorType
	Message string
	Path    string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	msg := e.Message
	if e.Path != "" {
		msg = fmt.Sprintf("%s (%s)", e.Message, e.Path)
	}
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, msg, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, msg)
}

// Unwrap allows errors.Is and errors.As to work with AppError
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an AppError of the same type. This lets callers
// compare against the sentinel values with errors.Is.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewAppError creates a new application error
func NewAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// Helper functions for common error types

// NewNotFoundError creates an error for a missing input file
func NewNotFoundError(path string, cause error) *AppError {
	e := NewAppError(ErrTypeNotFound, "input file not found", cause)
	e.Path = path
	return e
}

// NewParsingError creates an error for unreadable or malformed input
func NewParsingError(path, message string, cause error) *AppError {
	e := NewAppError(ErrTypeParsing, message, cause)
	e.Path = path
	return e
}

// NewStorageError creates an error for a failed write
func NewStorageError(path, message string, cause error) *AppError {
	e := NewAppError(ErrTypeStorage, message, cause)
	e.Path = path
	return e
}

// NewAppValidationError creates a validation error for AppError type
func NewAppValidationError(message string) *AppError {
	return NewAppError(ErrTypeValidation, message, nil)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}
