package errors

import (
	stderrors "errors"
)

// Sentinel errors for errors.Is comparisons. They match any AppError of the
// same type.
var (
	ErrFileNotFound   = &AppError{Type: ErrTypeNotFound, Message: "input file not found"}
	ErrMalformedInput = &AppError{Type: ErrTypeParsing, Message: "malformed input"}
	ErrWriteFailed    = &AppError{Type: ErrTypeStorage, Message: "write failed"}
	ErrInvalidInput   = &AppError{Type: ErrTypeValidation, Message: "invalid input"}
	ErrConfig         = &AppError{Type: ErrTypeConfig, Message: "invalid configuration"}
)

// TypeOf returns the ErrorType of the first AppError in err's chain, or "".
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Type
	}
	return ""
}

// IsStructural reports whether err is an I/O-layer failure that must abort
// the run.
func IsStructural(err error) bool {
	switch TypeOf(err) {
	case ErrTypeNotFound, ErrTypeParsing, ErrTypeStorage:
		return true
	default:
		return false
	}
}
