package domain

import (
	"errors"
	"fmt"
)

// ErrorCode represents a semantic classification shared across transport layers.
type ErrorCode string

const (
	ErrCodeNotFound     ErrorCode = "NOT_FOUND"
	ErrCodeInvalid      ErrorCode = "INVALID"
	ErrCodeConflict     ErrorCode = "CONFLICT"
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeInternal     ErrorCode = "INTERNAL"
)

// Error represents a domain-level error. Message is safe to surface to
// clients verbatim; Err carries the underlying cause when wrapping.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewError builds a domain error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WrapError wraps an existing error with a domain classification.
func WrapError(code ErrorCode, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common domain errors. The messages match the public API contract exactly.
var (
	ErrUserExists         = NewError(ErrCodeConflict, "User already exists.")
	ErrInvalidCredentials = NewError(ErrCodeUnauthorized, "Invalid credentials.")
	ErrNotLoggedIn        = NewError(ErrCodeUnauthorized, "Not logged in")
	ErrUserNotFound       = NewError(ErrCodeNotFound, "User not found")
	ErrTaskNotFound       = NewError(ErrCodeNotFound, "Task not found.")
	ErrSessionNotFound    = NewError(ErrCodeNotFound, "session not found")
	ErrInvalidPriority    = NewError(ErrCodeInvalid, "Invalid priority.")
	ErrInvalidPayload     = NewError(ErrCodeInvalid, "Invalid request payload.")
)

// IsDomainError helps checking error codes.
func IsDomainError(err error, code ErrorCode) bool {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr.Code == code
	}
	return false
}

// IsStoreFailure reports whether err is an unclassified infrastructure
// failure rather than a business-rule rejection.
func IsStoreFailure(err error) bool {
	if err == nil {
		return false
	}
	var dErr *Error
	return !errors.As(err, &dErr)
}
