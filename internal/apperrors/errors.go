// Package apperrors defines the typed errors the service layer raises and
// the transport layer maps to responses. Each error carries a stable
// machine-readable code and an HTTP status; the service layer never
// suppresses them.
package apperrors

import (
	"errors"
	"net/http"
)

// Error codes
const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	CodeBadRequest   = "BAD_REQUEST"
	CodeInternal     = "INTERNAL_ERROR"
)

// FieldError is a per-field detail attached to validation errors
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is a typed application error
type Error struct {
	Status  int          `json:"status"`
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Details []FieldError `json:"details,omitempty"`
}

func (e *Error) Error() string {
	return e.Message
}

// Validation returns an unprocessable-input error with per-field details
func Validation(message string, details []FieldError) *Error {
	return &Error{Status: http.StatusUnprocessableEntity, Code: CodeValidation, Message: message, Details: details}
}

// Unauthorized returns a missing/invalid-credential error. The message must
// never reveal whether the subject exists.
func Unauthorized(message string) *Error {
	if message == "" {
		message = "Authentication required"
	}
	return &Error{Status: http.StatusUnauthorized, Code: CodeUnauthorized, Message: message}
}

// Forbidden returns an authenticated-but-not-permitted error
func Forbidden(message string) *Error {
	if message == "" {
		message = "Insufficient permissions"
	}
	return &Error{Status: http.StatusForbidden, Code: CodeForbidden, Message: message}
}

// NotFound returns a target-does-not-exist error
func NotFound(message string) *Error {
	if message == "" {
		message = "Not found"
	}
	return &Error{Status: http.StatusNotFound, Code: CodeNotFound, Message: message}
}

// Conflict returns a uniqueness-violation error
func Conflict(message string) *Error {
	return &Error{Status: http.StatusConflict, Code: CodeConflict, Message: message}
}

// BadRequest returns a preconditions-unmet error
func BadRequest(message string) *Error {
	return &Error{Status: http.StatusBadRequest, Code: CodeBadRequest, Message: message}
}

// Internal wraps store-level or other unexpected failures as a generic
// internal error so transport never leaks infrastructure detail.
func Internal(message string) *Error {
	if message == "" {
		message = "Internal server error"
	}
	return &Error{Status: http.StatusInternalServerError, Code: CodeInternal, Message: message}
}

// AsError extracts a typed *Error from err, or nil
func AsError(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// HasCode reports whether err is a typed error with the given code
func HasCode(err error, code string) bool {
	if appErr := AsError(err); appErr != nil {
		return appErr.Code == code
	}
	return false
}
