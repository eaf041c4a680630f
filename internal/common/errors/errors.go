// Package errors provides standardized error handling for the activities API.
package errors

import (
	"fmt"
	"net/http"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

// Directory errors cover every failure the signup surface can produce. All of
// them are client-input errors; there is no transient class to retry.
const (
	ErrCodeActivityNotFound ErrorCode = "ACTIVITY_NOT_FOUND"
	ErrCodeAlreadySignedUp  ErrorCode = "ALREADY_SIGNED_UP"
	ErrCodeActivityFull     ErrorCode = "ACTIVITY_FULL"
	ErrCodeNotSignedUp      ErrorCode = "NOT_SIGNED_UP"
	ErrCodeEmailRequired    ErrorCode = "EMAIL_REQUIRED"
	ErrCodeInternal         ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error. Message carries
// the exact client-facing detail text; Details holds internal context that
// only appears in logs.
type StandardError struct {
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. Error Constructors
// ==========================

// NewActivityNotFoundError creates an unknown-activity error.
func NewActivityNotFoundError(name string) *StandardError {
	return &StandardError{
		Code:      ErrCodeActivityNotFound,
		Message:   "Activity not found",
		Details:   fmt.Sprintf("activity: %s", name),
		Timestamp: time.Now().UTC(),
	}
}

// NewAlreadySignedUpError creates a duplicate-signup error.
func NewAlreadySignedUpError(email, name string) *StandardError {
	return &StandardError{
		Code:      ErrCodeAlreadySignedUp,
		Message:   fmt.Sprintf("%s already signed up for %s", email, name),
		Details:   fmt.Sprintf("activity: %s, email: %s", name, email),
		Timestamp: time.Now().UTC(),
	}
}

// NewActivityFullError creates a capacity-exceeded error.
func NewActivityFullError(name string, maxParticipants int) *StandardError {
	return &StandardError{
		Code:      ErrCodeActivityFull,
		Message:   "Activity is full",
		Details:   fmt.Sprintf("activity: %s, maxParticipants: %d", name, maxParticipants),
		Timestamp: time.Now().UTC(),
	}
}

// NewNotSignedUpError creates an unregister-of-absent-participant error.
func NewNotSignedUpError(email, name string) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotSignedUp,
		Message:   fmt.Sprintf("%s is not signed up for %s", email, name),
		Details:   fmt.Sprintf("activity: %s, email: %s", name, email),
		Timestamp: time.Now().UTC(),
	}
}

// NewEmailRequiredError creates a missing-email error.
func NewEmailRequiredError() *StandardError {
	return &StandardError{
		Code:      ErrCodeEmailRequired,
		Message:   "email is required",
		Details:   "missing or empty email query parameter",
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. HTTP Mapping
// ==========================

// HTTPStatusMapping maps internal error codes to HTTP status codes. The wire
// contract distinguishes only unknown-activity (404) from precondition
// failures (400).
var HTTPStatusMapping = map[ErrorCode]int{
	ErrCodeActivityNotFound: http.StatusNotFound,
	ErrCodeAlreadySignedUp:  http.StatusBadRequest,
	ErrCodeActivityFull:     http.StatusBadRequest,
	ErrCodeNotSignedUp:      http.StatusBadRequest,
	ErrCodeEmailRequired:    http.StatusBadRequest,
}

// HTTPStatus returns the response status for a code. Anything outside the
// taxonomy is a 500.
func HTTPStatus(code ErrorCode) int {
	if status, ok := HTTPStatusMapping[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// Normalize ensures we always have a StandardError.
func Normalize(err error) *StandardError {
	if stdErr, ok := err.(*StandardError); ok {
		return stdErr
	}
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "internal server error",
		Details:   err.Error(),
		Timestamp: time.Now().UTC(),
	}
}

// IsCode reports whether err is a StandardError carrying the given code.
func IsCode(err error, code ErrorCode) bool {
	stdErr, ok := err.(*StandardError)
	return ok && stdErr.Code == code
}
