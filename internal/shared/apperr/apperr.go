package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is a domain error that knows its HTTP status. Domain packages
// declare sentinels with the constructors below and compare them with
// errors.Is; handlers map any error to a status with Status().
type Error struct {
	StatusCode int
	Code       string
	Message    string
	Err        error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(statusCode int, code, message string) *Error {
	return &Error{StatusCode: statusCode, Code: code, Message: message}
}

func NotFound(message string) *Error {
	return New(http.StatusNotFound, "NOT_FOUND", message)
}

func BadRequest(message string) *Error {
	return New(http.StatusBadRequest, "BAD_REQUEST", message)
}

func Unauthorized(message string) *Error {
	return New(http.StatusUnauthorized, "UNAUTHORIZED", message)
}

func Forbidden(message string) *Error {
	return New(http.StatusForbidden, "FORBIDDEN", message)
}

func Conflict(message string) *Error {
	return New(http.StatusConflict, "CONFLICT", message)
}

// Wrap attaches a cause while keeping the sentinel matchable via errors.Is.
func Wrap(sentinel *Error, err error) *Error {
	return &Error{
		StatusCode: sentinel.StatusCode,
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		Err:        err,
	}
}

// Is makes wrapped copies match their sentinel.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

// Validation wraps a validation failure (ozzo or manual checks) as a 400.
func Validation(err error) *Error {
	return &Error{
		StatusCode: http.StatusBadRequest,
		Code:       "VALIDATION_ERROR",
		Message:    "validation failed",
		Err:        err,
	}
}

// Status maps any error to an HTTP status code; unknown errors are a 500.
func Status(err error) int {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}

// CodeOf returns the response error code for an error.
func CodeOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return "INTERNAL_SERVER_ERROR"
}
