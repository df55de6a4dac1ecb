package services

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode classifies a service failure. The codes mirror the callable
// surface's error vocabulary and map one-to-one onto HTTP statuses.
type ErrorCode string

const (
	CodeInvalidArgument    ErrorCode = "invalid-argument"
	CodeUnauthenticated    ErrorCode = "unauthenticated"
	CodePermissionDenied   ErrorCode = "permission-denied"
	CodeNotFound           ErrorCode = "not-found"
	CodeFailedPrecondition ErrorCode = "failed-precondition"
	CodeInternal           ErrorCode = "internal"
)

// Error is a typed, structured service failure. Business preconditions and
// authorization failures are always reported this way, never swallowed.
type Error struct {
	Code    ErrorCode
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewError builds a typed service error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Errorf builds a typed service error with a formatted message.
func Errorf(code ErrorCode, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// CodeOf extracts the error code, defaulting to internal for unexpected
// failures so that store-level details never leak to callers.
func CodeOf(err error) ErrorCode {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr.Code
	}
	return CodeInternal
}

// MessageOf extracts the caller-facing message. Unexpected errors surface a
// generic message; the original error is expected to be logged at the site
// that observed it.
func MessageOf(err error) string {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr.Message
	}
	return "Internal error"
}

// HTTPStatus maps an error to the HTTP status the handlers respond with.
func HTTPStatus(err error) int {
	switch CodeOf(err) {
	case CodeInvalidArgument:
		return http.StatusBadRequest
	case CodeUnauthenticated:
		return http.StatusUnauthorized
	case CodePermissionDenied:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	case CodeFailedPrecondition:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
