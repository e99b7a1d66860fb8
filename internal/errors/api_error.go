package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is a failed call to the budgeting backend. It keeps the HTTP
// status and whatever message the backend included so call sites can render
// something more specific than the generic code message.
type APIError struct {
	Code       ErrorCode
	StatusCode int
	Message    string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s (%d): %s", e.Code, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s (%d): %s", e.Code, e.StatusCode, GetErrorMessage(e.Code))
}

// UserMessage returns the text to surface in the UI.
func (e *APIError) UserMessage() string {
	if e.Message != "" {
		return e.Message
	}
	return GetErrorMessage(e.Code)
}

// NewAPIError builds an APIError, deriving the code from the HTTP status
// when one is not forced by the caller.
func NewAPIError(statusCode int, message string) *APIError {
	return &APIError{
		Code:       codeForStatus(statusCode),
		StatusCode: statusCode,
		Message:    message,
	}
}

// NewTransportError wraps a failure that never produced an HTTP response.
func NewTransportError(err error) *APIError {
	return &APIError{
		Code:    APIUnreachable,
		Message: err.Error(),
	}
}

func codeForStatus(status int) ErrorCode {
	switch {
	case status == http.StatusUnauthorized:
		return APIUnauthorized
	case status == http.StatusForbidden:
		return APIUnauthorized
	case status == http.StatusNotFound:
		return APINotFound
	case status == http.StatusConflict:
		return APIConflict
	case status == http.StatusTooManyRequests:
		return APIRateLimited
	case status >= 500:
		return APIServerError
	default:
		return APIMalformed
	}
}

// IsUnauthorized reports whether err is an APIError with a 401 status,
// the trigger for the refresh-token exchange.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusUnauthorized
	}
	return false
}

// StatusOf extracts the HTTP status from err, or zero when err did not come
// from the backend.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}
