// Package errors carries transport-level errors that know their HTTP status.
package errors

import "net/http"

// HTTPError is an error with the status and public message to send.
type HTTPError struct {
	StatusCode int
	Message    string
}

func NewHTTPError(statusCode int, message string) *HTTPError {
	return &HTTPError{StatusCode: statusCode, Message: message}
}

func (e *HTTPError) Error() string {
	return e.Message
}

var (
	ErrBadRequest         = NewHTTPError(http.StatusBadRequest, "bad request")
	ErrTooManyRequests    = NewHTTPError(http.StatusTooManyRequests, "too many requests")
	ErrServiceUnavailable = NewHTTPError(http.StatusServiceUnavailable, "service unavailable")
	ErrInternalServer     = NewHTTPError(http.StatusInternalServerError, "internal server error")
)
