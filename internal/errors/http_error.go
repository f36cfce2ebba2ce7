package errors

import "net/http"

// HTTPError represents an error with an associated HTTP status code.
type HTTPError struct {
	Code    int
	Message string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTPError with the given code and message.
func NewHTTPError(code int, message string) *HTTPError {
	return &HTTPError{
		Code:    code,
		Message: message,
	}
}

// Helpers for the error taxonomy. Validation, conflict and not-found errors
// carry a precise message to the caller; dependency failures surface as an
// opaque server error while the detail stays in the logs.
var (
	Validation = func(msg string) *HTTPError { return NewHTTPError(http.StatusBadRequest, msg) }
	Conflict   = func(msg string) *HTTPError { return NewHTTPError(http.StatusConflict, msg) }
	NotFound   = func(msg string) *HTTPError { return NewHTTPError(http.StatusNotFound, msg) }
	Dependency = func(msg string) *HTTPError { return NewHTTPError(http.StatusInternalServerError, msg) }
)
