package errors

import "net/http"

// HTTPError carries the status and message a delivery layer should answer with.
type HTTPError struct {
	Code       int
	Message    string
	StatusCode int
}

// NewHTTPError creates an HTTPError. code is used as the HTTP status when it is one.
func NewHTTPError(code int, message string) *HTTPError {
	status := code
	if status < 400 || status > 599 {
		status = http.StatusBadRequest
	}
	return &HTTPError{Code: code, Message: message, StatusCode: status}
}

func (e *HTTPError) Error() string {
	return e.Message
}

var (
	ErrBadRequest          = NewHTTPError(http.StatusBadRequest, "bad request")
	ErrNotFound            = NewHTTPError(http.StatusNotFound, "not found")
	ErrInternalServerError = NewHTTPError(http.StatusInternalServerError, "internal server error")
)
