package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrSessionExpired is returned when the upstream rejects the bearer token.
	// It is distinct from every other failure so callers can tear the session
	// down and send the user back to login.
	ErrSessionExpired = errors.New("session expired")
	// ErrForbidden is returned when the upstream refuses the acting role.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound is returned when the requested record does not exist upstream.
	ErrNotFound = errors.New("record not found")
	// ErrUpstreamUnavailable is returned when the backend cannot be reached.
	ErrUpstreamUnavailable = errors.New("backend unavailable")
	// ErrValidation is returned when a request is rejected before it is sent.
	ErrValidation = errors.New("validation failed")
	// ErrSessionUnresolved is returned while session verification against the
	// backend cannot complete. Guards must answer with a retry, not a redirect.
	ErrSessionUnresolved = errors.New("session state unresolved")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps gateway errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrValidation):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "VALIDATION_ERROR")
	case errors.Is(err, ErrSessionExpired):
		return NewHTTPError(http.StatusUnauthorized, "session expired, please login again", "SESSION_EXPIRED")
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, err.Error(), "FORBIDDEN")
	case errors.Is(err, ErrNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "NOT_FOUND")
	case errors.Is(err, ErrSessionUnresolved):
		return NewHTTPError(http.StatusServiceUnavailable, "could not verify session, retry shortly", "SESSION_UNRESOLVED")
	case errors.Is(err, ErrUpstreamUnavailable):
		return NewHTTPError(http.StatusBadGateway, err.Error(), "UPSTREAM_UNAVAILABLE")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
