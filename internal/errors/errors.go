package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrEventNotFound is returned when no event matches both the id and the
	// resolved user. A wrong id and someone else's event are indistinguishable.
	ErrEventNotFound = errors.New("event not found")
	// ErrUserNotFound is returned when a user lookup misses.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidEventID is returned when an event id cannot be parsed.
	ErrInvalidEventID = errors.New("invalid event id")
	// ErrInvalidTimestamp is returned when a timestamp cannot be parsed.
	ErrInvalidTimestamp = errors.New("invalid timestamp")
	// ErrStoreUnavailable is returned when the record store cannot be reached.
	ErrStoreUnavailable = errors.New("record store unavailable")
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

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrEventNotFound):
		return NewHTTPError(http.StatusNotFound, ErrEventNotFound.Error(), "EVENT_NOT_FOUND")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, ErrUserNotFound.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrInvalidEventID):
		return NewHTTPError(http.StatusBadRequest, ErrInvalidEventID.Error(), "INVALID_EVENT_ID")
	case errors.Is(err, ErrInvalidTimestamp):
		return NewHTTPError(http.StatusBadRequest, ErrInvalidTimestamp.Error(), "INVALID_TIMESTAMP")
	case errors.Is(err, ErrStoreUnavailable):
		return NewHTTPError(http.StatusServiceUnavailable, ErrStoreUnavailable.Error(), "STORE_UNAVAILABLE")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
