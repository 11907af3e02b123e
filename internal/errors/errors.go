package errors

import (
	"errors"
	"net/http"
)

// Kind is the machine-readable error category returned to clients.
type Kind string

const (
	KindValidation    Kind = "VALIDATION_ERROR"
	KindUnprocessable Kind = "UNPROCESSABLE_ENTITY"
	KindAuth          Kind = "AUTH_ERROR"
	KindNotFound      Kind = "NOT_FOUND"
	KindConflict      Kind = "CONFLICT"
	KindStore         Kind = "STORE_ERROR"
	KindInternal      Kind = "INTERNAL_ERROR"
)

var (
	// ErrValidation is returned when required input is missing or malformed.
	ErrValidation = errors.New("invalid input")
	// ErrPasswordTooLong is returned when a password exceeds what bcrypt can hash.
	ErrPasswordTooLong = errors.New("password too long")
	// ErrDuplicateUsername is returned when registering a username that is already taken.
	ErrDuplicateUsername = errors.New("username already exists")
	// ErrInvalidCredentials is returned when username or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken is returned when a bearer credential is missing, malformed, expired or revoked.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrScreenNotFound is returned when a screen is missing or owned by someone else.
	ErrScreenNotFound = errors.New("screen not found or access denied")
	// ErrStore is returned when the underlying store fails. Driver details are logged, never wrapped.
	ErrStore = errors.New("store error")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Msg    string   `json:"msg"`
	Kind   Kind     `json:"kind,omitempty"`
	Errors []string `json:"errors,omitempty"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Kind       Kind
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message string, kind Kind) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Kind:       kind,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Msg:  e.Message,
		Kind: e.Kind,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Unknown errors become a generic 500.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrPasswordTooLong):
		return NewHTTPError(http.StatusBadRequest, "Password too long", KindValidation)
	case errors.Is(err, ErrValidation):
		return NewHTTPError(http.StatusBadRequest, "Invalid input", KindValidation)
	case errors.Is(err, ErrDuplicateUsername):
		return NewHTTPError(http.StatusConflict, "Username already exists", KindConflict)
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, "Invalid credentials", KindAuth)
	case errors.Is(err, ErrInvalidToken):
		return NewHTTPError(http.StatusUnauthorized, "Invalid or missing token", KindAuth)
	case errors.Is(err, ErrScreenNotFound):
		return NewHTTPError(http.StatusNotFound, "Screen not found or access denied", KindNotFound)
	case errors.Is(err, ErrStore):
		return NewHTTPError(http.StatusInternalServerError, "An internal error occurred", KindStore)
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", KindInternal)
	}
}
