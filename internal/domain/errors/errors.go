package errors

import (
	"fmt"
	"net/http"

	"crmdash/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// ErrAuthenticationRequired is returned when a data operation is
	// attempted on a client that has not been armed with a credential.
	ErrAuthenticationRequired = NewBaseError(
		http.StatusUnauthorized,
		"AUTHENTICATION_REQUIRED",
		"authentication required, log in first",
		"",
	)

	// ErrAuthenticationRejected is returned when the remote service reports
	// the presented credential as invalid or expired.
	ErrAuthenticationRejected = NewBaseError(
		http.StatusUnauthorized,
		"AUTHENTICATION_REJECTED",
		"credential rejected by the remote service",
		"",
	)

	// ErrMalformedCallback is returned when the OAuth redirect fragment is
	// missing a required field. It is recovered locally and treated as
	// "no credential", never surfaced to API callers.
	ErrMalformedCallback = NewBaseError(
		http.StatusBadRequest,
		"MALFORMED_CALLBACK",
		"authentication callback is missing required fields",
		"",
	)

	// ErrUnknownObjectType is returned for record operations against an
	// object collection the dashboard does not manage.
	ErrUnknownObjectType = NewBaseError(
		http.StatusBadRequest,
		"UNKNOWN_OBJECT_TYPE",
		"unknown record type",
		"",
	)

	// ErrValidationFailed is returned when a mutation payload fails
	// structural validation.
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"input validation failed",
		"",
	)

	// ErrNotAuthenticated is returned when a data endpoint is hit while the
	// session is in the unauthenticated phase.
	ErrNotAuthenticated = NewBaseError(
		http.StatusUnauthorized,
		"NOT_AUTHENTICATED",
		"no active session",
		"",
	)

	// ErrInternalError is the generic fallback.
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"internal error",
		"",
	)
)

// TransportError represents a failed call against the remote service: a
// network error or a non-2xx response. It carries the intent of the failed
// operation so callers can report what was being attempted.
type TransportError struct {
	op     string // The operation that failed, e.g. "list accounts".
	status int    // HTTP status of the response, 0 for network failures.
	err    error
}

// NewTransportError creates a transport-level error for the given operation.
func NewTransportError(op string, status int, err error) *TransportError {
	return &TransportError{op: op, status: status, err: err}
}

// Error implements the error interface
func (e *TransportError) Error() string {
	if e.status != 0 {
		return fmt.Sprintf("%s: remote service returned status %d", e.op, e.status)
	}

	return errors.Wrapf(e.err, "%s: transport failure", e.op).Error()
}

// Unwrap exposes the underlying cause for errors.Is/As.
func (e *TransportError) Unwrap() error {
	return e.err
}

// Op returns the intent of the failed operation.
func (e *TransportError) Op() string {
	return e.op
}

// Status returns the HTTP status code of the failed response, 0 when the
// request never produced one.
func (e *TransportError) Status() int {
	return e.status
}

// HTTPCode returns the HTTP status code
func (e *TransportError) HTTPCode() int {
	return http.StatusBadGateway
}

// ErrorCode returns the business error code
func (e *TransportError) ErrorCode() string {
	return "TRANSPORT_FAILURE"
}

// Message returns the user-friendly error message
func (e *TransportError) Message() string {
	return "request to the remote service failed"
}

// Details returns detailed error information
func (e *TransportError) Details() string {
	return e.Error()
}
