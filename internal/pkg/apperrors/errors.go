package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound = errors.New("resource not found")
	ErrCourseNotFound   = errors.New("course not found")

	// Authentication errors
	ErrUnauthenticated = errors.New("authentication required")
	ErrTokenExpired    = errors.New("token expired")
	ErrTokenInvalid    = errors.New("invalid token")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrInvalidEmail     = errors.New("invalid email")
	ErrBadRequest       = errors.New("bad request")

	// State machine errors
	ErrStateConflict = errors.New("course is not in pending status")

	// Upstream collaborator errors (storage, roster lookup, email relay)
	ErrUpstream = errors.New("upstream service failure")
)

// Attachment errors
var (
	ErrMissingAttachment = errors.New("missing required attachment")
	ErrInvalidAttachment = errors.New("attachment must be a PDF")
)

// NewValidationError creates a new custom error for client-fixable input problems
func NewValidationError(message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
	}
}

// NewNotFoundError creates a new custom error for absent resources
func NewNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewForbiddenError creates a new custom error for permission denied with a message
func NewForbiddenError(message string) error {
	return &CustomError{
		Err:     ErrPermissionDenied,
		Message: message,
	}
}

// NewUpstreamError wraps a collaborator failure. The message is what the
// caller may see; the wrapped cause stays server-side.
func NewUpstreamError(message string, cause error) error {
	return &CustomError{
		Err:     ErrUpstream,
		Message: message,
		Cause:   cause,
	}
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Cause   error
	Details string
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds caller-visible detail text to the error
func (e *CustomError) WithDetails(details string) *CustomError {
	e.Details = details
	return e
}
