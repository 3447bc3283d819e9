package apperrors

import "errors"

// Common errors
var (
	ErrResourceNotFound = errors.New("resource not found")
	ErrConflict         = errors.New("conflict")

	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// Raised when the hosted backend is switched off in config
	ErrBackendUnavailable = errors.New("backend unavailable")
)

// Authentication errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenNotFound      = errors.New("token not found")
	ErrTokenRevoked       = errors.New("token revoked")
)

// Location state errors
var (
	ErrUnknownCommunity = errors.New("unknown community")
	ErrUnknownArea      = errors.New("area does not belong to community")
)

// Local persistence errors
var (
	ErrThreadNotFound = errors.New("thread not found")
	ErrEventNotFound  = errors.New("event not found")
	ErrPostNotFound   = errors.New("post not found")
)

// Remote profile errors
var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrHandleTaken     = errors.New("handle already taken")
)

func NewConflictError(message string) error {
	return &CustomError{Err: ErrConflict, Message: message}
}

func NewBadRequestError(message string) error {
	return &CustomError{Err: ErrBadRequest, Message: message}
}

// NewValidationError wraps ErrValidationFailed with a field-level message
func NewValidationError(field, message string) error {
	return (&CustomError{Err: ErrValidationFailed, Message: message}).
		WithDetails(map[string]interface{}{"field": field})
}

// Is reports whether err matches target or any of errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}
	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
}

func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

func (e *CustomError) Unwrap() error {
	return e.Err
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}
