package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode identifies a failure class. Codes are stable and safe for
// programmatic branching by callers.
type ErrorCode string

const (
	// Login pipeline errors
	ErrCodeInvalidCode        ErrorCode = "INVALID_CODE"
	ErrCodeInvalidRedirectURI ErrorCode = "INVALID_REDIRECT_URI"
	ErrCodeExchangeFailed     ErrorCode = "EXCHANGE_FAILED"
	ErrCodeProfileFetchFailed ErrorCode = "PROFILE_FETCH_FAILED"

	// Identity store errors
	ErrCodeDuplicateEmail           ErrorCode = "DUPLICATE_EMAIL"
	ErrCodeIdentityStoreUnavailable ErrorCode = "IDENTITY_STORE_UNAVAILABLE"

	// Signing errors
	ErrCodeSigningUnavailable ErrorCode = "SIGNING_UNAVAILABLE"

	// Request errors
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodeUnauthorized     ErrorCode = "UNAUTHORIZED"
	ErrCodeNotFound         ErrorCode = "NOT_FOUND"

	// Generic errors
	ErrCodeInternalError ErrorCode = "INTERNAL_ERROR"
)

// AppError is the single error shape that crosses component boundaries.
// Code carries the classification, Location the pipeline step that
// produced it, and Cause the underlying error for logs only.
type AppError struct {
	Code       ErrorCode `json:"code"`
	Message    string    `json:"message"`
	Location   string    `json:"location,omitempty"`
	StatusCode int       `json:"-"`
	Cause      error     `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for error unwrapping
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithLocation records the pipeline step that raised the error. The first
// recorded location wins; re-wrapping never overwrites it.
func (e *AppError) WithLocation(location string) *AppError {
	if e.Location == "" {
		e.Location = location
	}
	return e
}

// New creates a new AppError
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: httpStatusFor(code),
	}
}

// Wrap wraps an existing error with AppError
func Wrap(code ErrorCode, message string, cause error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: httpStatusFor(code),
		Cause:      cause,
	}
}

// AsAppError converts an error to AppError if possible
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsCode reports whether err carries the given error code.
func IsCode(err error, code ErrorCode) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code == code
	}
	return false
}

// GetHTTPStatusCode gets the HTTP status code for an error
func GetHTTPStatusCode(err error) int {
	if appErr, ok := AsAppError(err); ok {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}

// httpStatusFor maps error codes to HTTP status codes. Caller-attributable
// input errors map to 4xx, upstream and system faults to 5xx.
func httpStatusFor(code ErrorCode) int {
	switch code {
	case ErrCodeInvalidCode, ErrCodeInvalidRedirectURI, ErrCodeValidationFailed:
		return http.StatusBadRequest
	case ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeDuplicateEmail:
		return http.StatusConflict
	case ErrCodeIdentityStoreUnavailable:
		return http.StatusServiceUnavailable
	case ErrCodeExchangeFailed, ErrCodeProfileFetchFailed, ErrCodeSigningUnavailable, ErrCodeInternalError:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// Stable user-visible messages for the login pipeline.
const (
	MsgInvalidCode        = "authorization code is invalid, expired, or already used"
	MsgInvalidRedirectURI = "redirect URI does not match the one used to obtain the code"
	MsgExchangeFailed     = "failed to exchange authorization code with Google"
)
