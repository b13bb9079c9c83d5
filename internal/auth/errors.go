package auth

import "net/http"

// ErrorCode enumerates machine-readable authentication failure codes.
type ErrorCode string

const (
	CodeTokenRequired           ErrorCode = "TOKEN_REQUIRED"
	CodeAuthenticationFailed    ErrorCode = "AUTHENTICATION_FAILED"
	CodeAuthenticationRequired  ErrorCode = "AUTHENTICATION_REQUIRED"
	CodeInsufficientRole        ErrorCode = "INSUFFICIENT_ROLE"
	CodeInsufficientPermissions ErrorCode = "INSUFFICIENT_PERMISSIONS"
	CodeInsufficientAccessLevel ErrorCode = "INSUFFICIENT_ACCESS_LEVEL"
)

// Error is the typed failure surfaced by the authentication service and the
// authorization middleware. Message is safe to return to clients; it never
// contains credential material.
type Error struct {
	Code       ErrorCode
	Message    string
	StatusCode int
}

func (e *Error) Error() string {
	return e.Message
}

// NewTokenRequired reports a missing or malformed Authorization header.
// The message is deliberately generic to avoid format probing.
func NewTokenRequired() *Error {
	return &Error{
		Code:       CodeTokenRequired,
		Message:    "Authentication token required",
		StatusCode: http.StatusUnauthorized,
	}
}

// NewAuthenticationFailed wraps a strategy-level verification failure,
// preserving the strategy's own prefixed message.
func NewAuthenticationFailed(message string) *Error {
	return &Error{
		Code:       CodeAuthenticationFailed,
		Message:    message,
		StatusCode: http.StatusUnauthorized,
	}
}

// NewAuthenticationRequired reports authorization middleware running
// without an authenticated user.
func NewAuthenticationRequired() *Error {
	return &Error{
		Code:       CodeAuthenticationRequired,
		Message:    "Authentication required",
		StatusCode: http.StatusUnauthorized,
	}
}

func newForbidden(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message, StatusCode: http.StatusForbidden}
}
