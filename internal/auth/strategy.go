package auth

import (
	"context"

	"github.com/spec-kit/guard-service/internal/domain"
)

// Authentication method identifiers. Stable: they prefix session ids and
// appear in audit logs.
const (
	MethodJWT         = "jwt"
	MethodEmail       = "email"
	MethodDevelopment = "development"
)

// Strategy verifies one kind of bearer credential and resolves it to a
// user. Implementations partition the TokenType space: exactly one
// strategy claims each type.
type Strategy interface {
	// Authenticate verifies the raw token and resolves or provisions the
	// user. Failures are *Error values with strategy-prefixed messages.
	Authenticate(ctx context.Context, rawToken string) (*domain.User, error)

	// CanHandle reports whether this strategy processes the token type.
	CanHandle(tokenType TokenType) bool

	// Method returns the stable method identifier ("jwt", "email",
	// "development").
	Method() string
}
