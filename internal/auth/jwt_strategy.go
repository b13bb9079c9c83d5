package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/spec-kit/guard-service/internal/domain"
	"github.com/spec-kit/guard-service/internal/identity"
	"github.com/spec-kit/guard-service/internal/repository"
)

// JWTStrategy verifies identity-provider session tokens. The provider is
// the source of truth: no local user is created here, but an existing store
// record takes precedence over claim-derived role and status.
type JWTStrategy struct {
	secretKey string
	verifier  identity.Verifier
	users     repository.UserRepository
}

// NewJWTStrategy builds the strategy. users may be nil when no store is
// configured; resolution then relies on claims alone.
func NewJWTStrategy(secretKey string, verifier identity.Verifier, users repository.UserRepository) *JWTStrategy {
	return &JWTStrategy{secretKey: secretKey, verifier: verifier, users: users}
}

// Method implements Strategy.
func (s *JWTStrategy) Method() string { return MethodJWT }

// CanHandle implements Strategy.
func (s *JWTStrategy) CanHandle(tokenType TokenType) bool {
	return tokenType == TokenTypeJWT
}

// Authenticate implements Strategy.
func (s *JWTStrategy) Authenticate(ctx context.Context, rawToken string) (*domain.User, error) {
	if !identity.ValidateClerkSecretKey(s.secretKey) {
		return nil, jwtFailure("Clerk configuration invalid")
	}

	claims, err := s.verifier.Verify(ctx, strings.TrimSpace(rawToken))
	if err != nil {
		return nil, jwtFailure(err.Error())
	}

	if s.users != nil && claims.Email != "" {
		user, err := s.users.GetByEmail(ctx, claims.Email)
		if err == nil {
			user.AuthMethod = MethodJWT
			return user, nil
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, jwtFailure(err.Error())
		}
	}

	return s.userFromClaims(claims), nil
}

func (s *JWTStrategy) userFromClaims(claims *identity.Claims) *domain.User {
	role := domain.Role(strings.ToUpper(claims.Role))
	if !role.IsValid() {
		role = domain.RoleAdmin
	}
	return &domain.User{
		ExternalID: claims.Subject,
		Email:      claims.Email,
		FirstName:  claims.FirstName,
		LastName:   claims.LastName,
		Role:       role,
		Status:     domain.UserStatusActive,
		AuthMethod: MethodJWT,
	}
}

func jwtFailure(reason string) *Error {
	return NewAuthenticationFailed("JWT authentication failed: " + reason)
}
