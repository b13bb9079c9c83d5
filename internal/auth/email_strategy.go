package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/guard-service/internal/domain"
	"github.com/spec-kit/guard-service/internal/repository"
)

// EmailStrategy resolves a bare email address to a user, provisioning one
// on first sight. Provisioning is idempotent: the store's find-or-create
// guarantees a single row per email under concurrent first-time logins.
type EmailStrategy struct {
	users repository.UserRepository
}

// NewEmailStrategy builds the strategy.
func NewEmailStrategy(users repository.UserRepository) *EmailStrategy {
	return &EmailStrategy{users: users}
}

// Method implements Strategy.
func (s *EmailStrategy) Method() string { return MethodEmail }

// CanHandle implements Strategy.
func (s *EmailStrategy) CanHandle(tokenType TokenType) bool {
	return tokenType == TokenTypeEmail
}

// Authenticate implements Strategy.
func (s *EmailStrategy) Authenticate(ctx context.Context, rawToken string) (*domain.User, error) {
	email := strings.TrimSpace(rawToken)
	if !IsEmailToken(email) {
		return nil, emailFailure("Invalid email format")
	}

	draft := &domain.User{
		ExternalID:  newExternalID(MethodEmail),
		Email:       email,
		FirstName:   "Email",
		LastName:    "User",
		Role:        domain.RoleAdmin,
		Status:      domain.UserStatusActive,
		Permissions: []string{},
		Profile:     map[string]any{"source": MethodEmail},
		AuthMethod:  MethodEmail,
	}

	user, err := s.users.FindOrCreateByEmail(ctx, draft)
	if err != nil {
		return nil, emailFailure(err.Error())
	}
	user.AuthMethod = MethodEmail
	return user, nil
}

func emailFailure(reason string) *Error {
	return NewAuthenticationFailed("Email authentication failed: " + reason)
}

// newExternalID synthesizes ids of shape <method>_<timestamp>_<random>,
// with a lowercase alphanumeric random suffix.
func newExternalID(method string) string {
	return fmt.Sprintf("%s_%d_%s", method, time.Now().UnixMilli(), randomSuffix())
}

func randomSuffix() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:10]
}
