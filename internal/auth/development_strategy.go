package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spec-kit/guard-service/internal/domain"
	"github.com/spec-kit/guard-service/internal/repository"
)

var devFullPermissions = []string{"read", "write", "delete", "admin"}

// DevelopmentStrategy authenticates "dev:<email>" tokens. It is gated by a
// value resolved once at startup (development/test environment or explicit
// override) rather than by ambient process state, and refuses all tokens
// when disabled.
type DevelopmentStrategy struct {
	enabled bool
	users   repository.UserRepository
}

// NewDevelopmentStrategy builds the strategy.
func NewDevelopmentStrategy(enabled bool, users repository.UserRepository) *DevelopmentStrategy {
	return &DevelopmentStrategy{enabled: enabled, users: users}
}

// Method implements Strategy.
func (s *DevelopmentStrategy) Method() string { return MethodDevelopment }

// CanHandle implements Strategy.
func (s *DevelopmentStrategy) CanHandle(tokenType TokenType) bool {
	return tokenType == TokenTypeDevelopment
}

// Authenticate implements Strategy.
func (s *DevelopmentStrategy) Authenticate(ctx context.Context, rawToken string) (*domain.User, error) {
	if !s.enabled {
		return nil, devFailure("Development authentication is not enabled in this environment")
	}

	token := strings.TrimSpace(rawToken)
	if !IsDevelopmentToken(token) {
		return nil, devFailure("Invalid development token format")
	}
	email, ok := ExtractEmailFromDevToken(token)
	if !ok {
		return nil, devFailure("Invalid email format in development token")
	}

	draft := devUserDraft(email)
	user, err := s.users.FindOrCreateByEmail(ctx, draft)
	if err != nil {
		return nil, devFailure(err.Error())
	}
	user.AuthMethod = MethodDevelopment
	return user, nil
}

// devUserDraft derives a role from substrings of the email's local part.
// The rules are ordered: supervisor wins over client, client over agent,
// and anything unmatched (including "admin") provisions an admin.
func devUserDraft(email string) *domain.User {
	local := strings.ToLower(email[:strings.IndexByte(email, '@')])

	draft := &domain.User{
		ExternalID:  newExternalID("dev"),
		Email:       email,
		FirstName:   "Dev",
		Status:      domain.UserStatusActive,
		Permissions: []string{},
		AuthMethod:  MethodDevelopment,
	}

	switch {
	case strings.Contains(local, "supervisor"):
		draft.Role = domain.RoleSupervisor
		draft.LastName = "Supervisor"
		draft.AccessLevel = domain.AccessLevelElevated
		draft.Permissions = append([]string(nil), devFullPermissions...)
		draft.Profile = map[string]any{"source": MethodDevelopment}
	case strings.Contains(local, "client"):
		draft.Role = domain.RoleClient
		draft.LastName = "Client"
		draft.Profile = map[string]any{
			"source":       MethodDevelopment,
			"company_name": "Development Client Co",
		}
	case strings.Contains(local, "agent"):
		draft.Role = domain.RoleAgent
		draft.LastName = "Agent"
		draft.Profile = map[string]any{
			"source":      MethodDevelopment,
			"employee_id": fmt.Sprintf("DEV-%d", time.Now().UnixMilli()%100000),
			"skills":      []string{"development", "patrol"},
		}
	default:
		draft.Role = domain.RoleAdmin
		draft.LastName = "Admin"
		draft.AccessLevel = domain.AccessLevelAdmin
		draft.Permissions = append([]string(nil), devFullPermissions...)
		draft.Profile = map[string]any{"source": MethodDevelopment}
	}
	return draft
}

func devFailure(reason string) *Error {
	return NewAuthenticationFailed("Development authentication failed: " + reason)
}
