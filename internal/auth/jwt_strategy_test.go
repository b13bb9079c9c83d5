package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/guard-service/internal/auth"
	"github.com/spec-kit/guard-service/internal/domain"
	"github.com/spec-kit/guard-service/internal/identity"
	"github.com/spec-kit/guard-service/internal/repository"
)

const validSecretKey = "sk_test_abcdefghijklmnopqrstuvwxyz"

type stubVerifier struct {
	claims *identity.Claims
	err    error
}

func (s *stubVerifier) Verify(_ context.Context, _ string) (*identity.Claims, error) {
	return s.claims, s.err
}

func TestJWTStrategyHandlesOnlyJWTTokens(t *testing.T) {
	strategy := auth.NewJWTStrategy(validSecretKey, &stubVerifier{}, nil)

	assert.True(t, strategy.CanHandle(auth.TokenTypeJWT))
	assert.False(t, strategy.CanHandle(auth.TokenTypeEmail))
	assert.False(t, strategy.CanHandle(auth.TokenTypeDevelopment))
	assert.Equal(t, "jwt", strategy.Method())
}

func TestJWTStrategyRejectsInvalidConfiguration(t *testing.T) {
	for _, secret := range []string{"", "sk_short", "pk_test_abcdefghijklmnopqrstuvwxyz"} {
		strategy := auth.NewJWTStrategy(secret, &stubVerifier{}, nil)
		_, err := strategy.Authenticate(context.Background(), "a.b.c")
		require.Error(t, err, "secret %q", secret)
		assert.Equal(t, "JWT authentication failed: Clerk configuration invalid", err.Error())
	}
}

func TestJWTStrategyWrapsVerifierRejection(t *testing.T) {
	strategy := auth.NewJWTStrategy(validSecretKey, &stubVerifier{err: errors.New("token is expired")}, nil)

	_, err := strategy.Authenticate(context.Background(), "a.b.c")
	require.Error(t, err)

	var authErr *auth.Error
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, auth.CodeAuthenticationFailed, authErr.Code)
	assert.Equal(t, "JWT authentication failed: token is expired", authErr.Message)
}

func TestJWTStrategyPrefersStoreRecord(t *testing.T) {
	users := repository.NewMemoryUserRepository()
	existing := &domain.User{
		ExternalID: "user_abc",
		Email:      "chief@example.com",
		Role:       domain.RoleSupervisor,
		Status:     domain.UserStatusActive,
	}
	require.NoError(t, users.Create(context.Background(), existing))

	verifier := &stubVerifier{claims: &identity.Claims{
		Subject: "user_abc",
		Email:   "chief@example.com",
		Role:    "agent",
	}}
	strategy := auth.NewJWTStrategy(validSecretKey, verifier, users)

	user, err := strategy.Authenticate(context.Background(), "a.b.c")
	require.NoError(t, err)
	assert.Equal(t, existing.ID, user.ID)
	assert.Equal(t, domain.RoleSupervisor, user.Role)
	assert.Equal(t, "jwt", user.AuthMethod)
}

func TestJWTStrategyFallsBackToClaims(t *testing.T) {
	users := repository.NewMemoryUserRepository()
	verifier := &stubVerifier{claims: &identity.Claims{
		Subject:   "user_new",
		Email:     "new@example.com",
		FirstName: "New",
		LastName:  "Hire",
		Role:      "agent",
	}}
	strategy := auth.NewJWTStrategy(validSecretKey, verifier, users)

	user, err := strategy.Authenticate(context.Background(), "a.b.c")
	require.NoError(t, err)
	assert.Equal(t, "user_new", user.ExternalID)
	assert.Equal(t, domain.RoleAgent, user.Role)
	assert.Equal(t, domain.UserStatusActive, user.Status)
	// No local user is created for provider-verified identities.
	_, storeErr := users.GetByEmail(context.Background(), "new@example.com")
	assert.ErrorIs(t, storeErr, repository.ErrNotFound)
}

func TestJWTStrategyUnknownClaimRoleDefaultsToAdmin(t *testing.T) {
	verifier := &stubVerifier{claims: &identity.Claims{Subject: "user_x", Email: "x@example.com", Role: "wizard"}}
	strategy := auth.NewJWTStrategy(validSecretKey, verifier, nil)

	user, err := strategy.Authenticate(context.Background(), "a.b.c")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, user.Role)
}
