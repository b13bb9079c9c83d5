package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/guard-service/internal/auth"
	"github.com/spec-kit/guard-service/internal/domain"
	"github.com/spec-kit/guard-service/internal/repository"
)

func newTestFactory() *auth.StrategyFactory {
	users := repository.NewMemoryUserRepository()
	return auth.NewStrategyFactory(
		auth.NewJWTStrategy(validSecretKey, &stubVerifier{}, users),
		auth.NewEmailStrategy(users),
		auth.NewDevelopmentStrategy(true, users),
	)
}

func TestFactoryDispatchPartition(t *testing.T) {
	factory := newTestFactory()

	for tokenType, method := range map[auth.TokenType]string{
		auth.TokenTypeJWT:         "jwt",
		auth.TokenTypeEmail:       "email",
		auth.TokenTypeDevelopment: "development",
	} {
		strategy := factory.Strategy(tokenType)
		require.NotNil(t, strategy, "token type %s", tokenType)
		assert.Equal(t, method, strategy.Method())
	}
}

func TestFactoryUnknownTypeReturnsNil(t *testing.T) {
	factory := newTestFactory()
	assert.Nil(t, factory.Strategy(auth.TokenType("SAML")))
	assert.Nil(t, factory.Strategy(auth.TokenType("")))
}

func TestFactoryAllKeepsOrderAndIdentity(t *testing.T) {
	factory := newTestFactory()

	first := factory.All()
	second := factory.All()
	require.Len(t, first, 3)
	assert.Equal(t, "jwt", first[0].Method())
	assert.Equal(t, "email", first[1].Method())
	assert.Equal(t, "development", first[2].Method())
	for i := range first {
		assert.Same(t, first[i], second[i])
	}
}

func TestFactoryAddAndRemove(t *testing.T) {
	factory := newTestFactory()
	users := repository.NewMemoryUserRepository()

	// Duplicate email strategies; Remove drops them all.
	factory.Add(auth.NewEmailStrategy(users))
	require.Len(t, factory.All(), 4)

	factory.Remove("email")
	remaining := factory.All()
	require.Len(t, remaining, 2)
	for _, s := range remaining {
		assert.NotEqual(t, "email", s.Method())
	}
	assert.Nil(t, factory.Strategy(auth.TokenTypeEmail))
}

func TestFactoryRemovedStrategyNoLongerAuthenticates(t *testing.T) {
	factory := newTestFactory()
	factory.Remove("development")

	strategy := factory.Strategy(auth.TokenTypeDevelopment)
	assert.Nil(t, strategy)

	// The other strategies still work.
	email := factory.Strategy(auth.TokenTypeEmail)
	require.NotNil(t, email)
	user, err := email.Authenticate(context.Background(), "ops@example.com")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, user.Role)
}
