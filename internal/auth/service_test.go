package auth_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/guard-service/internal/auth"
	"github.com/spec-kit/guard-service/internal/identity"
	"github.com/spec-kit/guard-service/internal/repository"
)

func newTestService(logger *zap.Logger) *auth.Service {
	users := repository.NewMemoryUserRepository()
	factory := auth.NewStrategyFactory(
		auth.NewJWTStrategy(validSecretKey, &stubVerifier{err: errors.New("signature is invalid")}, users),
		auth.NewEmailStrategy(users),
		auth.NewDevelopmentStrategy(true, users),
	)
	return auth.NewService(factory, logger, nil, nil)
}

func TestAuthenticateRequestMissingHeader(t *testing.T) {
	svc := newTestService(zap.NewNop())

	for _, header := range []string{"", "Bearer", "Bearer ", "bearer abc", "Token abc", "Basic dXNlcg=="} {
		_, _, err := svc.AuthenticateRequest(context.Background(), header)
		require.Error(t, err, "header %q", header)

		var authErr *auth.Error
		require.ErrorAs(t, err, &authErr)
		assert.Equal(t, auth.CodeTokenRequired, authErr.Code, "header %q", header)
		assert.Equal(t, "Authentication token required", authErr.Message)
		assert.Equal(t, 401, authErr.StatusCode)
	}
}

func TestAuthenticateRequestWhitespaceTokenIsPresentButInvalid(t *testing.T) {
	svc := newTestService(zap.NewNop())

	// A whitespace-only token is not "missing": it reaches the JWT
	// strategy and fails verification there.
	_, _, err := svc.AuthenticateRequest(context.Background(), "Bearer    ")
	require.Error(t, err)

	var authErr *auth.Error
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, auth.CodeAuthenticationFailed, authErr.Code)
}

func TestAuthenticateRequestEmailToken(t *testing.T) {
	svc := newTestService(zap.NewNop())

	user, authCtx, err := svc.AuthenticateRequest(context.Background(), "Bearer ops@example.com")
	require.NoError(t, err)

	assert.Equal(t, "ops@example.com", user.Email)
	assert.Equal(t, user.ID, authCtx.UserID)
	assert.Equal(t, auth.TokenTypeEmail, authCtx.TokenType)
	assert.Equal(t, "email", authCtx.Method)
	assert.Regexp(t, `^email_\d+_[a-z0-9]+$`, authCtx.SessionID)
	assert.False(t, authCtx.AuthenticatedAt.IsZero())
	assert.Equal(t, user.ExternalID, authCtx.Claims["sub"])
	assert.Equal(t, "ops@example.com", authCtx.Claims["email"])
}

func TestAuthenticateRequestClaimsOnlyUserGetsExternalID(t *testing.T) {
	// A JWT user assembled from claims alone has no store record and no
	// local ID; the context must still identify them via the external ID.
	verifier := &stubVerifier{claims: &identity.Claims{
		Subject: "user_ext_only",
		Email:   "ext@example.com",
		Role:    "agent",
	}}
	factory := auth.NewStrategyFactory(
		auth.NewJWTStrategy(validSecretKey, verifier, repository.NewMemoryUserRepository()),
	)
	svc := auth.NewService(factory, zap.NewNop(), nil, nil)

	user, authCtx, err := svc.AuthenticateRequest(context.Background(), "Bearer a.b.c")
	require.NoError(t, err)
	assert.Empty(t, user.ID)
	assert.Equal(t, "user_ext_only", authCtx.UserID)
}

func TestAuthenticateRequestSessionIDsAreUnique(t *testing.T) {
	svc := newTestService(zap.NewNop())
	ctx := context.Background()

	_, first, err := svc.AuthenticateRequest(ctx, "Bearer ops@example.com")
	require.NoError(t, err)
	_, second, err := svc.AuthenticateRequest(ctx, "Bearer ops@example.com")
	require.NoError(t, err)

	assert.NotEqual(t, first.SessionID, second.SessionID)
}

func TestAuthenticateRequestPropagatesStrategyMessage(t *testing.T) {
	svc := newTestService(zap.NewNop())

	_, _, err := svc.AuthenticateRequest(context.Background(), "Bearer a.b.c")
	require.Error(t, err)
	assert.Equal(t, "JWT authentication failed: signature is invalid", err.Error())
}

func TestAuthenticateRequestNeverLogsRawToken(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	svc := newTestService(zap.New(core))
	ctx := context.Background()

	longJWT := strings.Repeat("a", 40) + "." + strings.Repeat("b", 40) + "." + strings.Repeat("c", 18)
	devToken := "dev:supervisor@example.com"
	longEmail := "averyveryverylonglocalpart@example.com"

	_, _, _ = svc.AuthenticateRequest(ctx, "Bearer "+longJWT)
	_, _, err := svc.AuthenticateRequest(ctx, "Bearer "+devToken)
	require.NoError(t, err)
	// Failure path for the email shape: the masked description is all that
	// may appear at error level.
	_, _, _ = svc.AuthenticateRequest(ctx, "Bearer "+longEmail+"..")

	for _, entry := range logs.All() {
		assert.NotContains(t, entry.Message, longJWT)
		assert.NotContains(t, entry.Message, devToken)
		for _, field := range entry.Context {
			if field.Type != zapcore.StringType {
				continue
			}
			assert.NotContains(t, field.String, longJWT, "field %s", field.Key)
			assert.NotContains(t, field.String, devToken, "field %s", field.Key)
		}
	}
}

func TestAuthenticateRequestNoStrategyRegistered(t *testing.T) {
	svc := auth.NewService(auth.NewStrategyFactory(), zap.NewNop(), nil, nil)

	_, _, err := svc.AuthenticateRequest(context.Background(), "Bearer ops@example.com")
	require.Error(t, err)

	var authErr *auth.Error
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, auth.CodeAuthenticationFailed, authErr.Code)
}
