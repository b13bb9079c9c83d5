package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/guard-service/internal/auth"
)

func TestDetectTokenTypeFallsBackToJWT(t *testing.T) {
	for _, token := range []string{"", " ", "\t", "   \n  "} {
		assert.Equal(t, auth.TokenTypeJWT, auth.DetectTokenType(token), "token %q", token)
	}
}

func TestDetectTokenTypeDevelopment(t *testing.T) {
	// The dev prefix wins regardless of whether the remainder is a valid
	// email; the strategy validates that part.
	assert.Equal(t, auth.TokenTypeDevelopment, auth.DetectTokenType("dev:admin@example.com"))
	assert.Equal(t, auth.TokenTypeDevelopment, auth.DetectTokenType("dev:not-an-email"))
	assert.Equal(t, auth.TokenTypeDevelopment, auth.DetectTokenType("  dev:agent@example.com  "))
}

func TestDetectTokenTypeEmail(t *testing.T) {
	assert.Equal(t, auth.TokenTypeEmail, auth.DetectTokenType("admin@example.com"))
	assert.Equal(t, auth.TokenTypeEmail, auth.DetectTokenType("  client@example.com\n"))
}

func TestDetectTokenTypeJWTDefault(t *testing.T) {
	assert.Equal(t, auth.TokenTypeJWT, auth.DetectTokenType("aaa.bbb.ccc"))
	assert.Equal(t, auth.TokenTypeJWT, auth.DetectTokenType("not a token at all"))
	assert.Equal(t, auth.TokenTypeJWT, auth.DetectTokenType("admin@invalid"))
}
