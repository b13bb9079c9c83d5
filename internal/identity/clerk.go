package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"
)

const (
	clerkSecretKeyPrefix = "sk_"
	clerkSecretKeyMinLen = 20
)

// ValidateClerkSecretKey checks the syntactic shape of a Clerk secret key:
// non-empty, provider prefix, minimum length. It says nothing about whether
// the key is actually accepted by Clerk.
func ValidateClerkSecretKey(key string) bool {
	return strings.HasPrefix(key, clerkSecretKeyPrefix) && len(key) >= clerkSecretKeyMinLen
}

// ClerkConfig configures the Clerk-backed verifier.
type ClerkConfig struct {
	SecretKey string
	// JWKSURL is the instance JWKS endpoint, e.g.
	// https://example.clerk.accounts.dev/.well-known/jwks.json
	JWKSURL         string
	RefreshInterval time.Duration
}

// ClerkVerifier validates Clerk session tokens (RS256) against the
// instance JWK Set. The key set is fetched lazily on first use and
// refreshed in the background.
type ClerkVerifier struct {
	cfg ClerkConfig

	mu   sync.Mutex
	jwks *keyfunc.JWKS
}

// NewClerkVerifier builds a verifier. JWKS fetching is deferred until the
// first Verify call so construction never touches the network.
func NewClerkVerifier(cfg ClerkConfig) *ClerkVerifier {
	if cfg.RefreshInterval <= 0 {
		cfg.RefreshInterval = time.Hour
	}
	return &ClerkVerifier{cfg: cfg}
}

// keySet fetches the JWK Set on first use. The keyfunc options deliberately
// carry no context: the background refresh goroutine must outlive the request
// that happened to trigger the fetch, or key rotation stops working once that
// request's context is cancelled.
func (v *ClerkVerifier) keySet() (*keyfunc.JWKS, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.jwks != nil {
		return v.jwks, nil
	}
	if v.cfg.JWKSURL == "" {
		return nil, errors.New("JWKS URL not configured")
	}
	jwks, err := keyfunc.Get(v.cfg.JWKSURL, keyfunc.Options{
		RefreshInterval:   v.cfg.RefreshInterval,
		RefreshUnknownKID: true,
	})
	if err != nil {
		return nil, fmt.Errorf("fetch JWKS: %w", err)
	}
	v.jwks = jwks
	return jwks, nil
}

// Verify parses and validates the token signature and registered claims,
// then maps Clerk's session-token claims.
func (v *ClerkVerifier) Verify(_ context.Context, rawToken string) (*Claims, error) {
	jwks, err := v.keySet()
	if err != nil {
		return nil, err
	}

	parsed, err := jwt.Parse(rawToken, jwks.Keyfunc,
		jwt.WithValidMethods([]string{"RS256"}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, err
	}

	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token claims")
	}

	claims := &Claims{
		Subject:   stringClaim(mapClaims, "sub"),
		Email:     stringClaim(mapClaims, "email"),
		FirstName: stringClaim(mapClaims, "first_name"),
		LastName:  stringClaim(mapClaims, "last_name"),
		Raw:       map[string]any(mapClaims),
	}
	if claims.Subject == "" {
		return nil, errors.New("token missing sub claim")
	}
	if meta, ok := mapClaims["public_metadata"].(map[string]any); ok {
		if role, ok := meta["role"].(string); ok {
			claims.Role = role
		}
	}
	return claims, nil
}

func stringClaim(claims jwt.MapClaims, key string) string {
	if s, ok := claims[key].(string); ok {
		return s
	}
	return ""
}
