package identity

import "context"

// Claims carries the identity-provider claims the gateway cares about.
// Subject and Email are always populated on a successful verification.
type Claims struct {
	Subject   string
	Email     string
	FirstName string
	LastName  string
	Role      string
	Raw       map[string]any
}

// Verifier checks a raw bearer token against an identity provider and
// returns its claims. Implementations must reject expired, malformed, or
// badly signed tokens with an error.
type Verifier interface {
	Verify(ctx context.Context, rawToken string) (*Claims, error)
}
