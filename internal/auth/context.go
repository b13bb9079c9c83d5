package auth

import (
	"fmt"
	"time"
)

// AuthContext describes how and when a request was authenticated. One is
// built fresh per successful authentication and dropped when request
// handling ends; it is never cached or shared across requests.
type AuthContext struct {
	UserID    string
	SessionID string
	// Claims always contains at least "sub" and "email".
	Claims map[string]any
	// Token holds the raw credential transiently in-process. It must never
	// be logged or serialized into a response.
	Token           string
	TokenType       TokenType
	Method          string
	AuthenticatedAt time.Time
}

// newSessionID produces a per-authentication id of shape
// <method>_<timestamp>_<random>.
func newSessionID(method string) string {
	return fmt.Sprintf("%s_%d_%s", method, time.Now().UnixMilli(), randomSuffix())
}
