package auth

import (
	"fmt"
	"strings"
)

// DevTokenPrefix marks development tokens, e.g. "dev:agent@example.com".
const DevTokenPrefix = "dev:"

// IsJWTToken reports whether the value has the three-segment JWT shape.
// It checks shape only; signature and claims are the verifier's job.
func IsJWTToken(s string) bool {
	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return false
	}
	for _, part := range parts {
		if part == "" {
			return false
		}
	}
	return true
}

// IsEmailToken reports whether the value matches a conservative email
// grammar: a local part, a single "@", and a domain with at least one dot.
// Consecutive dots and leading/trailing dots are rejected in both parts.
func IsEmailToken(s string) bool {
	at := strings.IndexByte(s, '@')
	if at <= 0 || at != strings.LastIndexByte(s, '@') {
		return false
	}
	local, domain := s[:at], s[at+1:]
	return validEmailPart(local, false) && validEmailPart(domain, true)
}

func validEmailPart(part string, isDomain bool) bool {
	if part == "" || strings.HasPrefix(part, ".") || strings.HasSuffix(part, ".") {
		return false
	}
	if strings.Contains(part, "..") {
		return false
	}
	dotted := false
	for _, r := range part {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '.':
			dotted = true
		case r == '-':
		case !isDomain && (r == '_' || r == '%' || r == '+'):
		default:
			return false
		}
	}
	if isDomain && !dotted {
		return false
	}
	return true
}

// IsDevelopmentToken reports whether the value carries the dev prefix.
// The remainder is not validated here; email validity is checked separately.
func IsDevelopmentToken(s string) bool {
	return strings.HasPrefix(s, DevTokenPrefix)
}

// ExtractEmailFromDevToken returns the email embedded in a development
// token. ok is false when the prefix is missing or the remainder is not a
// valid email.
func ExtractEmailFromDevToken(s string) (string, bool) {
	if !IsDevelopmentToken(s) {
		return "", false
	}
	email := s[len(DevTokenPrefix):]
	if !IsEmailToken(email) {
		return "", false
	}
	return email, true
}

// TokenDescription produces a masked, log-safe summary of a token. The full
// token never appears; emails keep at most two characters of the local part.
func TokenDescription(s string) string {
	if s == "" {
		return "invalid_token"
	}
	switch {
	case IsDevelopmentToken(s):
		if email, ok := ExtractEmailFromDevToken(s); ok {
			return fmt.Sprintf("dev_token(%s)", email)
		}
		return fmt.Sprintf("dev_token(invalid,%d_chars)", len(s))
	case IsJWTToken(s):
		return fmt.Sprintf("jwt_token(%d_chars)", len(s))
	case IsEmailToken(s):
		at := strings.IndexByte(s, '@')
		local, domain := s[:at], s[at+1:]
		if len(local) > 2 {
			local = local[:2]
		}
		return fmt.Sprintf("email_token(%s***@%s)", local, domain)
	default:
		return fmt.Sprintf("unknown_token(%d_chars)", len(s))
	}
}

// ValidateTokenFormat re-checks a token against one specific type's
// predicate. Used for defensive assertions before strategy work begins.
func ValidateTokenFormat(s string, expected TokenType) bool {
	switch expected {
	case TokenTypeJWT:
		return IsJWTToken(s)
	case TokenTypeEmail:
		return IsEmailToken(s)
	case TokenTypeDevelopment:
		return IsDevelopmentToken(s)
	default:
		return false
	}
}
