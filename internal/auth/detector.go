package auth

import "strings"

// TokenType classifies a raw bearer token before strategy dispatch.
type TokenType string

const (
	TokenTypeJWT         TokenType = "JWT"
	TokenTypeEmail       TokenType = "EMAIL"
	TokenTypeDevelopment TokenType = "DEVELOPMENT"
)

// DetectTokenType decides which strategy family a raw token belongs to.
// Classification never fails: empty or unrecognizable input falls back to
// JWT so that verification, not detection, produces the error. Surrounding
// whitespace is tolerated for classification; strategies receive the
// original token unchanged.
func DetectTokenType(raw string) TokenType {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return TokenTypeJWT
	}
	if IsDevelopmentToken(trimmed) {
		return TokenTypeDevelopment
	}
	if IsEmailToken(trimmed) {
		return TokenTypeEmail
	}
	return TokenTypeJWT
}
