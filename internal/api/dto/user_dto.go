package dto

import (
	"time"

	"github.com/spec-kit/guard-service/internal/auth"
	"github.com/spec-kit/guard-service/internal/domain"
)

// UserResponse shapes an authenticated user for API responses.
type UserResponse struct {
	ID          string         `json:"id"`
	ExternalID  string         `json:"externalId"`
	Email       string         `json:"email"`
	FirstName   string         `json:"firstName"`
	LastName    string         `json:"lastName"`
	Role        string         `json:"role"`
	Status      string         `json:"status"`
	Permissions []string       `json:"permissions"`
	AccessLevel string         `json:"accessLevel,omitempty"`
	Profile     map[string]any `json:"profileData,omitempty"`
	AuthMethod  string         `json:"authenticationMethod"`
}

// NewUserResponse maps a domain user.
func NewUserResponse(user *domain.User) UserResponse {
	permissions := user.Permissions
	if permissions == nil {
		permissions = []string{}
	}
	return UserResponse{
		ID:          user.ID,
		ExternalID:  user.ExternalID,
		Email:       user.Email,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		Role:        string(user.Role),
		Status:      string(user.Status),
		Permissions: permissions,
		AccessLevel: string(user.AccessLevel),
		Profile:     user.Profile,
		AuthMethod:  user.AuthMethod,
	}
}

// AuthContextResponse summarizes the request's authentication context.
// The raw token is never part of the response.
type AuthContextResponse struct {
	SessionID       string    `json:"sessionId"`
	TokenType       string    `json:"tokenType"`
	Method          string    `json:"authenticationMethod"`
	AuthenticatedAt time.Time `json:"authenticatedAt"`
}

// NewAuthContextResponse maps an authentication context.
func NewAuthContextResponse(authCtx *auth.AuthContext) AuthContextResponse {
	return AuthContextResponse{
		SessionID:       authCtx.SessionID,
		TokenType:       string(authCtx.TokenType),
		Method:          authCtx.Method,
		AuthenticatedAt: authCtx.AuthenticatedAt,
	}
}
