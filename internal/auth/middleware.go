package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/guard-service/internal/domain"
)

const (
	userLocalKey    = "auth_user"
	contextLocalKey = "auth_context"
)

// RequireAuth authenticates the request and attaches the user and
// authentication context for downstream handlers. Failures terminate the
// chain with the standard error envelope.
func RequireAuth(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, authCtx, err := svc.AuthenticateRequest(c.UserContext(), c.Get(fiber.HeaderAuthorization))
		if err != nil {
			return respondAuthError(c, err)
		}
		c.Locals(userLocalKey, user)
		c.Locals(contextLocalKey, authCtx)
		return c.Next()
	}
}

// OptionalAuth attempts authentication and attaches the user on success.
// It never blocks the request: failures leave the request unauthenticated
// and continue the chain.
func OptionalAuth(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, authCtx, err := svc.AuthenticateRequest(c.UserContext(), c.Get(fiber.HeaderAuthorization))
		if err == nil {
			c.Locals(userLocalKey, user)
			c.Locals(contextLocalKey, authCtx)
		}
		return c.Next()
	}
}

// RoleOption refines a RequireRole check beyond role membership.
type RoleOption func(*roleRequirements)

type roleRequirements struct {
	permissions    []string
	minAccessLevel domain.AccessLevel
}

// WithPermissions additionally requires every named permission.
func WithPermissions(permissions ...string) RoleOption {
	return func(r *roleRequirements) {
		r.permissions = append(r.permissions, permissions...)
	}
}

// WithMinAccessLevel additionally requires the user's access level to rank
// at or above the given level.
func WithMinAccessLevel(level domain.AccessLevel) RoleOption {
	return func(r *roleRequirements) {
		r.minAccessLevel = level
	}
}

// RequireRole enforces role membership plus any extra requirements. It must
// run after RequireAuth: an absent user yields AUTHENTICATION_REQUIRED.
func RequireRole(roles []domain.Role, opts ...RoleOption) fiber.Handler {
	reqs := roleRequirements{}
	for _, opt := range opts {
		opt(&reqs)
	}
	allowed := make(map[domain.Role]struct{}, len(roles))
	names := make([]string, 0, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
		names = append(names, string(role))
	}

	return func(c *fiber.Ctx) error {
		user, ok := UserFromContext(c)
		if !ok {
			return respondAuthError(c, NewAuthenticationRequired())
		}
		if _, exists := allowed[user.Role]; !exists {
			return respondAuthError(c, newForbidden(CodeInsufficientRole,
				fmt.Sprintf("Access requires one of roles: %s", strings.Join(names, ", "))))
		}
		for _, permission := range reqs.permissions {
			if !user.HasPermission(permission) {
				return respondAuthError(c, newForbidden(CodeInsufficientPermissions,
					fmt.Sprintf("Missing required permission: %s", permission)))
			}
		}
		if reqs.minAccessLevel != "" && !user.AccessLevel.AtLeast(reqs.minAccessLevel) {
			return respondAuthError(c, newForbidden(CodeInsufficientAccessLevel,
				fmt.Sprintf("Access requires %s access level", reqs.minAccessLevel)))
		}
		return c.Next()
	}
}

// RequireAdmin restricts the route to ADMIN users.
func RequireAdmin(opts ...RoleOption) fiber.Handler {
	return RequireRole([]domain.Role{domain.RoleAdmin}, opts...)
}

// RequireClient restricts the route to CLIENT users.
func RequireClient(opts ...RoleOption) fiber.Handler {
	return RequireRole([]domain.Role{domain.RoleClient}, opts...)
}

// UserFromContext retrieves the authenticated user attached by RequireAuth
// or OptionalAuth.
func UserFromContext(c *fiber.Ctx) (*domain.User, bool) {
	user, ok := c.Locals(userLocalKey).(*domain.User)
	return user, ok
}

// AuthFromContext retrieves the request's authentication context.
func AuthFromContext(c *fiber.Ctx) (*AuthContext, bool) {
	authCtx, ok := c.Locals(contextLocalKey).(*AuthContext)
	return authCtx, ok
}

func respondAuthError(c *fiber.Ctx, err error) error {
	var authErr *Error
	if !errors.As(err, &authErr) {
		authErr = NewAuthenticationFailed("Authentication failed")
	}
	return c.Status(authErr.StatusCode).JSON(fiber.Map{
		"success": false,
		"error": fiber.Map{
			"code":    authErr.Code,
			"message": authErr.Message,
		},
	})
}
