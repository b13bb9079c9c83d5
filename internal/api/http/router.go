package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/guard-service/internal/api/http/handlers"
	"github.com/spec-kit/guard-service/internal/auth"
	"github.com/spec-kit/guard-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health      *handlers.HealthHandler
	Profile     *handlers.ProfileHandler
	Admin       *handlers.AdminHandler
	Client      *handlers.ClientHandler
	AuthService *auth.Service
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api/v1")

	api.Get("/status", auth.OptionalAuth(cfg.AuthService), cfg.Profile.Status)

	authenticated := api.Group("", auth.RequireAuth(cfg.AuthService))
	authenticated.Get("/me", cfg.Profile.Me)
	authenticated.Get("/me/permissions", cfg.Profile.Permissions)

	admin := authenticated.Group("/admin", auth.RequireAdmin())
	admin.Get("/auth/metrics", cfg.Admin.AuthMetrics)
	admin.Get("/auth/strategies", auth.RequireRole(
		[]domain.Role{domain.RoleAdmin},
		auth.WithMinAccessLevel(domain.AccessLevelAdmin),
	), cfg.Admin.Strategies)

	client := authenticated.Group("/client", auth.RequireClient())
	client.Get("/portal", cfg.Client.Portal)
}
