package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/guard-service/internal/auth"
	"github.com/spec-kit/guard-service/internal/observability"
)

// AdminHandler exposes gateway introspection for administrators.
type AdminHandler struct {
	authService *auth.Service
	metrics     *observability.Metrics
}

// NewAdminHandler constructs handler.
func NewAdminHandler(authService *auth.Service, metrics *observability.Metrics) *AdminHandler {
	return &AdminHandler{authService: authService, metrics: metrics}
}

// AuthMetrics handles GET /api/v1/admin/auth/metrics.
func (h *AdminHandler) AuthMetrics(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"data":    h.metrics.Snapshot(),
	})
}

// Strategies handles GET /api/v1/admin/auth/strategies, listing the
// registered strategies in dispatch order.
func (h *AdminHandler) Strategies(c *fiber.Ctx) error {
	strategies := h.authService.Factory().All()
	methods := make([]string, 0, len(strategies))
	for _, s := range strategies {
		methods = append(methods, s.Method())
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    fiber.Map{"strategies": methods},
	})
}
