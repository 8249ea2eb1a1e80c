package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Pinger reports whether a dependency is reachable.
type Pinger func(ctx context.Context) error

type HealthHandler struct {
	pingDB Pinger
}

func NewHealthHandler(pingDB Pinger) *HealthHandler {
	return &HealthHandler{pingDB: pingDB}
}

// HandleRoot handles GET /
func (h *HealthHandler) HandleRoot(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "Welcome to Career Crafter API",
		"endpoints": []string{
			"POST /api/career-recommendations",
			"POST /api/career-assessment",
			"POST /api/analyze-resume",
			"POST /api/register",
			"GET /api/analyses/:id",
			"GET /api/analyses/:id/report.xlsx",
			"GET /health",
		},
	})
}

// HandleHealth handles GET /health
func (h *HealthHandler) HandleHealth(c *fiber.Ctx) error {
	state, database := "ok", "ok"
	status := fiber.StatusOK

	if h.pingDB != nil {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := h.pingDB(ctx); err != nil {
			state, database = "degraded", "unavailable"
			status = fiber.StatusServiceUnavailable
		}
	}

	return c.Status(status).JSON(fiber.Map{
		"status":   state,
		"database": database,
		"time":     time.Now().UTC().Format(time.RFC3339),
	})
}
