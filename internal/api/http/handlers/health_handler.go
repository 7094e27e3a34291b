package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/easyclick/support-desk/internal/storage"
	"github.com/easyclick/support-desk/internal/store"
)

// HealthHandler responds to liveness and readiness probes.
type HealthHandler struct {
	serviceName string
	version     string
	medium      storage.Medium
	tickets     *store.TicketStore
}

// NewHealthHandler returns a new handler instance. A nil medium marks an
// ephemeral session and is reported as such rather than failing readiness.
func NewHealthHandler(serviceName, version string, medium storage.Medium, tickets *store.TicketStore) *HealthHandler {
	return &HealthHandler{serviceName: serviceName, version: version, medium: medium, tickets: tickets}
}

// Live reports service liveness.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "alive",
		"service": h.serviceName,
		"version": h.version,
	})
}

// Ready reports service readiness by checking the persistence medium and the
// store's hydration state.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	depStatus := fiber.Map{}
	ready := true

	if h.medium == nil {
		depStatus["storage"] = "ephemeral"
	} else if err := h.medium.Ping(ctx); err != nil {
		depStatus["storage"] = err.Error()
		ready = false
	} else {
		depStatus["storage"] = "ok"
	}

	if h.tickets.State() != store.StateReady {
		depStatus["store"] = "hydrating"
		ready = false
	} else {
		depStatus["store"] = "ready"
	}

	if ready {
		return c.JSON(fiber.Map{
			"status":       "ready",
			"dependencies": depStatus,
		})
	}

	return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    "DEPENDENCY_UNAVAILABLE",
			"message": "one or more dependencies unavailable",
			"details": depStatus,
		},
	})
}
