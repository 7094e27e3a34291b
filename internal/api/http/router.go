package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/easyclick/support-desk/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health  *handlers.HealthHandler
	Tickets *handlers.TicketsHandler
	Portal  *handlers.PortalHandler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	agent := app.Group("/agent")
	agent.Get("/tickets", cfg.Tickets.ListTickets)
	agent.Post("/tickets", cfg.Tickets.CreateTicket)
	agent.Get("/tickets/counts", cfg.Tickets.Counts)
	agent.Get("/tickets/:id", cfg.Tickets.GetTicket)
	agent.Patch("/tickets/:id/status", cfg.Tickets.UpdateStatus)
	agent.Patch("/tickets/:id/priority", cfg.Tickets.UpdatePriority)
	agent.Patch("/tickets/:id/assignee", cfg.Tickets.Assign)
	agent.Post("/tickets/:id/comments", cfg.Tickets.AddComment)

	portal := app.Group("/portal")
	portal.Post("/tickets", cfg.Portal.Submit)
	portal.Get("/tickets/:publicId", cfg.Portal.Status)
	portal.Post("/tickets/:publicId/comments", cfg.Portal.AddComment)
}
