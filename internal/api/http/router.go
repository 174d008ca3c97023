package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fixworks/repairdesk/internal/api/http/handlers"
	"github.com/fixworks/repairdesk/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Identity       *handlers.IdentityHandler
	Tickets        *handlers.TicketsHandler
	AdminTickets   *handlers.AdminTicketsHandler
	Roles          *handlers.RolesHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes. Every route past the health probes runs
// the principal resolver; role and ownership checks live in the services.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Identity.Register)
	authGroup.Post("/login", cfg.Identity.Login)
	authGroup.Get("/me", cfg.AuthMiddleware.Resolve, auth.RequireIdentity(), cfg.Identity.Me)

	api := app.Group("", cfg.AuthMiddleware.Resolve)

	api.Get("/roles/me", cfg.Roles.GetCallerRole)

	tickets := api.Group("/tickets")
	tickets.Post("/", cfg.Tickets.CreateTicket)
	tickets.Get("/mine", cfg.Tickets.ListMyTickets)
	tickets.Get("/:id", cfg.Tickets.GetTicket)

	admin := api.Group("/admin")
	admin.Get("/tickets", cfg.AdminTickets.ListAllTickets)
	admin.Patch("/tickets/:id/status", cfg.AdminTickets.UpdateStatus)
	admin.Post("/roles", cfg.Roles.AssignRole)
}
