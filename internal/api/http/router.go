package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/spec-kit/maintenance-service/internal/api/http/handlers"
	"github.com/spec-kit/maintenance-service/internal/auth"
	"github.com/spec-kit/maintenance-service/internal/domain"
	"github.com/spec-kit/maintenance-service/internal/observability"
)

// Route declares one endpoint and who may call it. With Authenticated false and no Roles the
// route is public; Authenticated alone admits any signed-in caller; Roles restricts further.
type Route struct {
	Method        string
	Path          string
	Authenticated bool
	Roles         []string
	Handler       fiber.Handler
}

// guard returns the authorization handler for the route, or nil for public routes.
func (r Route) guard() fiber.Handler {
	switch {
	case len(r.Roles) > 0:
		return auth.RequireRoles(r.Roles...)
	case r.Authenticated:
		return auth.RequireAnyRole()
	}
	return nil
}

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Tickets        *handlers.TicketsHandler
	TicketEvents   *handlers.TicketEventsHandler
	Users          *handlers.UsersHandler
	Roles          *handlers.RolesHandler
	Locations      *handlers.LocationsHandler
	RepairTypes    *handlers.RepairTypesHandler
	Surveys        *handlers.SurveysHandler
	Attachments    *handlers.AttachmentsHandler
	Uploads        *handlers.UploadHandler
	SLAMonitor     *handlers.SLAMonitorHandler
	AuthMiddleware *auth.AuthMiddleware
	Metrics        *observability.Metrics
	UploadDir      string
}

var (
	adminOnly       = []string{domain.RoleAdmin}
	supervisors     = []string{domain.RoleSupervisor, domain.RoleAdmin}
	ticketEditors   = []string{domain.RoleTechnician, domain.RoleSupervisor, domain.RoleAdmin}
	surveyReporters = []string{domain.RoleUser, domain.RoleAdmin}
)

// Routes returns the route table.
func Routes(cfg RouteConfig) []Route {
	const signedIn = true
	routes := []Route{
		{Method: fiber.MethodGet, Path: "/health/live", Handler: cfg.Health.Live},
		{Method: fiber.MethodGet, Path: "/health/ready", Handler: cfg.Health.Ready},

		{Method: fiber.MethodPost, Path: "/auth/register", Handler: cfg.Auth.Register},
		{Method: fiber.MethodPost, Path: "/auth/login", Handler: cfg.Auth.Login},
		{Method: fiber.MethodPost, Path: "/auth/logout", Handler: cfg.Auth.Logout},
		{Method: fiber.MethodGet, Path: "/auth/me", Authenticated: signedIn, Handler: cfg.Auth.Me},

		{Method: fiber.MethodGet, Path: "/tickets", Authenticated: signedIn, Handler: cfg.Tickets.List},
		{Method: fiber.MethodGet, Path: "/tickets/:id", Authenticated: signedIn, Handler: cfg.Tickets.Get},
		{Method: fiber.MethodGet, Path: "/tickets/:id/sla", Authenticated: signedIn, Handler: cfg.Tickets.SLA},
		{Method: fiber.MethodGet, Path: "/tickets/:id/events", Authenticated: signedIn, Handler: cfg.Tickets.Events},
		{Method: fiber.MethodPost, Path: "/tickets", Authenticated: signedIn, Handler: cfg.Tickets.Create},
		{Method: fiber.MethodPatch, Path: "/tickets/:id", Roles: ticketEditors, Handler: cfg.Tickets.Update},
		{Method: fiber.MethodDelete, Path: "/tickets/:id", Roles: adminOnly, Handler: cfg.Tickets.Delete},

		{Method: fiber.MethodGet, Path: "/ticket-events", Authenticated: signedIn, Handler: cfg.TicketEvents.List},
		{Method: fiber.MethodGet, Path: "/ticket-events/:id", Authenticated: signedIn, Handler: cfg.TicketEvents.Get},
		{Method: fiber.MethodPost, Path: "/ticket-events", Authenticated: signedIn, Handler: cfg.TicketEvents.Create},
		{Method: fiber.MethodPatch, Path: "/ticket-events/:id", Roles: supervisors, Handler: cfg.TicketEvents.Update},
		{Method: fiber.MethodDelete, Path: "/ticket-events/:id", Roles: supervisors, Handler: cfg.TicketEvents.Delete},

		{Method: fiber.MethodGet, Path: "/users", Roles: supervisors, Handler: cfg.Users.List},
		{Method: fiber.MethodGet, Path: "/users/:id", Roles: supervisors, Handler: cfg.Users.Get},
		{Method: fiber.MethodPost, Path: "/users", Roles: adminOnly, Handler: cfg.Users.Create},
		{Method: fiber.MethodPatch, Path: "/users/:id", Roles: adminOnly, Handler: cfg.Users.Update},
		{Method: fiber.MethodDelete, Path: "/users/:id", Roles: adminOnly, Handler: cfg.Users.Delete},

		{Method: fiber.MethodGet, Path: "/roles", Authenticated: signedIn, Handler: cfg.Roles.List},
		{Method: fiber.MethodGet, Path: "/roles/:id", Authenticated: signedIn, Handler: cfg.Roles.Get},
		{Method: fiber.MethodPost, Path: "/roles", Roles: adminOnly, Handler: cfg.Roles.Create},
		{Method: fiber.MethodPatch, Path: "/roles/:id", Roles: adminOnly, Handler: cfg.Roles.Update},
		{Method: fiber.MethodDelete, Path: "/roles/:id", Roles: adminOnly, Handler: cfg.Roles.Delete},

		{Method: fiber.MethodGet, Path: "/locations", Handler: cfg.Locations.List},
		{Method: fiber.MethodGet, Path: "/locations/:id", Handler: cfg.Locations.Get},
		{Method: fiber.MethodPost, Path: "/locations", Roles: adminOnly, Handler: cfg.Locations.Create},
		{Method: fiber.MethodPatch, Path: "/locations/:id", Roles: adminOnly, Handler: cfg.Locations.Update},
		{Method: fiber.MethodDelete, Path: "/locations/:id", Roles: adminOnly, Handler: cfg.Locations.Delete},

		{Method: fiber.MethodGet, Path: "/repair-types", Handler: cfg.RepairTypes.List},
		{Method: fiber.MethodGet, Path: "/repair-types/:id", Handler: cfg.RepairTypes.Get},
		{Method: fiber.MethodPost, Path: "/repair-types", Roles: adminOnly, Handler: cfg.RepairTypes.Create},
		{Method: fiber.MethodPatch, Path: "/repair-types/:id", Roles: adminOnly, Handler: cfg.RepairTypes.Update},
		{Method: fiber.MethodDelete, Path: "/repair-types/:id", Roles: adminOnly, Handler: cfg.RepairTypes.Delete},

		{Method: fiber.MethodGet, Path: "/surveys", Authenticated: signedIn, Handler: cfg.Surveys.List},
		{Method: fiber.MethodGet, Path: "/surveys/:id", Authenticated: signedIn, Handler: cfg.Surveys.Get},
		{Method: fiber.MethodPost, Path: "/surveys", Roles: surveyReporters, Handler: cfg.Surveys.Create},
		{Method: fiber.MethodPatch, Path: "/surveys/:id", Roles: adminOnly, Handler: cfg.Surveys.Update},
		{Method: fiber.MethodDelete, Path: "/surveys/:id", Roles: adminOnly, Handler: cfg.Surveys.Delete},

		{Method: fiber.MethodGet, Path: "/attachments", Authenticated: signedIn, Handler: cfg.Attachments.List},
		{Method: fiber.MethodGet, Path: "/attachments/:id", Authenticated: signedIn, Handler: cfg.Attachments.Get},
		{Method: fiber.MethodPost, Path: "/attachments", Authenticated: signedIn, Handler: cfg.Attachments.Create},
		{Method: fiber.MethodPost, Path: "/attachments/upload", Authenticated: signedIn, Handler: cfg.Uploads.Upload},
		{Method: fiber.MethodPatch, Path: "/attachments/:id", Roles: adminOnly, Handler: cfg.Attachments.Update},
		{Method: fiber.MethodDelete, Path: "/attachments/:id", Roles: adminOnly, Handler: cfg.Attachments.Delete},

		{Method: fiber.MethodGet, Path: "/sla-monitor/status", Roles: supervisors, Handler: cfg.SLAMonitor.Status},
		{Method: fiber.MethodGet, Path: "/sla-monitor/statistics", Roles: supervisors, Handler: cfg.SLAMonitor.Statistics},
		{Method: fiber.MethodPost, Path: "/sla-monitor/trigger", Roles: supervisors, Handler: cfg.SLAMonitor.Trigger},
		{Method: fiber.MethodDelete, Path: "/sla-monitor/jobs", Roles: adminOnly, Handler: cfg.SLAMonitor.ClearJobs},
	}
	return routes
}

// RegisterRoutes wires the route table, metrics and the public upload directory.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics.Handler()))
	}
	if cfg.UploadDir != "" {
		app.Static("/uploads", cfg.UploadDir)
	}

	app.Use(cfg.AuthMiddleware.Handle)
	for _, route := range Routes(cfg) {
		chain := make([]fiber.Handler, 0, 2)
		if guard := route.guard(); guard != nil {
			chain = append(chain, guard)
		}
		chain = append(chain, route.Handler)
		app.Add(route.Method, route.Path, chain...)
	}
}
