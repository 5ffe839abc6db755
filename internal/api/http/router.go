package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/org-access-service/internal/api/http/handlers"
	"github.com/spec-kit/org-access-service/internal/auth"
	"github.com/spec-kit/org-access-service/internal/config"
	"github.com/spec-kit/org-access-service/internal/domain"
	"github.com/spec-kit/org-access-service/internal/events"
	"github.com/spec-kit/org-access-service/internal/gate"
	"github.com/spec-kit/org-access-service/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Access         *handlers.AccessHandler
	Org            *handlers.OrgHandler
	Staff          *handlers.StaffHandler
	AuthMiddleware *auth.Middleware
	Dispatcher     events.Dispatcher
	Metrics        *observability.Metrics
	Gate           config.GateConfig
}

// RegisterRoutes wires HTTP routes. Every protected group passes through the
// identity middleware followed by an access gate with its requirement.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	guard := func(req gate.Requirement) fiber.Handler {
		if req.FallbackPath == "" {
			req.FallbackPath = cfg.Gate.FallbackPath
		}
		return gate.Middleware(req, cfg.Dispatcher, cfg.Metrics)
	}

	authGroup := app.Group("/auth")
	authGroup.Post("/sign-in", cfg.Auth.SignIn)
	authGroup.Post("/password/reset/request", cfg.Auth.RequestPasswordReset)
	authGroup.Post("/password/reset/confirm", cfg.Auth.ConfirmPasswordReset)

	authProtected := authGroup.Group("", cfg.AuthMiddleware.Handle, guard(gate.Requirement{}))
	authProtected.Post("/sign-out", cfg.Auth.SignOut)
	authProtected.Post("/password/change", cfg.Auth.ChangePassword)

	accessGroup := app.Group("/access", cfg.AuthMiddleware.Handle)
	accessGroup.Post("/evaluate", cfg.Access.Evaluate)

	orgGroup := app.Group("/org", cfg.AuthMiddleware.Handle, guard(gate.Requirement{}))
	orgGroup.Get("/chart", cfg.Org.Chart)

	staffGroup := app.Group("/staff", cfg.AuthMiddleware.Handle)
	staffGroup.Get("", guard(gate.Requirement{
		AllowedRoles:       []domain.RoleID{domain.RoleAdmin, domain.RoleManager},
		RequiredPermission: "manage_users",
	}), cfg.Staff.List)
	staffGroup.Post("", guard(gate.Requirement{
		AllowedRoles:       []domain.RoleID{domain.RoleAdmin},
		RequiredPermission: "manage_staff",
	}), cfg.Staff.Create)
	staffGroup.Patch("/:id", guard(gate.Requirement{
		AllowedRoles:       []domain.RoleID{domain.RoleAdmin},
		RequiredPermission: "manage_staff",
	}), cfg.Staff.Update)
}
