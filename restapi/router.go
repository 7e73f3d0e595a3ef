// Package restapi provides the main router and initialization for REST API endpoints.
package restapi

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/graphql-go/graphql"

	"github.com/volunteerhub/backend/config"
	"github.com/volunteerhub/backend/database"
	"github.com/volunteerhub/backend/internal/services"
	"github.com/volunteerhub/backend/internal/store"
	"github.com/volunteerhub/backend/restapi/modules/auth"
	"github.com/volunteerhub/backend/restapi/modules/organizations"
	"github.com/volunteerhub/backend/restapi/modules/volunteers"
)

// Deps bundles everything the route tree needs
type Deps struct {
	Store         store.Store
	Organizations *services.OrganizationService
	Volunteers    *services.VolunteerService
	Schema        graphql.Schema
	Config        config.Config
}

// createLimiter throttles record creation per client IP
func createLimiter() fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"status":  fiber.StatusTooManyRequests,
				"code":    "RATE_LIMITED",
				"message": "Too many requests, slow down",
			})
		},
	})
}

// SetupRoutes configures all REST API routes and the GraphQL endpoint
func SetupRoutes(app *fiber.App, deps Deps) {
	logger := database.Logger().Sugar()

	// API Group /api/v1
	api := app.Group("/api/v1")

	// GraphQL Route
	api.Post("/graphql", auth.RequireAuth, GraphQLHandler(deps.Schema))

	// Auth Routes
	authGroup := api.Group("/auth")
	authGroup.Post("/login", auth.Login(deps.Store))
	authGroup.Post("/logout", auth.Logout())
	authGroup.Get("/me", auth.RequireAuth, auth.Me(deps.Store))
	authGroup.Post("/change-password", auth.RequireAuth, auth.ChangePassword(deps.Store))

	// Organization Directory
	orgGroup := api.Group("/organizations", auth.RequireAuth)
	orgGroup.Get("/", organizations.List(deps.Organizations))
	orgGroup.Post("/", createLimiter(), organizations.Create(deps.Organizations))
	orgGroup.Get("/:id", organizations.Get(deps.Organizations))
	orgGroup.Patch("/:id", organizations.Patch(deps.Organizations))
	orgGroup.Delete("/:id", organizations.Delete(deps.Organizations))
	orgGroup.Get("/:id/summary", organizations.Summary(deps.Organizations))

	// Volunteer Roster
	volGroup := api.Group("/volunteers", auth.RequireAuth)
	volGroup.Get("/", volunteers.List(deps.Volunteers))
	volGroup.Post("/", createLimiter(), volunteers.Create(deps.Volunteers))
	volGroup.Get("/:id", volunteers.Get(deps.Volunteers))
	volGroup.Patch("/:id", volunteers.Patch(deps.Volunteers))
	volGroup.Delete("/:id", volunteers.Delete(deps.Volunteers))

	logger.Infof("API routes initialized successfully")
}
