package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/team-service/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health *handlers.HealthHandler
	Teams  *handlers.TeamsHandler
	Users  *handlers.UsersHandler
}

// RegisterRoutes wires HTTP routes. Team info and user-teams listings use
// distinct path shapes so the routes cannot shadow each other.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	users := app.Group("/users")
	users.Post("/", cfg.Users.CreateUser)
	users.Get("/:id", cfg.Users.GetUser)

	teams := app.Group("/teams")
	teams.Post("/", cfg.Teams.CreateTeam)
	teams.Get("/users/:userId", cfg.Teams.ListUserTeams)
	teams.Get("/:id/info", cfg.Teams.GetInfo)
	teams.Get("/:id/tasks", cfg.Teams.ListTasks)
	teams.Post("/:id/members", cfg.Teams.AddMember)
	teams.Delete("/:id/members/:userId", cfg.Teams.RemoveMember)
	teams.Delete("/:id", cfg.Teams.DeleteTeam)
}
