package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/classroom-api/internal/config"
	"github.com/noah-isme/classroom-api/internal/handler"
	"github.com/noah-isme/classroom-api/internal/middleware"
)

// Dependencies lists everything the router needs to mount the API surface.
type Dependencies struct {
	Config     config.Config
	Auth       *handler.AuthHandler
	Classroom  *handler.ClassroomHandler
	Assignment *handler.AssignmentHandler
	Submission *handler.SubmissionHandler
}

// Register mounts all application routes onto the Fiber app.
func Register(app *fiber.App, deps Dependencies) {
	app.Get("/", handler.Root(deps.Config))
	app.Get("/health", handler.HealthCheck(deps.Config))

	jwtProtected := middleware.JWTProtected(deps.Config.JWTSecret)
	loginLimiter := middleware.RateLimit("login", deps.Config.LoginRateMax, deps.Config.LoginRateWindow)

	api := app.Group("/api")

	deps.Auth.Register(api.Group("/auth"), jwtProtected, loginLimiter)
	deps.Classroom.Register(api.Group("/classrooms", jwtProtected))
	deps.Assignment.Register(api.Group("/assignments", jwtProtected))
	deps.Submission.Register(api.Group("/submissions", jwtProtected))
}
