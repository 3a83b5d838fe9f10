package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/classroom-api/internal/config"
)

// RootResponse is the payload returned by the root liveness endpoint.
type RootResponse struct {
	Message string `json:"message"`
	Version string `json:"version"`
	Status  string `json:"status"`
}

// HealthResponse is the payload returned by the health endpoint.
type HealthResponse struct {
	Status      string    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
	Service     string    `json:"service"`
	Environment string    `json:"environment"`
}

// Root returns a handler that identifies the running service.
func Root(cfg config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(RootResponse{
			Message: cfg.AppName,
			Version: "1.0.0",
			Status:  "running",
		})
	}
}

// HealthCheck returns a handler that reports application health information.
func HealthCheck(cfg config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(HealthResponse{
			Status:      "ok",
			Timestamp:   time.Now().UTC(),
			Service:     cfg.AppName,
			Environment: cfg.AppEnv,
		})
	}
}
