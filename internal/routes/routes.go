package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/aerointel/aerointel-backend/internal/config"
	"github.com/aerointel/aerointel-backend/internal/handlers"
	"github.com/aerointel/aerointel-backend/internal/middleware"
	"github.com/aerointel/aerointel-backend/internal/policy"
)

type Handlers struct {
	Auth          *handlers.AuthHandler
	Health        *handlers.HealthHandler
	Transcription *handlers.TranscriptionHandler
	Analysis      *handlers.AnalysisHandler
	Insight       *handlers.InsightHandler
	Alert         *handlers.AlertHandler
	Dashboard     *handlers.DashboardHandler
}

// Setup mounts the API. limiterStorage may be nil for in-memory counters.
func Setup(app *fiber.App, cfg *config.Config, h Handlers, limiterStorage fiber.Storage) {
	api := app.Group("/api")
	api.Use(middleware.RateLimit(cfg, limiterStorage))

	api.Options("/*", middleware.Preflight)

	api.Get("/health", h.Health.Check)

	jwt := middleware.JWTProtected(cfg)

	// Auth (public except /me)
	auth := api.Group("/auth")
	auth.Post("/register", h.Auth.Register)
	auth.Post("/login", h.Auth.Login)
	auth.Post("/refresh", h.Auth.Refresh)
	auth.Get("/me", jwt, h.Auth.Me)

	// Protected routes (JWT required)
	api.Post("/transcribe", jwt, h.Transcription.Transcribe)
	api.Post("/analyze", jwt, h.Analysis.Analyze)

	api.Get("/insights", jwt, h.Insight.List)
	api.Post("/insights", jwt, h.Insight.Create)
	api.Get("/insights/:id", jwt, h.Insight.Get)

	api.Get("/alerts", jwt, h.Alert.List)
	api.Post("/alerts", jwt, middleware.Authorize(policy.CreateAlert), h.Alert.Create)
	api.Post("/alerts/:id/acknowledge", jwt, h.Alert.Acknowledge)

	api.Get("/dashboard/stats", jwt, h.Dashboard.Stats)
}
