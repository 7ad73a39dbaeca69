package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/aerointel/aerointel-backend/internal/dto"
	"github.com/aerointel/aerointel-backend/internal/store"
)

type HealthHandler struct {
	store        store.Store
	version      string
	aiConfigured bool
}

func NewHealthHandler(st store.Store, version string, aiConfigured bool) *HealthHandler {
	return &HealthHandler{store: st, version: version, aiConfigured: aiConfigured}
}

// Check always answers 200; a failing store is reported in services.database.
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 3*time.Second)
	defer cancel()

	dbStatus := "connected"
	if err := h.store.Ping(ctx); err != nil {
		dbStatus = "unavailable"
	}
	openai := "not configured"
	if h.aiConfigured {
		openai = "configured"
	}

	return c.JSON(dto.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   h.version,
		Store:     h.store.Name(),
		Services:  dto.HealthServices{Database: dbStatus, OpenAI: openai},
	})
}
