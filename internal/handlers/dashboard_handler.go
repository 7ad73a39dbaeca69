package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/aerointel/aerointel-backend/internal/apperr"
	"github.com/aerointel/aerointel-backend/internal/dto"
	"github.com/aerointel/aerointel-backend/internal/middleware"
	"github.com/aerointel/aerointel-backend/internal/services"
)

type DashboardHandler struct {
	service *services.DashboardService
}

func NewDashboardHandler(service *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	p, ok := middleware.CurrentUser(c)
	if !ok {
		return apperr.Unauthenticated("Unauthorized - Invalid or missing token")
	}

	stats, err := h.service.Stats(c.UserContext(), p)
	if err != nil {
		return err
	}
	return c.JSON(dto.DashboardResponse{Success: true, Stats: stats})
}
