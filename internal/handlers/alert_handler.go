package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/aerointel/aerointel-backend/internal/apperr"
	"github.com/aerointel/aerointel-backend/internal/dto"
	"github.com/aerointel/aerointel-backend/internal/middleware"
	"github.com/aerointel/aerointel-backend/internal/services"
)

type AlertHandler struct {
	service *services.AlertService
}

func NewAlertHandler(service *services.AlertService) *AlertHandler {
	return &AlertHandler{service: service}
}

func (h *AlertHandler) List(c *fiber.Ctx) error {
	var q dto.AlertQuery
	if err := parseQuery(c, &q); err != nil {
		return err
	}

	items, page, err := h.service.List(c.UserContext(), &q)
	if err != nil {
		return err
	}
	return c.JSON(dto.AlertListResponse{Success: true, Alerts: items, Pagination: page})
}

func (h *AlertHandler) Create(c *fiber.Ctx) error {
	p, ok := middleware.CurrentUser(c)
	if !ok {
		return apperr.Unauthenticated("Unauthorized - Invalid or missing token")
	}

	var req dto.CreateAlertRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	alert, err := h.service.Create(c.UserContext(), p, &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.AlertResponse{Success: true, Alert: alert})
}

func (h *AlertHandler) Acknowledge(c *fiber.Ctx) error {
	alert, err := h.service.Acknowledge(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.AlertResponse{Success: true, Alert: alert})
}
