package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/aerointel/aerointel-backend/internal/apperr"
	"github.com/aerointel/aerointel-backend/internal/dto"
	"github.com/aerointel/aerointel-backend/internal/middleware"
	"github.com/aerointel/aerointel-backend/internal/services"
)

type InsightHandler struct {
	service *services.InsightService
}

func NewInsightHandler(service *services.InsightService) *InsightHandler {
	return &InsightHandler{service: service}
}

func (h *InsightHandler) List(c *fiber.Ctx) error {
	p, ok := middleware.CurrentUser(c)
	if !ok {
		return apperr.Unauthenticated("Unauthorized - Invalid or missing token")
	}

	var q dto.InsightQuery
	if err := parseQuery(c, &q); err != nil {
		return err
	}

	items, page, err := h.service.List(c.UserContext(), p, &q)
	if err != nil {
		return err
	}
	return c.JSON(dto.InsightListResponse{Success: true, Insights: items, Pagination: page})
}

func (h *InsightHandler) Create(c *fiber.Ctx) error {
	p, ok := middleware.CurrentUser(c)
	if !ok {
		return apperr.Unauthenticated("Unauthorized - Invalid or missing token")
	}

	var req dto.CreateInsightRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	in, err := h.service.Create(c.UserContext(), p, &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.InsightResponse{Success: true, Insight: in})
}

func (h *InsightHandler) Get(c *fiber.Ctx) error {
	p, ok := middleware.CurrentUser(c)
	if !ok {
		return apperr.Unauthenticated("Unauthorized - Invalid or missing token")
	}

	in, err := h.service.Get(c.UserContext(), p, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.InsightResponse{Success: true, Insight: in})
}
