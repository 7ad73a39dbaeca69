package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/aerointel/aerointel-backend/internal/apperr"
	"github.com/aerointel/aerointel-backend/internal/dto"
	"github.com/aerointel/aerointel-backend/internal/middleware"
	"github.com/aerointel/aerointel-backend/internal/services"
)

type AnalysisHandler struct {
	service *services.AnalysisService
}

func NewAnalysisHandler(service *services.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{service: service}
}

func (h *AnalysisHandler) Analyze(c *fiber.Ctx) error {
	p, ok := middleware.CurrentUser(c)
	if !ok {
		return apperr.Unauthenticated("Unauthorized - Invalid or missing token")
	}

	var req dto.AnalyzeRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	result, err := h.service.Analyze(c.UserContext(), p, &req)
	if err != nil {
		return err
	}
	return c.JSON(dto.AnalyzeResponse{Success: true, Analysis: result})
}
