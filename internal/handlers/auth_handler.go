package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/aerointel/aerointel-backend/internal/apperr"
	"github.com/aerointel/aerointel-backend/internal/dto"
	"github.com/aerointel/aerointel-backend/internal/middleware"
	"github.com/aerointel/aerointel-backend/internal/services"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	user, token, err := h.authService.Register(c.UserContext(), &req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(dto.AuthResponse{
		Success: true, User: dto.NewUserResponse(user), Token: token,
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	user, token, err := h.authService.Login(c.UserContext(), &req)
	if err != nil {
		return err
	}

	return c.JSON(dto.AuthResponse{Success: true, User: dto.NewUserResponse(user), Token: token})
}

// Refresh takes the current token from the Authorization header.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	raw := bearerToken(c.Get(fiber.HeaderAuthorization))

	user, token, err := h.authService.Refresh(c.UserContext(), raw)
	if err != nil {
		return err
	}

	return c.JSON(dto.AuthResponse{Success: true, User: dto.NewUserResponse(user), Token: token})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	p, ok := middleware.CurrentUser(c)
	if !ok {
		return apperr.Unauthenticated("Unauthorized - Invalid or missing token")
	}

	user, err := h.authService.Me(c.UserContext(), p.UserID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "user": dto.NewUserResponse(user)})
}

func bearerToken(header string) string {
	const prefix = "bearer "
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
