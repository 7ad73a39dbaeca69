package middleware

import (
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"

	"github.com/aerointel/aerointel-backend/internal/config"
	"github.com/aerointel/aerointel-backend/internal/dto"
)

func JWTProtected(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{JWTAlg: jwtware.HS256, Key: []byte(cfg.JWTSecret)},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Unauthorized - Invalid or missing token"))
		},
		SuccessHandler: func(c *fiber.Ctx) error {
			if _, ok := CurrentUser(c); !ok {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Unauthorized - Invalid or missing token"))
			}
			return c.Next()
		},
	})
}
