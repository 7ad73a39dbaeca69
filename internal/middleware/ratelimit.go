package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/aerointel/aerointel-backend/internal/config"
	"github.com/aerointel/aerointel-backend/internal/dto"
)

// RateLimit is a fixed-window per-IP limiter. With a nil storage the counters
// live in process memory and reset on restart.
func RateLimit(cfg *config.Config, storage fiber.Storage) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:               cfg.RateLimitMax,
		Expiration:        cfg.RateLimitWindow,
		LimiterMiddleware: limiter.FixedWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
		Next:              func(c *fiber.Ctx) bool { return c.Method() == fiber.MethodOptions },
		Storage:           storage,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.Fail("Too many requests. Please try again later."))
		},
	})
}
