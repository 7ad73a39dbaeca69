package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/aerointel/aerointel-backend/internal/apperr"
	"github.com/aerointel/aerointel-backend/internal/policy"
)

// Authorize gates a route on a collection-level policy action. It must run
// after JWTProtected.
func Authorize(action policy.Action) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, ok := CurrentUser(c)
		if !ok {
			return apperr.Unauthenticated("Unauthorized - Invalid or missing token")
		}
		if err := policy.Authorize(p, action, policy.Resource{}); err != nil {
			return err
		}
		return c.Next()
	}
}
