package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/aerointel/aerointel-backend/internal/policy"
	"github.com/aerointel/aerointel-backend/internal/services"
)

const principalKey = "principal"

// CurrentUser returns the caller authenticated by JWTProtected. The parsed
// principal is cached on the request after the first lookup.
func CurrentUser(c *fiber.Ctx) (policy.Principal, bool) {
	if p, ok := c.Locals(principalKey).(policy.Principal); ok {
		return p, true
	}

	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return policy.Principal{}, false
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return policy.Principal{}, false
	}
	p, ok := services.PrincipalFromClaims(claims)
	if !ok {
		return policy.Principal{}, false
	}

	c.Locals(principalKey, p)
	return p, true
}
