package serverutils

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"
)

// BearerAuthMiddleware guards a route group with a static bearer token.
// An empty configured token locks the group instead of matching an empty
// Authorization value.
func BearerAuthMiddleware(token string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if token == "" {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"detail": "Bearer token not configured"})
		}

		authHeader := ctx.Get("Authorization")
		if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"detail": "Missing bearer token"})
		}
		provided := authHeader[7:]

		if subtle.ConstantTimeCompare([]byte(provided), []byte(token)) != 1 {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"detail": "Invalid token"})
		}
		return ctx.Next()
	}
}
