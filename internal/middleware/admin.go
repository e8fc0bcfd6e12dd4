package middleware

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v3"
)

// RequireAdmin gates admin routes behind a shared token passed in the
// X-Admin-Token header. An empty configured token disables the admin surface
// entirely rather than leaving it open.
func RequireAdmin(token string) fiber.Handler {
	return func(c fiber.Ctx) error {
		if token == "" {
			return ErrorResponse(c, fiber.StatusForbidden, "ADMIN_DISABLED", "Admin surface is not configured")
		}
		got := c.Get("X-Admin-Token")
		if subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
			return ErrorResponse(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "Invalid admin token")
		}
		return c.Next()
	}
}
