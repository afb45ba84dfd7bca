package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"interview-navigator/internal/auth"
)

// UserIDKey is the locals key under which the authenticated user id is stored.
const UserIDKey = "userID"

// RequireAuth validates the Authorization bearer token and stores the caller's
// user id in locals for the handlers behind it.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authorization token is missing",
			})
		}

		tokenString, found := strings.CutPrefix(header, "Bearer ")
		if !found {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authorization header must be a bearer token",
			})
		}

		userID, err := auth.ParseToken(tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or expired token",
			})
		}

		c.Locals(UserIDKey, userID)
		return c.Next()
	}
}

// CallerID returns the authenticated user id set by RequireAuth.
func CallerID(c *fiber.Ctx) uint {
	if id, ok := c.Locals(UserIDKey).(uint); ok {
		return id
	}
	return 0
}
