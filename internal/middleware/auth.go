package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"
)

// TokenValidator checks a parent session token.
type TokenValidator interface {
	ValidateToken(token string) error
}

// RequireParent rejects requests without a valid "Authorization: Bearer"
// parent session token.
func RequireParent(v TokenValidator) fiber.Handler {
	return func(c fiber.Ctx) error {
		scheme, token, ok := strings.Cut(c.Get(fiber.HeaderAuthorization), " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
			return ErrorResponse(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "Parent authentication required")
		}
		if err := v.ValidateToken(strings.TrimSpace(token)); err != nil {
			return ErrorResponse(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "Invalid or expired session")
		}
		return c.Next()
	}
}
