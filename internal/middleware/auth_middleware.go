package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/gramseva/portal/internal/auth"
	"github.com/gramseva/portal/internal/models"
)

// UserFinder resolves a token subject to a stored user, password excluded.
type UserFinder interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
}

const localsUserKey = "user"

// Protect validates the Bearer token and binds the resolved user to the
// request context. Identity is re-derived on every request; downstream
// handlers read it via CurrentUser and never parse tokens themselves.
func Protect(users UserFinder, secret []byte) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if header == "" {
			return unauthorized(c, "Not authorized, no token")
		}

		tokenString := strings.TrimPrefix(header, "Bearer ")
		if tokenString == header || tokenString == "" {
			return unauthorized(c, "Not authorized, invalid token format")
		}

		userID, err := auth.ParseToken(tokenString, secret)
		if err != nil {
			if errors.Is(err, auth.ErrTokenExpired) {
				return unauthorized(c, "Not authorized, token expired")
			}
			return unauthorized(c, "Not authorized, invalid token")
		}

		// The account may have been deleted after the token was issued.
		user, err := users.FindByID(c.Context(), userID)
		if err != nil {
			return unauthorized(c, "Not authorized, user not found")
		}

		c.Locals(localsUserKey, user)
		return c.Next()
	}
}

// RequireRoles rejects authenticated users whose role is not in the allowed
// set. Must run after Protect.
func RequireRoles(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return unauthorized(c, "Not authorized, no token")
		}
		for _, role := range roles {
			if user.Role == role {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"success": false,
			"error":   "Role '" + user.Role + "' is not allowed to access this route",
		})
	}
}

// CurrentUser returns the user bound by Protect, or nil.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(localsUserKey).(*models.User)
	return user
}

func unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}
