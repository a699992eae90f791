package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/meetapp-backend/internal/models"
	jwtPkg "github.com/sefazor/meetapp-backend/pkg/jwt"
)

const (
	LocalUserID    = "userID"
	LocalUserEmail = "userEmail"
)

// TokenValidator parses bearer tokens.
type TokenValidator interface {
	ValidateToken(token string) (*jwtPkg.Claims, error)
}

func AuthMiddleware(tokens TokenValidator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("Token not provided"))
		}

		tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("Invalid authorization header format"))
		}

		claims, err := tokens.ValidateToken(tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("Token invalid"))
		}

		userID, err := claims.UserID()
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("Token invalid"))
		}

		c.Locals(LocalUserID, userID)
		c.Locals(LocalUserEmail, claims.Email)

		return c.Next()
	}
}

// UserID returns the authenticated user set by AuthMiddleware, or 0.
func UserID(c *fiber.Ctx) uint {
	id, _ := c.Locals(LocalUserID).(uint)
	return id
}
