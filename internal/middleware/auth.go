package middleware

import (
	"strings"

	"github.com/bettermespace/backend/internal/config"
	"github.com/bettermespace/backend/internal/dto"
	"github.com/bettermespace/backend/internal/services"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
)

const optionalUserKey = "optional_user_id"

// JWTProtected rejects requests without a valid bearer token.
func JWTProtected(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{Key: []byte(cfg.JWTSecret)},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error:   true,
				Message: "Unauthorized: invalid or expired token",
			})
		},
	})
}

// OptionalUser resolves a bearer token when one is present and valid, and
// otherwise lets the request through as anonymous. Token failure is silent:
// anonymous quiz-taking must keep working with a stale token in the client.
func OptionalUser(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		auth := c.Get(fiber.HeaderAuthorization)
		if strings.HasPrefix(auth, "Bearer ") {
			tokenString := strings.TrimPrefix(auth, "Bearer ")
			if userID, err := services.ParseUserID(cfg.JWTSecret, tokenString); err == nil {
				c.Locals(optionalUserKey, userID)
			}
		}
		return c.Next()
	}
}
