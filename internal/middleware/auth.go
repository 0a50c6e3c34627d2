package middleware

import (
	"errors"
	"strings"

	"github.com/fathima-sithara/onboarding-service/internal/models"
	"github.com/fathima-sithara/onboarding-service/internal/repository"
	"github.com/fathima-sithara/onboarding-service/internal/token"
	"github.com/fathima-sithara/onboarding-service/internal/utils"
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const userLocalKey = "auth_user"

// RequireAuth resolves the bearer token to a user and attaches it to the
// request. Every failure is a plain 401; a bad token never reveals
// anything about the target account.
func RequireAuth(tokens *token.Manager, users repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if header == "" {
			return utils.Error(c, fiber.StatusUnauthorized, "No token provided. Authorization header required.", nil)
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			return utils.Error(c, fiber.StatusUnauthorized, "Invalid token format", nil)
		}

		userID, err := tokens.Parse(parts[1])
		if err != nil {
			return utils.Error(c, fiber.StatusUnauthorized, "Invalid or expired token", nil)
		}

		oid, err := primitive.ObjectIDFromHex(userID)
		if err != nil {
			return utils.Error(c, fiber.StatusUnauthorized, "Invalid or expired token", nil)
		}

		user, err := users.FindByID(c.Context(), oid)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return utils.Error(c, fiber.StatusUnauthorized, "User not found. Token invalid.", nil)
			}
			return utils.Error(c, fiber.StatusInternalServerError, "Authentication failed", nil)
		}

		c.Locals(userLocalKey, user)
		return c.Next()
	}
}

// RequireVerified gates endpoints that only verified users may reach.
// It must run after RequireAuth.
func RequireVerified() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := UserFromCtx(c)
		if user == nil {
			return utils.Error(c, fiber.StatusUnauthorized, "No token provided. Authorization header required.", nil)
		}
		if !user.IsVerified {
			return utils.Error(c, fiber.StatusForbidden, "Please verify your account first", nil)
		}
		return c.Next()
	}
}

// UserFromCtx returns the authenticated user attached by RequireAuth, or
// nil when the request did not pass through it.
func UserFromCtx(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(userLocalKey).(*models.User)
	return user
}
