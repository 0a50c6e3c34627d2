package routes

import (
	"time"

	"github.com/fathima-sithara/onboarding-service/internal/handlers"
	"github.com/fathima-sithara/onboarding-service/internal/middleware"
	"github.com/fathima-sithara/onboarding-service/internal/repository"
	"github.com/fathima-sithara/onboarding-service/internal/token"
	"github.com/gofiber/fiber/v2"
)

// Setup wires the route table. Authentication always runs before the
// verified gate on card creation.
func Setup(app *fiber.App, ah *handlers.AuthHandler, uh *handlers.UserHandler, tokens *token.Manager, users repository.UserRepository) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"success":   true,
			"status":    "ok",
			"message":   "Backend is running",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	auth := app.Group("/auth")
	auth.Post("/signup", ah.Signup)
	auth.Post("/login", ah.Login)

	user := app.Group("/user", middleware.RequireAuth(tokens, users))
	user.Get("/profile", uh.Profile)
	user.Post("/basic", uh.UpdateBasicInfo)
	user.Post("/verify", uh.VerifyOTP)
	user.Post("/cards", middleware.RequireVerified(), uh.AddCard)
	user.Get("/cards", uh.ListCards)
}
