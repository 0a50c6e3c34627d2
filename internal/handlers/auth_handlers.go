package handlers

import (
	"errors"

	"github.com/fathima-sithara/onboarding-service/internal/models"
	"github.com/fathima-sithara/onboarding-service/internal/services"
	"github.com/fathima-sithara/onboarding-service/internal/utils"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AuthHandler exposes signup and login.
type AuthHandler struct {
	svc      *services.AuthService
	validate *validator.Validate
	log      *zap.Logger
}

func NewAuthHandler(svc *services.AuthService, validate *validator.Validate, log *zap.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, validate: validate, log: log}
}

// Signup handles POST /auth/signup.
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req models.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Invalid request body", nil)
	}
	if err := h.validate.Struct(req); err != nil {
		msg := "All fields are required: name, email, password"
		if !utils.HasTag(err, "required") && utils.HasTag(err, "min") {
			msg = "Password must be at least 6 characters"
		}
		return utils.Error(c, fiber.StatusBadRequest, msg, utils.FormatValidationErrors(err))
	}

	user, tok, err := h.svc.Signup(c.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			return utils.Error(c, fiber.StatusBadRequest, "User with this email already exists", nil)
		}
		h.log.Error("signup failed", zap.Error(err))
		return utils.Error(c, fiber.StatusInternalServerError, "Internal server error", nil)
	}

	return utils.Success(c, fiber.StatusCreated, "User registered successfully", fiber.Map{
		"user":  user,
		"token": tok,
	})
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Invalid request body", nil)
	}
	if err := h.validate.Struct(req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Email and password are required", utils.FormatValidationErrors(err))
	}

	user, tok, err := h.svc.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return utils.Error(c, fiber.StatusUnauthorized, "Invalid credentials", nil)
		}
		h.log.Error("login failed", zap.Error(err))
		return utils.Error(c, fiber.StatusInternalServerError, "Internal server error", nil)
	}

	return utils.Success(c, fiber.StatusOK, "Login successful", fiber.Map{
		"user":  user,
		"token": tok,
	})
}
