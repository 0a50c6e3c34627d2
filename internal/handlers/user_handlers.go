package handlers

import (
	"errors"

	"github.com/fathima-sithara/onboarding-service/internal/middleware"
	"github.com/fathima-sithara/onboarding-service/internal/models"
	"github.com/fathima-sithara/onboarding-service/internal/services"
	"github.com/fathima-sithara/onboarding-service/internal/utils"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// UserHandler exposes the onboarding steps for the authenticated user.
type UserHandler struct {
	svc      *services.UserService
	validate *validator.Validate
	log      *zap.Logger
}

func NewUserHandler(svc *services.UserService, validate *validator.Validate, log *zap.Logger) *UserHandler {
	return &UserHandler{svc: svc, validate: validate, log: log}
}

// Profile handles GET /user/profile.
func (h *UserHandler) Profile(c *fiber.Ctx) error {
	user := middleware.UserFromCtx(c)
	if user == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "No token provided. Authorization header required.", nil)
	}
	return utils.Success(c, fiber.StatusOK, "Profile retrieved successfully", fiber.Map{"user": user})
}

// UpdateBasicInfo handles POST /user/basic.
func (h *UserHandler) UpdateBasicInfo(c *fiber.Ctx) error {
	user := middleware.UserFromCtx(c)
	if user == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "No token provided. Authorization header required.", nil)
	}

	var req models.BasicInfoRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Invalid request body", nil)
	}
	if err := h.validate.Struct(req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "DOB and address are required", utils.FormatValidationErrors(err))
	}

	updated, err := h.svc.UpdateBasicInfo(c.Context(), user.ID, req.Name, req.DOB, req.Address)
	if err != nil {
		return h.mapServiceError(c, err, "update basic info failed")
	}
	return utils.Success(c, fiber.StatusOK, "Basic information updated successfully", fiber.Map{"user": updated})
}

// VerifyOTP handles POST /user/verify.
func (h *UserHandler) VerifyOTP(c *fiber.Ctx) error {
	user := middleware.UserFromCtx(c)
	if user == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "No token provided. Authorization header required.", nil)
	}

	var req models.VerifyOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Invalid request body", nil)
	}
	if err := h.validate.Struct(req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "OTP is required", utils.FormatValidationErrors(err))
	}

	updated, err := h.svc.VerifyOTP(c.Context(), user.ID, req.OTP)
	if err != nil {
		return h.mapServiceError(c, err, "otp verification failed")
	}
	return utils.Success(c, fiber.StatusOK, "OTP verified successfully", fiber.Map{"user": updated})
}

// AddCard handles POST /user/cards.
func (h *UserHandler) AddCard(c *fiber.Ctx) error {
	user := middleware.UserFromCtx(c)
	if user == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "No token provided. Authorization header required.", nil)
	}

	var req models.AddCardRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Invalid request body", nil)
	}
	if err := h.validate.Struct(req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Card number, expiry month, and expiry year are required", utils.FormatValidationErrors(err))
	}

	card, err := h.svc.AddCard(c.Context(), user.ID, req.CardNumber, req.ExpiryMonth, req.ExpiryYear)
	if err != nil {
		return h.mapServiceError(c, err, "add card failed")
	}
	return utils.Success(c, fiber.StatusCreated, "Card added successfully", fiber.Map{"card": card})
}

// ListCards handles GET /user/cards.
func (h *UserHandler) ListCards(c *fiber.Ctx) error {
	user := middleware.UserFromCtx(c)
	if user == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "No token provided. Authorization header required.", nil)
	}

	cards, err := h.svc.ListCards(c.Context(), user.ID)
	if err != nil {
		return h.mapServiceError(c, err, "list cards failed")
	}
	return utils.Success(c, fiber.StatusOK, "Cards retrieved successfully", fiber.Map{
		"count": len(cards),
		"cards": cards,
	})
}

// mapServiceError translates service failures into envelope responses.
func (h *UserHandler) mapServiceError(c *fiber.Ctx, err error, logMsg string) error {
	var cve *services.CardValidationError
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		return utils.Error(c, fiber.StatusNotFound, "User not found", nil)
	case errors.Is(err, services.ErrInvalidOTP):
		return utils.Error(c, fiber.StatusBadRequest, "Invalid OTP. Please try again.", nil)
	case errors.Is(err, services.ErrNotVerified):
		return utils.Error(c, fiber.StatusForbidden, "Please verify your account first", nil)
	case errors.As(err, &cve):
		return utils.Error(c, fiber.StatusBadRequest, cve.Message, fiber.Map{cve.Field: cve.Message})
	default:
		h.log.Error(logMsg, zap.Error(err))
		return utils.Error(c, fiber.StatusInternalServerError, "Internal server error", nil)
	}
}
