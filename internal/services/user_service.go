package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/fathima-sithara/onboarding-service/internal/models"
	"github.com/fathima-sithara/onboarding-service/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// expiryYearWindow is how far into the future a card expiry year may lie.
const expiryYearWindow = 20

// UserService drives the onboarding steps: basic info, OTP verification
// and card registration. The steps are independently callable; only card
// creation is gated on the verified flag.
type UserService struct {
	userRepo repository.UserRepository
	cardRepo repository.CardRepository
	otp      OTPVerifier
	logger   *zap.Logger
}

func NewUserService(userRepo repository.UserRepository, cardRepo repository.CardRepository, otp OTPVerifier, logger *zap.Logger) *UserService {
	return &UserService{userRepo: userRepo, cardRepo: cardRepo, otp: otp, logger: logger}
}

func (s *UserService) GetProfile(ctx context.Context, userID primitive.ObjectID) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

// UpdateBasicInfo sets dob and address. The name is only overwritten when
// a non-empty value is supplied. Verification state is not checked.
func (s *UserService) UpdateBasicInfo(ctx context.Context, userID primitive.ObjectID, name, dob, address string) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if name != "" {
		user.Name = name
	}
	user.DOB = dob
	user.Address = address

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

// VerifyOTP marks the user verified when the code checks out. The flag
// only ever moves false to true; re-verifying an already verified user
// succeeds again.
func (s *UserService) VerifyOTP(ctx context.Context, userID primitive.ObjectID, code string) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	ok, err := s.otp.Check(ctx, userID.Hex(), code)
	if err != nil {
		return nil, fmt.Errorf("check otp: %w", err)
	}
	if !ok {
		return nil, ErrInvalidOTP
	}

	user.IsVerified = true
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	s.logger.Info("user verified", zap.String("user_id", userID.Hex()))
	return user, nil
}

// AddCard registers a payment card for a verified user. The card number
// is stored with whitespace stripped.
func (s *UserService) AddCard(ctx context.Context, userID primitive.ObjectID, number, expiryMonth, expiryYear string) (*models.Card, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	if !user.IsVerified {
		return nil, ErrNotVerified
	}

	number = strings.Join(strings.Fields(number), "")
	if verr := validateCard(number, expiryMonth, expiryYear); verr != nil {
		return nil, verr
	}

	card := &models.Card{
		UserID:      user.ID,
		CardNumber:  number,
		ExpiryMonth: expiryMonth,
		ExpiryYear:  expiryYear,
	}
	if err := s.cardRepo.Create(ctx, card); err != nil {
		return nil, fmt.Errorf("create card: %w", err)
	}

	s.logger.Info("card added", zap.String("user_id", userID.Hex()), zap.String("card_id", card.ID.Hex()))
	return card, nil
}

// ListCards returns the user's cards, newest first.
func (s *UserService) ListCards(ctx context.Context, userID primitive.ObjectID) ([]models.Card, error) {
	cards, err := s.cardRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}
	return cards, nil
}

// validateCard checks card fields in order and reports the first failure.
// The number must already have whitespace stripped.
func validateCard(number, expiryMonth, expiryYear string) *CardValidationError {
	if len(number) < 13 || len(number) > 19 || !allDigits(number) {
		return &CardValidationError{Field: "cardNumber", Message: "Invalid card number format"}
	}
	if m, err := strconv.Atoi(expiryMonth); err != nil || m < 1 || m > 12 {
		return &CardValidationError{Field: "expiryMonth", Message: "Month must be between 01 and 12"}
	}
	currentYear := time.Now().Year()
	if y, err := strconv.Atoi(expiryYear); err != nil || y < currentYear || y > currentYear+expiryYearWindow {
		return &CardValidationError{Field: "expiryYear", Message: "Invalid expiry year"}
	}
	return nil
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
