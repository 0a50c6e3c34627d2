package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fathima-sithara/onboarding-service/internal/models"
	"github.com/fathima-sithara/onboarding-service/internal/repository"
	"github.com/fathima-sithara/onboarding-service/internal/token"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles signup and login.
type AuthService struct {
	userRepo repository.UserRepository
	tokens   *token.Manager
	logger   *zap.Logger
}

func NewAuthService(userRepo repository.UserRepository, tokens *token.Manager, logger *zap.Logger) *AuthService {
	return &AuthService{userRepo: userRepo, tokens: tokens, logger: logger}
}

// Signup registers a new user and issues a session token. Emails are
// stored lowercased so uniqueness is case-insensitive.
func (s *AuthService) Signup(ctx context.Context, name, email, password string) (*models.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	tok, err := s.tokens.Generate(user.ID.Hex())
	if err != nil {
		return nil, "", fmt.Errorf("generate token: %w", err)
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID.Hex()))
	return user, tok, nil
}

// Login checks credentials and issues a session token. Unknown email and
// wrong password return the same error so accounts cannot be enumerated.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	tok, err := s.tokens.Generate(user.ID.Hex())
	if err != nil {
		return nil, "", fmt.Errorf("generate token: %w", err)
	}
	return user, tok, nil
}
