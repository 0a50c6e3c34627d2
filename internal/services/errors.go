package services

import (
	"errors"
	"fmt"
)

var (
	ErrEmailTaken         = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidOTP         = errors.New("invalid OTP")
	ErrNotVerified        = errors.New("account not verified")
)

// CardValidationError reports the first card field that failed validation.
type CardValidationError struct {
	Field   string
	Message string
}

func (e *CardValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}
