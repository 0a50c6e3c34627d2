package models

// SignupRequest is the body of POST /auth/signup.
type SignupRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// BasicInfoRequest is the body of POST /user/basic. Name is optional and
// only overwrites the stored name when non-empty.
type BasicInfoRequest struct {
	Name    string `json:"name"`
	DOB     string `json:"dob" validate:"required"`
	Address string `json:"address" validate:"required"`
}

// VerifyOTPRequest is the body of POST /user/verify.
type VerifyOTPRequest struct {
	OTP string `json:"otp" validate:"required"`
}

// AddCardRequest is the body of POST /user/cards. Field formats are
// validated by the user service before the card is persisted.
type AddCardRequest struct {
	CardNumber  string `json:"cardNumber" validate:"required"`
	ExpiryMonth string `json:"expiryMonth" validate:"required"`
	ExpiryYear  string `json:"expiryYear" validate:"required"`
}
