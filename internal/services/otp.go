package services

import "context"

// OTPVerifier checks a one-time code for a user. It exists so the fixed
// development code can be swapped for a real delivery provider without
// touching the verification flow or card gating.
type OTPVerifier interface {
	Check(ctx context.Context, userID, code string) (bool, error)
}

// FixedOTPVerifier accepts a single system-wide code. It stands in for an
// external OTP provider that is not integrated yet.
type FixedOTPVerifier struct {
	code string
}

func NewFixedOTPVerifier(code string) *FixedOTPVerifier {
	return &FixedOTPVerifier{code: code}
}

func (v *FixedOTPVerifier) Check(_ context.Context, _ string, code string) (bool, error) {
	return code == v.code, nil
}
