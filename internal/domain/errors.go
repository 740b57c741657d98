package domain

import "errors"

// Authentication errors
var (
	ErrUserNotFound              = errors.New("user not found")
	ErrUserAlreadyExists         = errors.New("user already exists")
	ErrInvalidCredentials        = errors.New("invalid credentials")
	ErrAccountNotVerified        = errors.New("account not verified")
	ErrInvalidToken              = errors.New("invalid token")
	ErrVerificationTokenNotFound = errors.New("verification token not found")
)

// Validation errors
var (
	ErrInvalidEmail = errors.New("invalid email address")
)
