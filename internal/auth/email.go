package auth

import (
	"net/mail"
	"strings"

	"github.com/tendant/simple-auth/internal/domain"
)

const maxEmailLength = 254 // RFC 5321

// ValidateEmail validates an email address for format and length.
func ValidateEmail(email string) error {
	if email == "" || len(email) > maxEmailLength {
		return domain.ErrInvalidEmail
	}

	addr, err := mail.ParseAddress(NormalizeEmail(email))
	if err != nil || addr.Address != NormalizeEmail(email) {
		return domain.ErrInvalidEmail
	}

	return nil
}

// NormalizeEmail lowercases and trims an email address. Lookups and writes
// always use the normalized form, making email uniqueness case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
