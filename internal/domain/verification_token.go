package domain

import (
	"time"

	"github.com/google/uuid"
)

// TokenPurpose scopes a verification token to the pending action it unlocks.
type TokenPurpose string

const (
	PurposeRegistration  TokenPurpose = "registration_confirmation"
	PurposePasswordReset TokenPurpose = "password_reset"
)

// VerificationToken is a single-use token binding a user to a pending action.
// Only a SHA-256 hash of the token is stored; the raw value is handed out
// once at issuance. Consuming a token deletes the record.
type VerificationToken struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	TokenHash string
	Purpose   TokenPurpose
	CreatedAt time.Time
	ExpiresAt time.Time
}

// IsExpired reports whether the token has passed its expiry.
func (t *VerificationToken) IsExpired() bool {
	return time.Now().After(t.ExpiresAt)
}
