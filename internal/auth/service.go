package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tendant/simple-auth/internal/domain"
)

// Default verification token lifetimes.
const (
	DefaultRegistrationTokenTTL = 24 * time.Hour
	DefaultResetTokenTTL        = time.Hour
)

// UserStore is the credential store contract.
type UserStore interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	SetVerified(ctx context.Context, id uuid.UUID, verifiedAt time.Time) error
	UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error
}

// TokenStore is the verification token store contract.
type TokenStore interface {
	Create(ctx context.Context, token *domain.VerificationToken) error
	GetByTokenHash(ctx context.Context, tokenHash string, purpose domain.TokenPurpose) (*domain.VerificationToken, error)
	Delete(ctx context.Context, tokenID uuid.UUID) error
	DeleteByUser(ctx context.Context, userID uuid.UUID, purpose domain.TokenPurpose) error
}

// Config holds workflow settings.
type Config struct {
	RegistrationTokenTTL time.Duration
	ResetTokenTTL        time.Duration
}

// Service drives the register / verify / login / reset workflows over the
// credential store, the verification token store and the session issuer.
type Service struct {
	config   Config
	users    UserStore
	tokens   TokenStore
	sessions *SessionService
}

// NewService creates the auth workflow service.
func NewService(config Config, users UserStore, tokens TokenStore, sessions *SessionService) *Service {
	if config.RegistrationTokenTTL == 0 {
		config.RegistrationTokenTTL = DefaultRegistrationTokenTTL
	}
	if config.ResetTokenTTL == 0 {
		config.ResetTokenTTL = DefaultResetTokenTTL
	}
	return &Service{
		config:   config,
		users:    users,
		tokens:   tokens,
		sessions: sessions,
	}
}

// Register creates an unverified user and issues a registration
// confirmation token. The raw token is returned once and never stored.
func (s *Service) Register(ctx context.Context, name, email, password string) (*domain.User, string, error) {
	email = NormalizeEmail(email)

	// Advisory pre-check; the store's unique constraint is authoritative
	// against concurrent duplicates.
	_, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		return nil, "", domain.ErrUserAlreadyExists
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, "", err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := &domain.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Verified:     false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.issueToken(ctx, user.ID, domain.PurposeRegistration, s.config.RegistrationTokenTTL)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// Verify consumes a registration confirmation token and marks the owning
// user as verified. A second call with the same token fails, the token
// record having been deleted.
func (s *Service) Verify(ctx context.Context, rawToken string) error {
	token, err := s.lookupToken(ctx, rawToken, domain.PurposeRegistration)
	if err != nil {
		return err
	}

	if err := s.users.SetVerified(ctx, token.UserID, time.Now()); err != nil {
		return err
	}

	// Separate operation from the verified update; a crash in between
	// leaves a stale token that will expire unmatched.
	return s.tokens.Delete(ctx, token.ID)
}

// Login checks credentials and issues a session token. Unknown email and
// wrong password both fail with ErrInvalidCredentials so callers cannot
// probe for account existence.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}

	if !VerifyPassword(password, user.PasswordHash) {
		return "", domain.ErrInvalidCredentials
	}

	if !user.Verified {
		return "", domain.ErrAccountNotVerified
	}

	return s.sessions.Issue(user)
}

// ResendVerification replaces the user's registration confirmation token
// with a freshly issued one.
func (s *Service) ResendVerification(ctx context.Context, email string) (string, error) {
	user, err := s.users.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return "", err
	}
	return s.issueToken(ctx, user.ID, domain.PurposeRegistration, s.config.RegistrationTokenTTL)
}

// AuthenticatedUser resolves the user behind validated session claims.
func (s *Service) AuthenticatedUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	return s.users.GetByID(ctx, userID)
}

// ForgotPassword issues a password reset token, replacing any prior one.
func (s *Service) ForgotPassword(ctx context.Context, email string) (string, error) {
	user, err := s.users.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return "", err
	}
	return s.issueToken(ctx, user.ID, domain.PurposePasswordReset, s.config.ResetTokenTTL)
}

// ResetPassword consumes a password reset token and overwrites the stored
// password hash.
func (s *Service) ResetPassword(ctx context.Context, rawToken, newPassword string) error {
	token, err := s.lookupToken(ctx, rawToken, domain.PurposePasswordReset)
	if err != nil {
		return err
	}

	user, err := s.users.GetByID(ctx, token.UserID)
	if err != nil {
		return err
	}

	hash, err := HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.users.UpdatePasswordHash(ctx, user.ID, hash); err != nil {
		return err
	}

	return s.tokens.Delete(ctx, token.ID)
}

// issueToken removes any existing token for the (user, purpose) pair and
// inserts a new one, returning the raw token value.
func (s *Service) issueToken(ctx context.Context, userID uuid.UUID, purpose domain.TokenPurpose, ttl time.Duration) (string, error) {
	raw, err := GenerateToken(VerificationTokenLength)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	if err := s.tokens.DeleteByUser(ctx, userID, purpose); err != nil {
		return "", err
	}

	now := time.Now()
	token := &domain.VerificationToken{
		ID:        uuid.New(),
		UserID:    userID,
		TokenHash: HashToken(raw),
		Purpose:   purpose,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
	if err := s.tokens.Create(ctx, token); err != nil {
		return "", err
	}

	return raw, nil
}

// lookupToken finds an active token by raw value. An expired token is
// deleted and reported as not found.
func (s *Service) lookupToken(ctx context.Context, rawToken string, purpose domain.TokenPurpose) (*domain.VerificationToken, error) {
	token, err := s.tokens.GetByTokenHash(ctx, HashToken(rawToken), purpose)
	if err != nil {
		return nil, err
	}
	if token.IsExpired() {
		_ = s.tokens.Delete(ctx, token.ID)
		return nil, domain.ErrVerificationTokenNotFound
	}
	return token, nil
}
