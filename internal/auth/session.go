package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/tendant/simple-auth/internal/domain"
)

// DefaultSessionTokenTTL is the default session token lifetime.
const DefaultSessionTokenTTL = time.Hour

// SessionConfig holds session token settings.
type SessionConfig struct {
	Secret []byte
	Issuer string
	TTL    time.Duration
}

// SessionClaims are the claims embedded in a session token.
type SessionClaims struct {
	jwt.RegisteredClaims
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// UserID parses the user identifier from the subject claim.
func (c *SessionClaims) UserID() (uuid.UUID, error) {
	id, err := uuid.Parse(c.Subject)
	if err != nil {
		return uuid.Nil, domain.ErrInvalidToken
	}
	return id, nil
}

// SessionService issues and validates signed session tokens. Tokens are
// stateless: no server-side record exists and none can be revoked before
// expiry.
type SessionService struct {
	config SessionConfig
}

// NewSessionService creates a new session service.
func NewSessionService(config SessionConfig) *SessionService {
	if config.TTL == 0 {
		config.TTL = DefaultSessionTokenTTL
	}
	return &SessionService{config: config}
}

// TTL returns the session token lifetime.
func (s *SessionService) TTL() time.Duration {
	return s.config.TTL
}

// Issue creates a signed session token carrying the user's identity claims.
func (s *SessionService) Issue(user *domain.User) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.TTL)),
			Issuer:    s.config.Issuer,
		},
		Name:  user.Name,
		Email: user.Email,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.config.Secret)
}

// Validate checks a session token's signature and expiry and returns its
// claims. Malformed, tampered and expired tokens all fail with
// ErrInvalidToken.
func (s *SessionService) Validate(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrInvalidToken
		}
		return s.config.Secret, nil
	})
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, domain.ErrInvalidToken
	}

	return claims, nil
}
