package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/tendant/simple-auth/internal/auth"
	"github.com/tendant/simple-auth/internal/httputil"
)

type contextKey string

const (
	// UserIDKey is the context key for the authenticated user ID.
	UserIDKey contextKey = "user_id"
	// ClaimsKey is the context key for the session claims.
	ClaimsKey contextKey = "claims"
)

// Auth creates middleware that validates bearer session tokens from the
// Authorization header. A present header with a non-Bearer scheme is a 400;
// a missing, malformed or expired token is a 401.
func Auth(sessions *auth.SessionService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				httputil.Error(w, http.StatusUnauthorized, "Authorization header is required")
				return
			}

			parts := strings.SplitN(header, " ", 2)
			if !strings.EqualFold(parts[0], "Bearer") {
				httputil.Error(w, http.StatusBadRequest, "Authorization type must be Bearer")
				return
			}
			if len(parts) != 2 || parts[1] == "" {
				httputil.Error(w, http.StatusUnauthorized, "Bearer token is required")
				return
			}

			claims, err := sessions.Validate(parts[1])
			if err != nil {
				httputil.Error(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			userID, err := claims.UserID()
			if err != nil {
				httputil.Error(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			ctx = context.WithValue(ctx, ClaimsKey, claims)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserID extracts the authenticated user ID from the request context.
func GetUserID(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserIDKey).(uuid.UUID)
	return userID, ok
}

// GetClaims extracts the session claims from the request context.
func GetClaims(ctx context.Context) (*auth.SessionClaims, bool) {
	claims, ok := ctx.Value(ClaimsKey).(*auth.SessionClaims)
	return claims, ok
}
