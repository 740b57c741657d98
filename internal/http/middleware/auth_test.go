package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/tendant/simple-auth/internal/auth"
	"github.com/tendant/simple-auth/internal/domain"
)

func newTestSessions() *auth.SessionService {
	return auth.NewSessionService(auth.SessionConfig{
		Secret: []byte("test-secret-key"),
		Issuer: "simple-auth-test",
	})
}

func TestAuth_HeaderValidation(t *testing.T) {
	tests := []struct {
		name           string
		header         string
		expectedStatus int
	}{
		{
			name:           "missing header",
			header:         "",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "wrong scheme",
			header:         "Basic dXNlcjpwYXNz",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "bearer without token",
			header:         "Bearer",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "bearer with garbage token",
			header:         "Bearer not-a-jwt",
			expectedStatus: http.StatusUnauthorized,
		},
	}

	mw := Auth(newTestSessions())
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("next handler should not be reached")
	})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/auth", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			mw(next).ServeHTTP(rec, req)

			if rec.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.expectedStatus)
			}
		})
	}
}

func TestAuth_ValidToken(t *testing.T) {
	sessions := newTestSessions()
	user := &domain.User{ID: uuid.New(), Name: "Alice", Email: "alice@x.com"}

	token, err := sessions.Issue(user)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	var gotUserID uuid.UUID
	var gotClaims *auth.SessionClaims
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := GetUserID(r.Context())
		if !ok {
			t.Error("user ID missing from context")
		}
		gotUserID = id
		claims, ok := GetClaims(r.Context())
		if !ok {
			t.Error("claims missing from context")
		}
		gotClaims = claims
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/auth", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	Auth(sessions)(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if gotUserID != user.ID {
		t.Errorf("user ID = %v, want %v", gotUserID, user.ID)
	}
	if gotClaims == nil || gotClaims.Email != "alice@x.com" {
		t.Errorf("claims = %+v, want email alice@x.com", gotClaims)
	}
}

func TestAuth_LowercaseBearerScheme(t *testing.T) {
	sessions := newTestSessions()
	user := &domain.User{ID: uuid.New(), Name: "Alice", Email: "alice@x.com"}

	token, err := sessions.Issue(user)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	reached := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
	})

	req := httptest.NewRequest(http.MethodGet, "/api/auth", nil)
	req.Header.Set("Authorization", "bearer "+token)
	rec := httptest.NewRecorder()

	Auth(sessions)(next).ServeHTTP(rec, req)

	if !reached {
		t.Error("scheme comparison should be case-insensitive")
	}
}
