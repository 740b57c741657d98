package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tendant/simple-auth/internal/auth"
	"github.com/tendant/simple-auth/internal/domain"
	"github.com/tendant/simple-auth/internal/http/middleware"
	"github.com/tendant/simple-auth/internal/httputil"
	"github.com/tendant/simple-auth/internal/notification"
)

// Handler handles the registration, verification and login endpoints.
type Handler struct {
	logger       *slog.Logger
	service      *auth.Service
	emailService *notification.EmailService
	appBaseURL   string
}

// NewHandler creates a new auth handler. emailService may be nil; tokens
// are always returned in the response body.
func NewHandler(logger *slog.Logger, service *auth.Service, emailService *notification.EmailService, appBaseURL string) *Handler {
	return &Handler{
		logger:       logger,
		service:      service,
		emailService: emailService,
		appBaseURL:   appBaseURL,
	}
}

// RegisterRequest represents a registration request.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ResendRequest represents a verification resend request.
type ResendRequest struct {
	Email string `json:"email"`
}

// UserResponse is the public view of a user. The password hash is never
// serialized.
type UserResponse struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Verified   bool       `json:"verified"`
	VerifiedAt *time.Time `json:"verified_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

func newUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:         user.ID.String(),
		Name:       user.Name,
		Email:      user.Email,
		Verified:   user.Verified,
		VerifiedAt: user.VerifiedAt,
		CreatedAt:  user.CreatedAt,
	}
}

// Register handles user registration.
// POST /api/auth/register
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var errs []httputil.FieldError
	if req.Name == "" {
		errs = append(errs, httputil.FieldError{Param: "name", Msg: "Name is required"})
	}
	if req.Email == "" {
		errs = append(errs, httputil.FieldError{Param: "email", Msg: "Email is required"})
	} else if auth.ValidateEmail(req.Email) != nil {
		errs = append(errs, httputil.FieldError{Param: "email", Msg: "Email is not valid"})
	}
	if req.Password == "" {
		errs = append(errs, httputil.FieldError{Param: "password", Msg: "Password is required"})
	}
	if len(errs) > 0 {
		httputil.Validation(w, errs)
		return
	}

	user, token, err := h.service.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrUserAlreadyExists) {
			httputil.Validation(w, []httputil.FieldError{
				{Param: "email", Msg: "Email already registered"},
			})
			return
		}
		h.logger.Error("failed to register user", "error", err)
		httputil.Error(w, http.StatusInternalServerError, "Server error")
		return
	}

	h.sendVerificationEmail(user.Email, token)

	httputil.Success(w, http.StatusCreated, "Register success, please activate your account", map[string]any{
		"user":  newUserResponse(user),
		"token": token,
	})
}

// Verify handles account verification.
// GET /api/auth/verify/{token}
func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	err := h.service.Verify(r.Context(), token)
	if err != nil {
		if errors.Is(err, domain.ErrVerificationTokenNotFound) {
			httputil.Error(w, http.StatusNotFound, "No verification data found")
			return
		}
		h.logger.Error("failed to verify account", "error", err)
		httputil.Error(w, http.StatusInternalServerError, "Server error")
		return
	}

	httputil.Success(w, http.StatusOK, "You successfully verified your account", nil)
}

// Login handles user login.
// POST /api/auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var errs []httputil.FieldError
	if req.Email == "" {
		errs = append(errs, httputil.FieldError{Param: "email", Msg: "Email is required"})
	}
	if req.Password == "" {
		errs = append(errs, httputil.FieldError{Param: "password", Msg: "Password is required"})
	}
	if len(errs) > 0 {
		httputil.Validation(w, errs)
		return
	}

	token, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			// Same response for unknown email and wrong password.
			httputil.Error(w, http.StatusUnprocessableEntity, "Invalid credentials")
		case errors.Is(err, domain.ErrAccountNotVerified):
			httputil.Error(w, http.StatusBadRequest, "Your account is not verified")
		default:
			h.logger.Error("failed to login", "error", err)
			httputil.Error(w, http.StatusInternalServerError, "Server error")
		}
		return
	}

	httputil.Success(w, http.StatusOK, "Login success", map[string]any{
		"token": token,
	})
}

// ResendVerification issues a fresh registration token.
// POST /api/auth/verify/resend
func (h *Handler) ResendVerification(w http.ResponseWriter, r *http.Request) {
	var req ResendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Email == "" {
		httputil.Validation(w, []httputil.FieldError{
			{Param: "email", Msg: "Email is required"},
		})
		return
	}

	token, err := h.service.ResendVerification(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			httputil.Error(w, http.StatusNotFound, "Email not found")
			return
		}
		h.logger.Error("failed to resend verification", "error", err)
		httputil.Error(w, http.StatusInternalServerError, "Server error")
		return
	}

	h.sendVerificationEmail(req.Email, token)

	httputil.Success(w, http.StatusCreated, "Verification has been sent", map[string]any{
		"token": token,
	})
}

// Me returns the authenticated user's profile.
// GET /api/auth
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		httputil.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := h.service.AuthenticatedUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			httputil.Error(w, http.StatusNotFound, "User not found")
			return
		}
		h.logger.Error("failed to load authenticated user", "error", err, "user_id", userID)
		httputil.Error(w, http.StatusInternalServerError, "Server error")
		return
	}

	httputil.Success(w, http.StatusOK, fmt.Sprintf("Hello %s", user.Name), map[string]any{
		"user": newUserResponse(user),
	})
}

// sendVerificationEmail delivers the activation link when SMTP is
// configured. Delivery failures are logged, never surfaced: the token is in
// the response either way.
func (h *Handler) sendVerificationEmail(email, token string) {
	if h.emailService == nil {
		return
	}
	verifyURL := fmt.Sprintf("%s/api/auth/verify/%s", h.appBaseURL, token)
	if err := h.emailService.SendVerificationEmail(email, verifyURL); err != nil {
		h.logger.Error("failed to send verification email", "error", err)
		return
	}
	h.logger.Info("verification email sent")
}
