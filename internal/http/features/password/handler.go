package password

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/tendant/simple-auth/internal/auth"
	"github.com/tendant/simple-auth/internal/domain"
	"github.com/tendant/simple-auth/internal/httputil"
	"github.com/tendant/simple-auth/internal/notification"
)

// Handler handles the forgot/reset password endpoints.
type Handler struct {
	logger       *slog.Logger
	service      *auth.Service
	emailService *notification.EmailService
	appBaseURL   string
}

// NewHandler creates a new password handler. emailService may be nil.
func NewHandler(logger *slog.Logger, service *auth.Service, emailService *notification.EmailService, appBaseURL string) *Handler {
	return &Handler{
		logger:       logger,
		service:      service,
		emailService: emailService,
		appBaseURL:   appBaseURL,
	}
}

// ForgotRequest represents a forgot-password request.
type ForgotRequest struct {
	Email string `json:"email"`
}

// ResetRequest represents a password reset request.
type ResetRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// Forgot issues a password reset token.
// POST /api/password/forgot
func (h *Handler) Forgot(w http.ResponseWriter, r *http.Request) {
	var req ForgotRequest
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

	token, err := h.service.ForgotPassword(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			httputil.Error(w, http.StatusNotFound, "User not found")
			return
		}
		h.logger.Error("failed to issue reset token", "error", err)
		httputil.Error(w, http.StatusInternalServerError, "Server error")
		return
	}

	if h.emailService != nil {
		resetURL := fmt.Sprintf("%s/reset-password?token=%s", h.appBaseURL, token)
		if err := h.emailService.SendPasswordResetEmail(req.Email, resetURL); err != nil {
			h.logger.Error("failed to send password reset email", "error", err)
		}
	}

	httputil.Success(w, http.StatusCreated, "Password reset has been sent", map[string]any{
		"token": token,
	})
}

// Reset consumes a reset token and sets a new password.
// POST /api/password/reset
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	var req ResetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var errs []httputil.FieldError
	if req.Token == "" {
		errs = append(errs, httputil.FieldError{Param: "token", Msg: "Token is required"})
	}
	if req.Password == "" {
		errs = append(errs, httputil.FieldError{Param: "password", Msg: "Password is required"})
	}
	if len(errs) > 0 {
		httputil.Validation(w, errs)
		return
	}

	err := h.service.ResetPassword(r.Context(), req.Token, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrVerificationTokenNotFound):
			httputil.Error(w, http.StatusBadRequest, "Token is not valid")
		case errors.Is(err, domain.ErrUserNotFound):
			httputil.Error(w, http.StatusNotFound, "User not found")
		default:
			h.logger.Error("failed to reset password", "error", err)
			httputil.Error(w, http.StatusInternalServerError, "Server error")
		}
		return
	}

	httputil.Success(w, http.StatusOK, "Password has been updated", nil)
}
