package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tendant/simple-auth/internal/auth"
	"github.com/tendant/simple-auth/internal/config"
	authfeature "github.com/tendant/simple-auth/internal/http/features/auth"
	"github.com/tendant/simple-auth/internal/http/features/password"
	"github.com/tendant/simple-auth/internal/http/middleware"
	"github.com/tendant/simple-auth/internal/httputil"
	"github.com/tendant/simple-auth/internal/notification"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Logger             *slog.Logger
	AuthService        *auth.Service
	SessionService     *auth.SessionService
	EmailService       *notification.EmailService
	AppBaseURL         string
	MaxRequestBodySize int64
	SecurityHeaders    config.SecurityHeadersConfig
}

// NewRouter creates a new HTTP router with all routes registered.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recover(cfg.Logger))
	r.Use(middleware.Logging(cfg.Logger))
	r.Use(middleware.SecurityHeaders(cfg.SecurityHeaders))
	r.Use(middleware.RequestSizeLimit(cfg.MaxRequestBodySize))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.Success(w, http.StatusOK, "ok", nil)
	})

	authHandler := authfeature.NewHandler(cfg.Logger, cfg.AuthService, cfg.EmailService, cfg.AppBaseURL)
	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Get("/verify/{token}", authHandler.Verify)
		r.Post("/verify/resend", authHandler.ResendVerification)
		r.Post("/login", authHandler.Login)
		r.With(middleware.Auth(cfg.SessionService)).Get("/", authHandler.Me)
	})

	passwordHandler := password.NewHandler(cfg.Logger, cfg.AuthService, cfg.EmailService, cfg.AppBaseURL)
	r.Route("/api/password", func(r chi.Router) {
		r.Post("/forgot", passwordHandler.Forgot)
		r.Post("/reset", passwordHandler.Reset)
	})

	return r
}
