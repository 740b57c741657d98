package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/tendant/simple-auth/internal/httputil"
)

// Recover creates middleware that turns handler panics into a generic 500
// response instead of tearing down the connection.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error("panic recovered",
						"panic", rec,
						"path", r.URL.Path,
						"stack", string(debug.Stack()),
					)
					httputil.Error(w, http.StatusInternalServerError, "Server error")
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
