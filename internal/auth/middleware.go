package auth

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/baigojahanzaib/ajj-sales/pkg/web"
)

// Middleware rejects requests without a valid bearer token and injects the
// authenticated user id and role into the request context.
func Middleware(tokens *TokenIssuer, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			tokenString, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || tokenString == "" {
				web.RespondError(w, logger, http.StatusUnauthorized, "Missing bearer token")
				return
			}
			userID, role, err := tokens.Verify(tokenString)
			if err != nil {
				logger.DebugContext(r.Context(), "Token verification failed", "error", err)
				web.RespondError(w, logger, http.StatusUnauthorized, "Invalid token")
				return
			}
			next.ServeHTTP(w, r.WithContext(web.WithUser(r.Context(), userID, role)))
		})
	}
}

// RequireAdmin allows only requests whose token carries the admin role.
// It must be installed after Middleware.
func RequireAdmin(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := web.RoleFrom(r.Context())
			if !ok || role != RoleAdmin {
				web.RespondError(w, logger, http.StatusForbidden, "Admin access required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
