package middleware

import (
	"net/http"
	"strings"

	"sheikhdin-booking/internal/data/repository"
	"sheikhdin-booking/pkg/utils"

	"go.uber.org/zap"
)

// Auth validates the bearer token against the session store and puts the
// caller identity on the request context. Every booking/calendar route runs
// behind this.
func Auth(sessionRepo repository.SessionRepository, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.ResponseUnauthorized(w, "Unauthorized")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				utils.ResponseUnauthorized(w, "Unauthorized")
				return
			}

			token := parts[1]

			session, err := sessionRepo.FindValidSession(r.Context(), token)
			if err != nil {
				logger.Error("Failed to validate session", zap.Error(err))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}

			if session == nil {
				logger.Warn("Invalid or expired session")
				utils.ResponseUnauthorized(w, "Unauthorized")
				return
			}

			ctx := utils.SetUserContext(r.Context(), session.UserID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
