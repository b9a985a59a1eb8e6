package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/edvin/authd/internal/api/response"
	"github.com/edvin/authd/internal/core"
	"github.com/edvin/authd/internal/model"
)

type contextKey string

// UserKey is the context key under which the authenticated user is stored.
const UserKey contextKey = "user"

// Auth returns middleware that validates JWT Bearer tokens and injects the
// resolved user into context. The token subject is always re-resolved against
// the store; a stale token whose user is gone is rejected like a forged one.
func Auth(authSvc *core.AuthService, userSvc *core.UserService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				response.WriteError(w, http.StatusUnauthorized, "Missing token")
				return
			}

			token := strings.TrimPrefix(authHeader, "Bearer ")
			if token == authHeader || token == "" {
				response.WriteError(w, http.StatusUnauthorized, "Missing token")
				return
			}

			claims, err := authSvc.ValidateToken(token)
			if err != nil {
				response.WriteError(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			user, err := userSvc.GetByID(r.Context(), claims.Sub)
			if err != nil {
				zerolog.Ctx(r.Context()).Warn().Err(err).Str("sub", claims.Sub).Msg("token subject did not resolve")
				response.WriteError(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), UserKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUser extracts the authenticated user from the request context.
func GetUser(ctx context.Context) *model.User {
	user, _ := ctx.Value(UserKey).(*model.User)
	return user
}
