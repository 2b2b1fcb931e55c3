package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

type contextKey string

// principalKey carries the authenticated user resolved by the auth middleware
const principalKey contextKey = "principal"

// Authenticator returns middleware that resolves the acting principal from a
// bearer token. Authentication itself is an external concern; this layer only
// maps already-issued tokens to user IDs so handlers can pass the principal
// to the services explicitly.
func Authenticator(tokens map[string]uuid.UUID) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				respondError(w, http.StatusUnauthorized, "missing authorization header")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				respondError(w, http.StatusUnauthorized, "invalid authorization header format")
				return
			}

			principal, ok := tokens[parts[1]]
			if !ok {
				respondError(w, http.StatusUnauthorized, "invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), principalKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// principalFrom extracts the authenticated user set by Authenticator
func principalFrom(ctx context.Context) (uuid.UUID, bool) {
	principal, ok := ctx.Value(principalKey).(uuid.UUID)
	return principal, ok
}
