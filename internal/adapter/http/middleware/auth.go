package middleware

import (
	"context"
	"net/http"
	"strings"

	"securebank/internal/infrastructure/auth"
)

// ContextKey is the type for context keys
type ContextKey string

// AccountContextKey is the context key for the authenticated account id.
const AccountContextKey ContextKey = "account_id"

// AuthMiddleware requires a valid Bearer token and stores the account id it
// is bound to in the request context.
func AuthMiddleware(jwtManager *auth.JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "missing authorization header", http.StatusUnauthorized)
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				http.Error(w, "invalid authorization header format", http.StatusUnauthorized)
				return
			}

			claims, err := jwtManager.Verify(parts[1])
			if err != nil {
				http.Error(w, "invalid or expired token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), AccountContextKey, claims.AccountID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AccountFromContext extracts the authenticated account id from context.
func AccountFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(AccountContextKey).(string)
	return id, ok
}
