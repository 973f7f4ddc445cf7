package middleware

import (
	"context"
	"net/http"
	"strings"
)

type ctxKey string

const tokenKey ctxKey = "customerAccessToken"

// TokenAuth is a middleware that enforces a customer access token on
// account-scoped routes.
//
// The gateway is stateless: each request carries the shopper's bearer token
// in the Authorization header, and the platform itself decides whether the
// token is still valid. The middleware only requires presence and stores
// the token in the request context for handlers to forward.
func TokenAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			http.Error(w, "customer access token required", http.StatusUnauthorized)
			return
		}
		ctx := context.WithValue(r.Context(), tokenKey, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetTokenFromContext extracts the customer access token from the request
// context. Returns an empty string if not found.
func GetTokenFromContext(ctx context.Context) string {
	val := ctx.Value(tokenKey)
	if s, ok := val.(string); ok {
		return s
	}
	return ""
}
