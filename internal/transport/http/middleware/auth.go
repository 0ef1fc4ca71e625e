package middleware

import (
	"context"
	"net/http"
	"strings"
)

type contextKey string

const tokenKey contextKey = "token"

// Auth extracts the bearer token and stashes it in the request context.
// The token is opaque at this layer: resolution happens inside the
// service guard, so a bogus token still reaches the core and comes
// back as an access error there.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			http.Error(w, `{"error":{"code":"UNAUTHORIZED","message":"Missing bearer token"}}`, http.StatusUnauthorized)
			return
		}

		token := strings.TrimPrefix(header, "Bearer ")
		ctx := context.WithValue(r.Context(), tokenKey, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Token extracts the bearer token from the request context.
func Token(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey).(string)
	return token
}
