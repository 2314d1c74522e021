package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
)

// TokenValidator validates bearer tokens on management routes.
type TokenValidator interface {
	ValidateToken(tokenString string) (*TokenClaims, error)
}

// TokenClaims carries the identity extracted from a validated token.
type TokenClaims struct {
	OwnerID string
}

type contextKeyOwnerID struct{}

// GetOwnerID retrieves the authenticated owner id from the context.
func GetOwnerID(ctx context.Context) string {
	id, _ := ctx.Value(contextKeyOwnerID{}).(string)
	return id
}

// RequireAuth enforces a valid bearer token and stores the owner id in context.
func RequireAuth(validator TokenValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
				return
			}

			claims, err := validator.ValidateToken(token)
			if err != nil {
				logger.WarnContext(r.Context(), "token validation failed",
					"request_id", GetRequestID(r.Context()),
					"error", err.Error(),
				)
				http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), contextKeyOwnerID{}, claims.OwnerID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
