package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticValidator struct {
	claims *TokenClaims
	err    error
}

func (v staticValidator) ValidateToken(string) (*TokenClaims, error) {
	return v.claims, v.err
}

func TestRequireAuth(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)

	protected := func(validator TokenValidator) http.Handler {
		return RequireAuth(validator, logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(GetOwnerID(r.Context())))
		}))
	}

	t.Run("valid token passes through with owner in context", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/properties", nil)
		req.Header.Set("Authorization", "Bearer good-token")
		rec := httptest.NewRecorder()

		protected(staticValidator{claims: &TokenClaims{OwnerID: "owner-1"}}).ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "owner-1", rec.Body.String())
	})

	t.Run("missing header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/properties", nil)
		rec := httptest.NewRecorder()

		protected(staticValidator{}).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("non-bearer scheme", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/properties", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		rec := httptest.NewRecorder()

		protected(staticValidator{}).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("rejected token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/properties", nil)
		req.Header.Set("Authorization", "Bearer bad-token")
		rec := httptest.NewRecorder()

		protected(staticValidator{err: errors.New("signature mismatch")}).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
