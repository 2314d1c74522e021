// Package token issues and validates the bearer tokens used by the
// property-management routes.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"homevest/internal/platform/middleware"
)

// Claims are the JWT claims carried by homevest access tokens.
type Claims struct {
	OwnerID string `json:"owner_id"`
	jwt.RegisteredClaims
}

// Service handles JWT creation and validation.
type Service struct {
	signingKey []byte
	issuer     string
}

func NewService(signingKey, issuer string) *Service {
	return &Service{signingKey: []byte(signingKey), issuer: issuer}
}

// GenerateAccessToken mints a signed owner token, used by dev tooling and tests.
func (s *Service) GenerateAccessToken(ownerID string, expiresIn time.Duration) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		OwnerID: ownerID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    s.issuer,
			ID:        uuid.NewString(),
		},
	})
	return t.SignedString(s.signingKey)
}

// ValidateToken parses and verifies a bearer token, returning middleware
// claims for the auth layer.
func (s *Service) ValidateToken(tokenString string) (*middleware.TokenClaims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.signingKey, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token claims")
	}
	if claims.OwnerID == "" {
		return nil, errors.New("token missing owner id")
	}
	return &middleware.TokenClaims{OwnerID: claims.OwnerID}, nil
}
