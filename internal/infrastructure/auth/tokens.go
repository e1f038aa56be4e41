// Package auth handles the delegated OAuth login flow and the session
// tokens that gate access to the API.
package auth

import (
	"fmt"
	"time"

	"github.com/fridgelens/v1/internal/infrastructure/config"
	apperrors "github.com/fridgelens/v1/pkg/errors"
	"github.com/golang-jwt/jwt/v5"
)

// Claims are the session token claims minted after a successful OAuth
// exchange.
type Claims struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"picture,omitempty"`
	jwt.RegisteredClaims
}

// TokenService mints and verifies signed session tokens.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService creates a token service from auth configuration.
func NewTokenService(cfg config.AuthConfig) *TokenService {
	return &TokenService{
		secret: []byte(cfg.JWTSecret),
		ttl:    cfg.TokenTTL,
	}
}

// Issue mints a session token for an authenticated identity.
func (s *TokenService) Issue(info UserInfo) (string, error) {
	now := time.Now()
	claims := Claims{
		Name:    info.Name,
		Email:   info.Email,
		Picture: info.Picture,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   info.Sub,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			Issuer:    "fridgelens",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a session token.
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, apperrors.NewUnauthorizedError("Invalid or expired session token").WithCause(err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, apperrors.NewUnauthorizedError("Invalid session token")
	}
	return claims, nil
}
