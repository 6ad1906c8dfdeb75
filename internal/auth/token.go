// File: internal/auth/token.go
package auth

import (
	"fmt"
	"time"

	"plusone_backend/internal/common"
	"plusone_backend/internal/config"
	"plusone_backend/internal/user"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenService issues and validates HS256 access tokens.
type TokenService struct {
	secret []byte
	expiry time.Duration
}

// NewTokenService creates a token service from the loaded configuration.
func NewTokenService(cfg *config.Config) *TokenService {
	return &TokenService{secret: []byte(cfg.JWTSecret), expiry: cfg.JWTExpiry}
}

type accessClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// GenerateAccessToken issues a signed token for the account. The subject is
// the account ID.
func (s *TokenService) GenerateAccessToken(u *user.User) (string, error) {
	now := time.Now()
	claims := accessClaims{
		Email: u.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("signing access token: %w", err)
	}
	return signed, nil
}

// ValidateAccessToken verifies the signature and expiry and returns the
// account ID and email embedded in the token.
func (s *TokenService) ValidateAccessToken(tokenString string) (uuid.UUID, string, error) {
	claims := &accessClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, "", common.ErrUnauthorized.WithDetails("Invalid or expired token.")
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, "", common.ErrUnauthorized.WithDetails("Token subject is not a valid user ID.")
	}
	return userID, claims.Email, nil
}
