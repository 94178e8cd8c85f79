// Package token issues and verifies the JWT credentials that carry the
// actor identity between requests.
package token

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/conduitapp/conduit/internal/pkg/env"
)

var ErrMissingSecret = errors.New("JWT_SECRET is not configured")

type Claims struct {
	UserID   uint   `json:"uid"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Issue signs an HS256 token for the given user identity. Expiry is
// controlled by JWT_EXPIRY_MINUTES (default 24h).
func Issue(userID uint, username string) (string, error) {
	secret := env.GetEnv("JWT_SECRET", "")
	if secret == "" {
		return "", ErrMissingSecret
	}

	expiryMinutes, err := strconv.Atoi(env.GetEnv("JWT_EXPIRY_MINUTES", "1440"))
	if err != nil || expiryMinutes <= 0 {
		expiryMinutes = 1440
	}

	now := time.Now()
	claims := &Claims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expiryMinutes) * time.Minute)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   strconv.FormatUint(uint64(userID), 10),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

// Verify parses and validates a token string and returns its claims.
func Verify(tokenString string) (*Claims, error) {
	secret := env.GetEnv("JWT_SECRET", "")
	if secret == "" {
		return nil, ErrMissingSecret
	}

	claims := &Claims{}
	t, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !t.Valid {
		return nil, jwt.ErrSignatureInvalid
	}

	return claims, nil
}
