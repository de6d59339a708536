// Package auth implements the stateless credential primitives: signed
// bearer tokens (HS256 JWT) and one-way password hashing (bcrypt).
package auth

import (
	"errors"
	"time"

	"github.com/AnuraagTripathy/coding-assessment/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// GenerateToken mints a signed token whose subject is the username and
// whose expiry is now + validityDuration. Tokens are self-contained and
// never persisted; validity is recomputed from the signature and expiry
// on every use.
func GenerateToken(username string, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   username,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GetUsernameFromToken validates the signature and expiry of tokenString
// and returns its subject. No claim is trusted before validation.
func GetUsernameFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &jwt.RegisteredClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) { return secretKey, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", common.ErrInvalidToken
	}

	if !token.Valid || claims.Subject == "" {
		return "", common.ErrInvalidToken
	}

	return claims.Subject, nil
}
