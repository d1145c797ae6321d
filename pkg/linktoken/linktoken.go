// Package linktoken issues short-lived signed tokens for file download links.
package linktoken

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	signingSecret = []byte("change-me-in-production")
	tokenTTL      = 15 * time.Minute
)

type Claims struct {
	FileID uuid.UUID `json:"fileID"`
	jwt.RegisteredClaims
}

func Configure(secret string, ttl time.Duration) {
	if secret != "" {
		signingSecret = []byte(secret)
	}
	if ttl > 0 {
		tokenTTL = ttl
	}
}

func Generate(fileID uuid.UUID) (string, error) {
	now := time.Now()
	claims := Claims{
		FileID: fileID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   fileID.String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(signingSecret)
}

func Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return signingSecret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return claims, nil
}
