// Package auth issues and parses the HS256 access tokens returned on login.
package auth

import (
	"errors"
	"time"

	"github.com/ajcloudsolutions/vmailapi/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims carries the mailbox identity and its admin flags.
// The username is stored in the standard "sub" claim.
type Claims struct {
	jwt.RegisteredClaims
	IsAdmin       bool `json:"is_admin,omitempty"`
	IsGlobalAdmin bool `json:"is_global_admin,omitempty"`
}

// Username returns the subject of the token.
func (c *Claims) Username() string {
	return c.Subject
}

// Admin reports whether the holder has domain or global admin rights.
func (c *Claims) Admin() bool {
	return c.IsAdmin || c.IsGlobalAdmin
}

func GenerateToken(username string, isAdmin, isGlobalAdmin bool, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		IsAdmin:       isAdmin,
		IsGlobalAdmin: isGlobalAdmin,
	})

	return token.SignedString(secretKey)
}

// ParseToken validates tokenString and returns its claims. Expired tokens
// yield common.ErrTokenExpired; any other failure yields common.ErrInvalidToken.
func ParseToken(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}

	if !token.Valid || claims.Subject == "" {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
