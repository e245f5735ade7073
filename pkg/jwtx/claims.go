package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL is how long a login token stays valid.
const DefaultTokenTTL = 60 * 24 * time.Hour

// Claims are the session token claims. The user id travels as "id" rather
// than "sub" to keep the wire format clients already decode.
type Claims struct {
	UserID int64 `json:"id"`

	jwt.RegisteredClaims
}

// NewClaims builds the claims for userID expiring ttl after now.
func NewClaims(userID int64, ttl time.Duration, now time.Time) Claims {
	return Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
}

// ValidateExpiry ensures the token hasn't expired as of now.
func (c *Claims) ValidateExpiry(now time.Time) error {
	if c.ExpiresAt == nil {
		return ErrInvalidClaim
	}
	if !now.Before(c.ExpiresAt.Time) {
		return ErrExpired
	}
	return nil
}
