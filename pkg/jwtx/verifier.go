package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verifier validates a token and gives you back the claims if it's legit.
type Verifier interface {
	Verify(token string, now time.Time) (Claims, error)
}

// HS256Verifier checks tokens minted by an HS256Issuer with the same secret.
type HS256Verifier struct {
	secret []byte
}

// NewHS256Verifier creates a verifier for secret.
func NewHS256Verifier(secret []byte) (*HS256Verifier, error) {
	if len(secret) < MinSecretLength {
		return nil, ErrWeakSecret
	}
	key := make([]byte, len(secret))
	copy(key, secret)
	return &HS256Verifier{secret: key}, nil
}

// Verify parses tokenStr, checks the signature and algorithm, and validates
// expiry against now.
func (v *HS256Verifier) Verify(tokenStr string, now time.Time) (Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)

	var claims Claims
	_, err := parser.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return Claims{}, ErrExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
			return Claims{}, fmt.Errorf("%w: %v", ErrInvalidSig, err)
		case errors.Is(err, jwt.ErrTokenMalformed):
			return Claims{}, fmt.Errorf("%w: %v", ErrMalformed, err)
		default:
			return Claims{}, fmt.Errorf("%w: %v", ErrInvalidClaim, err)
		}
	}

	if claims.UserID <= 0 {
		return Claims{}, ErrInvalidClaim
	}

	return claims, nil
}
