package jwtx

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Issuer mints signed session tokens.
type Issuer interface {
	Issue(userID int64, now time.Time) (string, error)
	Validate() error
}

// validateUserID is the subject of the token Validate signs. It never leaves
// the process.
const validateUserID int64 = 1

// HS256Issuer signs tokens with a shared secret. It holds no mutable state
// and is safe for concurrent use.
type HS256Issuer struct {
	secret []byte
	ttl    time.Duration
}

// NewHS256Issuer returns an issuer for the given secret. A missing or short
// secret is a configuration error and should stop the process at startup.
func NewHS256Issuer(secret []byte, ttl time.Duration) (*HS256Issuer, error) {
	if len(secret) < MinSecretLength {
		return nil, fmt.Errorf("%w: need at least %d bytes, got %d", ErrWeakSecret, MinSecretLength, len(secret))
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}

	// Copy so later mutation of the caller's slice cannot change signatures
	key := make([]byte, len(secret))
	copy(key, secret)

	return &HS256Issuer{secret: key, ttl: ttl}, nil
}

// TTL reports the configured token lifetime.
func (s *HS256Issuer) TTL() time.Duration { return s.ttl }

// Issue signs {id, iat, exp} for userID.
func (s *HS256Issuer) Issue(userID int64, now time.Time) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, NewClaims(userID, s.ttl, now))
	return t.SignedString(s.secret)
}

// Validate signs a throwaway token and verifies it again, so a broken or
// zero-value issuer is caught by readiness checks rather than at login.
func (s *HS256Issuer) Validate() error {
	if len(s.secret) < MinSecretLength {
		return ErrWeakSecret
	}

	now := time.Now()
	token, err := s.Issue(validateUserID, now)
	if err != nil {
		return fmt.Errorf("jwtx: sign check token: %w", err)
	}
	claims, err := s.Verifier().Verify(token, now)
	if err != nil {
		return fmt.Errorf("jwtx: verify check token: %w", err)
	}
	if claims.UserID != validateUserID {
		return fmt.Errorf("%w: check token round trip", ErrInvalidClaim)
	}
	return nil
}

// Verifier returns a verifier sharing this issuer's secret.
func (s *HS256Issuer) Verifier() *HS256Verifier {
	return &HS256Verifier{secret: s.secret}
}
