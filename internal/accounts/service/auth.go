package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aussiebroadwan/accounts/internal/accounts/domain"
	"github.com/aussiebroadwan/accounts/internal/accounts/store"
	"github.com/aussiebroadwan/accounts/pkg/cryptox"
	"github.com/aussiebroadwan/accounts/pkg/jwtx"
	"github.com/aussiebroadwan/accounts/pkg/slogx"
)

type AuthService struct {
	Store  store.Store
	Hasher PasswordHasher
	Issuer jwtx.Issuer
	Now    func() time.Time
}

func (s *AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Authenticate exchanges a username and password for a signed token.
//
// An unknown username and a wrong password fail the same way, and an
// unknown username still pays for a full hash verification. Deactivation is
// only reported once the password has been proven.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (domain.TokenResponse, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return domain.TokenResponse{}, newValidationError("username", "username required")
	}
	if password == "" {
		return domain.TokenResponse{}, newValidationError("password", "password required")
	}

	logger := slogx.FromContext(ctx)

	u, err := s.Store.Users().GetUserByUsername(ctx, username)
	if errors.Is(err, store.ErrNotFound) {
		_ = s.Hasher.VerifyDummy(password)
		logger.Info("login_failed", "reason", "unknown_user")
		return domain.TokenResponse{}, ErrAuthenticationFailed
	}
	if err != nil {
		return domain.TokenResponse{}, fmt.Errorf("lookup user: %w", err)
	}

	if err := s.Hasher.Verify(password, u.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrMismatch) {
			logger.Info("login_failed", "reason", "bad_password", "user_id", u.ID)
			return domain.TokenResponse{}, ErrAuthenticationFailed
		}
		return domain.TokenResponse{}, fmt.Errorf("verify password: %w", err)
	}

	if !u.IsActive {
		logger.Info("login_failed", "reason", "deactivated", "user_id", u.ID)
		return domain.TokenResponse{}, ErrAccountDeactivated
	}

	token, err := s.Issuer.Issue(u.ID, s.now())
	if err != nil {
		return domain.TokenResponse{}, fmt.Errorf("issue token: %w", err)
	}

	logger.Info("login_succeeded", "user_id", u.ID)
	return domain.TokenResponse{Token: token}, nil
}
