package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aussiebroadwan/accounts/internal/accounts/domain"
	"github.com/aussiebroadwan/accounts/internal/accounts/store"
	"github.com/aussiebroadwan/accounts/pkg/slogx"
)

// PasswordHasher is satisfied by *cryptox.Hasher.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, encodedHash string) error
	VerifyDummy(password string) error
}

type CreateUserInput struct {
	Username  string
	Password  string
	FirstName string
	LastName  string
}

// UpdateUserInput carries a partial update. A nil field is left untouched.
type UpdateUserInput struct {
	Username  *string
	Password  *string
	FirstName *string
	LastName  *string
	IsActive  *bool
}

func (in UpdateUserInput) isEmpty() bool {
	return in.Username == nil &&
		in.Password == nil &&
		in.FirstName == nil &&
		in.LastName == nil &&
		in.IsActive == nil
}

type AccountService struct {
	Store  store.Store
	Hasher PasswordHasher
	Rules  ValidationRules
	Now    func() time.Time
}

func (s *AccountService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// Create validates and persists a new active user. Username uniqueness is
// left to the store constraint so two concurrent creates cannot both win.
func (s *AccountService) Create(ctx context.Context, in CreateUserInput) (domain.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)

	if err := s.Rules.validateCreate(in); err != nil {
		return domain.User{}, err
	}

	hash, err := s.Hasher.Hash(in.Password)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	now := s.now()
	u, err := s.Store.Users().CreateUser(ctx, domain.User{
		Username:     in.Username,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		PasswordHash: hash,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return domain.User{}, mapStoreErr(err)
	}

	slogx.FromContext(ctx).Info("user_created", "user_id", u.ID)
	return u, nil
}

func (s *AccountService) Get(ctx context.Context, id int64) (domain.User, error) {
	u, err := s.Store.Users().GetUserByID(ctx, id)
	if err != nil {
		return domain.User{}, mapStoreErr(err)
	}
	return u, nil
}

// List returns every user ordered by id.
func (s *AccountService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.Store.Users().ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// Update applies the supplied fields of in to user id. The read and the write
// share one transaction; concurrent updates are last writer wins.
func (s *AccountService) Update(ctx context.Context, id int64, in UpdateUserInput) (domain.User, error) {
	in.Username = trimPtr(in.Username)
	in.FirstName = trimPtr(in.FirstName)
	in.LastName = trimPtr(in.LastName)

	if err := s.Rules.validateUpdate(in); err != nil {
		return domain.User{}, err
	}
	if in.isEmpty() {
		return s.Get(ctx, id)
	}

	var newHash string
	if in.Password != nil {
		h, err := s.Hasher.Hash(*in.Password)
		if err != nil {
			return domain.User{}, fmt.Errorf("hash password: %w", err)
		}
		newHash = h
	}

	var updated domain.User
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		u, err := tx.Users().GetUserByID(ctx, id)
		if err != nil {
			return err
		}

		if in.Username != nil {
			u.Username = *in.Username
		}
		if in.FirstName != nil {
			u.FirstName = *in.FirstName
		}
		if in.LastName != nil {
			u.LastName = *in.LastName
		}
		if in.IsActive != nil {
			u.IsActive = *in.IsActive
		}
		if newHash != "" {
			u.PasswordHash = newHash
		}
		u.UpdatedAt = s.now()

		if err := tx.Users().UpdateUser(ctx, u); err != nil {
			return err
		}
		updated = u
		return nil
	})
	if err != nil {
		return domain.User{}, mapStoreErr(err)
	}

	slogx.FromContext(ctx).Info("user_updated", "user_id", id, "password_changed", newHash != "")
	return updated, nil
}

// Delete removes the user for good. Deleting twice reports ErrNotFound.
func (s *AccountService) Delete(ctx context.Context, id int64) error {
	if err := s.Store.Users().DeleteUser(ctx, id); err != nil {
		return mapStoreErr(err)
	}
	slogx.FromContext(ctx).Info("user_deleted", "user_id", id)
	return nil
}

func mapStoreErr(err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, store.ErrAlreadyExists):
		return ErrDuplicateUsername
	default:
		return err
	}
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
