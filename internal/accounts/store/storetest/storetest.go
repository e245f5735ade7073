// Package storetest holds the behaviour every store.Store driver must share.
// Driver packages run it from their own tests against a real database.
package storetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aussiebroadwan/accounts/internal/accounts/domain"
	"github.com/aussiebroadwan/accounts/internal/accounts/store"
	"github.com/stretchr/testify/require"
)

// Factory returns a migrated store with an empty users table.
type Factory func(t *testing.T) store.Store

var testNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

// User returns a valid user row ready for CreateUser.
func User(username string) domain.User {
	return domain.User{
		Username:     username,
		FirstName:    "First",
		LastName:     "Last",
		PasswordHash: "$argon2id$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA",
		IsActive:     true,
		CreatedAt:    testNow,
		UpdatedAt:    testNow,
	}
}

// RunUsers runs the Users and transaction suite against stores from newStore.
// Each subtest gets its own store.
func RunUsers(t *testing.T, newStore Factory) {
	t.Run("migrations are idempotent", func(t *testing.T) {
		require.NoError(t, newStore(t).ApplyMigrations())
	})
	t.Run("crud", func(t *testing.T) { testCRUD(t, newStore(t)) })
	t.Run("duplicate username on create", func(t *testing.T) { testDuplicateCreate(t, newStore(t)) })
	t.Run("update to taken username", func(t *testing.T) { testUpdateTaken(t, newStore(t)) })
	t.Run("update missing user", func(t *testing.T) { testUpdateMissing(t, newStore(t)) })
	t.Run("list ordered by id", func(t *testing.T) { testListOrdered(t, newStore(t)) })
	t.Run("ids are not reused", func(t *testing.T) { testIDsNotReused(t, newStore(t)) })
	t.Run("tx rolls back on error", func(t *testing.T) { testTxRollback(t, newStore(t)) })
	t.Run("tx commits", func(t *testing.T) { testTxCommit(t, newStore(t)) })
}

func testCRUD(t *testing.T, s store.Store) {
	ctx := context.Background()

	created, err := s.Users().CreateUser(ctx, User("alice"))
	require.NoError(t, err)
	require.Positive(t, created.ID)
	require.Equal(t, "alice", created.Username)
	require.True(t, created.IsActive)
	require.True(t, created.CreatedAt.Equal(testNow))

	byID, err := s.Users().GetUserByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, created, byID)

	byName, err := s.Users().GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, created.ID, byName.ID)

	byID.Username = "alicia"
	byID.FirstName = "Alicia"
	byID.PasswordHash = "$argon2id$v=19$m=19456,t=2,p=1$c2FsdDI$aGFzaDI"
	byID.IsActive = false
	byID.UpdatedAt = byID.UpdatedAt.Add(time.Minute)
	require.NoError(t, s.Users().UpdateUser(ctx, byID))

	updated, err := s.Users().GetUserByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "alicia", updated.Username)
	require.Equal(t, "Alicia", updated.FirstName)
	require.Equal(t, "Last", updated.LastName)
	require.Equal(t, byID.PasswordHash, updated.PasswordHash)
	require.False(t, updated.IsActive)
	require.True(t, updated.CreatedAt.Equal(created.CreatedAt))
	require.True(t, updated.UpdatedAt.Equal(testNow.Add(time.Minute)))

	_, err = s.Users().GetUserByUsername(ctx, "alice")
	require.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, s.Users().DeleteUser(ctx, created.ID))
	_, err = s.Users().GetUserByID(ctx, created.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
	require.ErrorIs(t, s.Users().DeleteUser(ctx, created.ID), store.ErrNotFound)
}

func testDuplicateCreate(t *testing.T, s store.Store) {
	ctx := context.Background()

	_, err := s.Users().CreateUser(ctx, User("admin"))
	require.NoError(t, err)

	_, err = s.Users().CreateUser(ctx, User("admin"))
	require.ErrorIs(t, err, store.ErrAlreadyExists)
}

func testUpdateTaken(t *testing.T, s store.Store) {
	ctx := context.Background()

	_, err := s.Users().CreateUser(ctx, User("admin"))
	require.NoError(t, err)
	other, err := s.Users().CreateUser(ctx, User("admin2"))
	require.NoError(t, err)

	other.Username = "admin"
	require.ErrorIs(t, s.Users().UpdateUser(ctx, other), store.ErrAlreadyExists)
}

func testUpdateMissing(t *testing.T, s store.Store) {
	u := User("ghost")
	u.ID = 424242
	require.ErrorIs(t, s.Users().UpdateUser(context.Background(), u), store.ErrNotFound)
}

func testListOrdered(t *testing.T, s store.Store) {
	ctx := context.Background()

	users, err := s.Users().ListUsers(ctx)
	require.NoError(t, err)
	require.Empty(t, users)

	for _, name := range []string{"zed", "amy", "bob"} {
		_, err := s.Users().CreateUser(ctx, User(name))
		require.NoError(t, err)
	}

	users, err = s.Users().ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 3)
	require.Equal(t, "zed", users[0].Username)
	require.Less(t, users[0].ID, users[1].ID)
	require.Less(t, users[1].ID, users[2].ID)
}

func testIDsNotReused(t *testing.T, s store.Store) {
	ctx := context.Background()

	first, err := s.Users().CreateUser(ctx, User("one"))
	require.NoError(t, err)
	require.NoError(t, s.Users().DeleteUser(ctx, first.ID))

	second, err := s.Users().CreateUser(ctx, User("two"))
	require.NoError(t, err)
	require.Greater(t, second.ID, first.ID)
}

func testTxRollback(t *testing.T, s store.Store) {
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.Users().CreateUser(ctx, User("temp")); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = s.Users().GetUserByUsername(ctx, "temp")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func testTxCommit(t *testing.T, s store.Store) {
	ctx := context.Background()

	require.NoError(t, s.WithTx(ctx, func(tx store.Tx) error {
		_, err := tx.Users().CreateUser(ctx, User("kept"))
		return err
	}))

	_, err := s.Users().GetUserByUsername(ctx, "kept")
	require.NoError(t, err)
}
