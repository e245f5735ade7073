//go:build e2e

package accounts_test

import (
	"net/http"
	"testing"

	"github.com/aussiebroadwan/accounts/pkg/accountsdk"
	"github.com/stretchr/testify/require"
)

func TestUsersCRUD(t *testing.T) {
	client := setupAccountsContainer(t, nil)
	ctx := t.Context()

	admin := createAdmin(t, client)

	t.Run("duplicate username rejected", func(t *testing.T) {
		_, err := client.CreateUser(ctx, accountsdk.CreateUserRequest{
			Username: adminUsername, Password: "another-pass", FirstName: "A", LastName: "B",
		})
		assertAPIError(t, err, http.StatusBadRequest, accountsdk.ErrorCodeDuplicateUsername)
	})

	t.Run("get and list", func(t *testing.T) {
		got, err := client.GetUser(ctx, admin.ID)
		require.NoError(t, err)
		require.Equal(t, adminUsername, got.Username)

		users, err := client.ListUsers(ctx)
		require.NoError(t, err)
		require.Len(t, users, 1)
	})

	t.Run("partial update", func(t *testing.T) {
		name := "Root"
		updated, err := client.UpdateUser(ctx, admin.ID, accountsdk.UpdateUserRequest{FirstName: &name})
		require.NoError(t, err)
		require.Equal(t, "Root", updated.FirstName)
		require.Equal(t, "User", updated.LastName)
	})

	t.Run("delete twice", func(t *testing.T) {
		require.NoError(t, client.DeleteUser(ctx, admin.ID))

		err := client.DeleteUser(ctx, admin.ID)
		assertAPIError(t, err, http.StatusNotFound, accountsdk.ErrorCodeNotFound)

		_, err = client.GetUser(ctx, admin.ID)
		assertAPIError(t, err, http.StatusNotFound, accountsdk.ErrorCodeNotFound)
	})
}

func TestUsersConfigurableLimits(t *testing.T) {
	client := setupAccountsContainer(t, map[string]string{
		"ACCOUNTS_PASSWORD_MIN_LENGTH": "12",
	})

	_, err := client.CreateUser(t.Context(), accountsdk.CreateUserRequest{
		Username: "alice", Password: "password123", FirstName: "Alice", LastName: "Smith",
	})
	assertAPIError(t, err, http.StatusBadRequest, accountsdk.ErrorCodeValidation)
}
