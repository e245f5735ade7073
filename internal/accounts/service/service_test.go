package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/accounts/internal/accounts/store"
	"github.com/aussiebroadwan/accounts/internal/accounts/store/drivers/sqlite"
	"github.com/aussiebroadwan/accounts/pkg/cryptox"
	"github.com/aussiebroadwan/accounts/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	store    *sqlite.Store
	accounts *AccountService
	auth     *AuthService
	issuer   *jwtx.HS256Issuer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	hasher, err := cryptox.NewHasher("test-pepper")
	require.NoError(t, err)

	issuer, err := jwtx.NewHS256Issuer([]byte(strings.Repeat("s", 32)), 0)
	require.NoError(t, err)

	clock := func() time.Time { return testNow }

	return &fixture{
		store:    st,
		accounts: &AccountService{Store: st, Hasher: hasher, Rules: DefaultValidationRules(), Now: clock},
		auth:     &AuthService{Store: st, Hasher: hasher, Issuer: issuer, Now: clock},
		issuer:   issuer,
	}
}

func ptr[T any](v T) *T { return &v }

func validInput(username string) CreateUserInput {
	return CreateUserInput{
		Username:  username,
		Password:  "password123",
		FirstName: "Ada",
		LastName:  "Lovelace",
	}
}

func TestCreateAndAuthenticate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	u, err := f.accounts.Create(ctx, validInput("admin"))
	require.NoError(t, err)
	require.Positive(t, u.ID)
	require.True(t, u.IsActive)
	require.NotEqual(t, "password123", u.PasswordHash)
	require.True(t, strings.HasPrefix(u.PasswordHash, "$argon2id$"))

	resp, err := f.auth.Authenticate(ctx, "admin", "password123")
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)

	claims, err := f.issuer.Verifier().Verify(resp.Token, testNow)
	require.NoError(t, err)
	require.Equal(t, u.ID, claims.UserID)
	require.Equal(t, testNow.Add(60*24*time.Hour).Unix(), claims.ExpiresAt.Unix())
}

func TestCreateValidation(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name  string
		edit  func(*CreateUserInput)
		field string
	}{
		{"empty username", func(in *CreateUserInput) { in.Username = "" }, "username"},
		{"blank username", func(in *CreateUserInput) { in.Username = "   " }, "username"},
		{"long username", func(in *CreateUserInput) { in.Username = strings.Repeat("u", 151) }, "username"},
		{"short password", func(in *CreateUserInput) { in.Password = "1234567" }, "password"},
		{"long password", func(in *CreateUserInput) { in.Password = strings.Repeat("p", 129) }, "password"},
		{"empty first name", func(in *CreateUserInput) { in.FirstName = "" }, "first_name"},
		{"long first name", func(in *CreateUserInput) { in.FirstName = strings.Repeat("f", 31) }, "first_name"},
		{"empty last name", func(in *CreateUserInput) { in.LastName = "" }, "last_name"},
		{"long last name", func(in *CreateUserInput) { in.LastName = strings.Repeat("l", 151) }, "last_name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput("someone")
			tt.edit(&in)

			_, err := f.accounts.Create(context.Background(), in)
			require.ErrorIs(t, err, ErrValidation)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			require.Contains(t, verr.Fields, tt.field)
		})
	}
}

func TestCreateBoundaryLengthsAccepted(t *testing.T) {
	f := newFixture(t)

	in := CreateUserInput{
		Username:  strings.Repeat("u", 150),
		Password:  "12345678",
		FirstName: strings.Repeat("é", 30),
		LastName:  strings.Repeat("l", 150),
	}
	_, err := f.accounts.Create(context.Background(), in)
	require.NoError(t, err)

	in.Username = "maxpassword"
	in.Password = strings.Repeat("p", 128)
	_, err = f.accounts.Create(context.Background(), in)
	require.NoError(t, err)
}

func TestCreateDuplicateUsername(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.accounts.Create(ctx, validInput("admin"))
	require.NoError(t, err)

	_, err = f.accounts.Create(ctx, validInput("admin"))
	require.ErrorIs(t, err, ErrDuplicateUsername)

	users, err := f.accounts.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
}

func TestGetListDelete(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	users, err := f.accounts.List(ctx)
	require.NoError(t, err)
	require.Empty(t, users)

	a, err := f.accounts.Create(ctx, validInput("a"))
	require.NoError(t, err)
	b, err := f.accounts.Create(ctx, validInput("b"))
	require.NoError(t, err)

	got, err := f.accounts.Get(ctx, b.ID)
	require.NoError(t, err)
	require.Equal(t, "b", got.Username)

	users, err = f.accounts.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	require.Equal(t, a.ID, users[0].ID)

	require.NoError(t, f.accounts.Delete(ctx, a.ID))
	_, err = f.accounts.Get(ctx, a.ID)
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, f.accounts.Delete(ctx, a.ID), ErrNotFound)

	_, err = f.accounts.Get(ctx, 9999)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUpdatePartial(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	u, err := f.accounts.Create(ctx, validInput("ada"))
	require.NoError(t, err)

	updated, err := f.accounts.Update(ctx, u.ID, UpdateUserInput{FirstName: ptr("Augusta")})
	require.NoError(t, err)
	require.Equal(t, "Augusta", updated.FirstName)
	require.Equal(t, "Lovelace", updated.LastName)
	require.Equal(t, "ada", updated.Username)
	require.Equal(t, u.PasswordHash, updated.PasswordHash)

	stored, err := f.accounts.Get(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, updated, stored)

	// Old password still works since it was not supplied.
	_, err = f.auth.Authenticate(ctx, "ada", "password123")
	require.NoError(t, err)
}

func TestUpdateUsernameOnlyKeepsPassword(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	u, err := f.accounts.Create(ctx, validInput("ada"))
	require.NoError(t, err)

	updated, err := f.accounts.Update(ctx, u.ID, UpdateUserInput{Username: ptr("countess")})
	require.NoError(t, err)
	require.Equal(t, "countess", updated.Username)
	require.Equal(t, u.PasswordHash, updated.PasswordHash)

	tok, err := f.auth.Authenticate(ctx, "countess", "password123")
	require.NoError(t, err)
	claims, err := f.issuer.Verifier().Verify(tok.Token, testNow)
	require.NoError(t, err)
	require.Equal(t, u.ID, claims.UserID)

	_, err = f.auth.Authenticate(ctx, "ada", "password123")
	require.ErrorIs(t, err, ErrAuthenticationFailed)
}

func TestUpdatePasswordRehashes(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	u, err := f.accounts.Create(ctx, validInput("ada"))
	require.NoError(t, err)

	updated, err := f.accounts.Update(ctx, u.ID, UpdateUserInput{Password: ptr("new-password")})
	require.NoError(t, err)
	require.NotEqual(t, u.PasswordHash, updated.PasswordHash)

	_, err = f.auth.Authenticate(ctx, "ada", "password123")
	require.ErrorIs(t, err, ErrAuthenticationFailed)

	_, err = f.auth.Authenticate(ctx, "ada", "new-password")
	require.NoError(t, err)
}

func TestUpdateErrors(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.accounts.Create(ctx, validInput("admin"))
	require.NoError(t, err)
	other, err := f.accounts.Create(ctx, validInput("admin2"))
	require.NoError(t, err)

	_, err = f.accounts.Update(ctx, other.ID, UpdateUserInput{Username: ptr("admin")})
	require.ErrorIs(t, err, ErrDuplicateUsername)

	_, err = f.accounts.Update(ctx, other.ID, UpdateUserInput{Password: ptr("short")})
	require.ErrorIs(t, err, ErrValidation)

	_, err = f.accounts.Update(ctx, other.ID, UpdateUserInput{FirstName: ptr("")})
	require.ErrorIs(t, err, ErrValidation)

	_, err = f.accounts.Update(ctx, 9999, UpdateUserInput{FirstName: ptr("x")})
	require.ErrorIs(t, err, ErrNotFound)

	_, err = f.accounts.Update(ctx, 9999, UpdateUserInput{})
	require.ErrorIs(t, err, ErrNotFound)

	stored, err := f.accounts.Get(ctx, other.ID)
	require.NoError(t, err)
	require.Equal(t, "admin2", stored.Username)
}

func TestAuthenticateFailures(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	u, err := f.accounts.Create(ctx, validInput("admin"))
	require.NoError(t, err)

	t.Run("username required", func(t *testing.T) {
		_, err := f.auth.Authenticate(ctx, "", "password123")
		var verr *ValidationError
		require.True(t, errors.As(err, &verr))
		require.Equal(t, "username required", verr.Fields["username"])
	})

	t.Run("password required", func(t *testing.T) {
		_, err := f.auth.Authenticate(ctx, "admin", "")
		var verr *ValidationError
		require.True(t, errors.As(err, &verr))
		require.Equal(t, "password required", verr.Fields["password"])
	})

	t.Run("unknown user and wrong password look the same", func(t *testing.T) {
		_, errUnknown := f.auth.Authenticate(ctx, "nobody", "password123")
		_, errWrong := f.auth.Authenticate(ctx, "admin", "wrong-password")
		require.ErrorIs(t, errUnknown, ErrAuthenticationFailed)
		require.ErrorIs(t, errWrong, ErrAuthenticationFailed)
		require.Equal(t, errUnknown.Error(), errWrong.Error())
	})

	t.Run("deactivated", func(t *testing.T) {
		_, err := f.accounts.Update(ctx, u.ID, UpdateUserInput{IsActive: ptr(false)})
		require.NoError(t, err)

		_, err = f.auth.Authenticate(ctx, "admin", "password123")
		require.ErrorIs(t, err, ErrAccountDeactivated)

		// Without the right password deactivation is not revealed.
		_, err = f.auth.Authenticate(ctx, "admin", "wrong-password")
		require.ErrorIs(t, err, ErrAuthenticationFailed)

		_, err = f.accounts.Update(ctx, u.ID, UpdateUserInput{IsActive: ptr(true)})
		require.NoError(t, err)
		_, err = f.auth.Authenticate(ctx, "admin", "password123")
		require.NoError(t, err)
	})
}

// Renaming and re-passwording admin moves the login to the new credentials.
func TestRenameAndChangePasswordMovesLogin(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	admin, err := f.accounts.Create(ctx, CreateUserInput{Username: "admin", Password: "12345678", FirstName: "A", LastName: "B"})
	require.NoError(t, err)
	require.Equal(t, int64(1), admin.ID)

	updated, err := f.accounts.Update(ctx, 1, UpdateUserInput{Username: ptr("admin2"), Password: ptr("87654321")})
	require.NoError(t, err)
	require.Equal(t, "admin2", updated.Username)
	require.Equal(t, "A", updated.FirstName)
	require.Equal(t, "B", updated.LastName)

	tok, err := f.auth.Authenticate(ctx, "admin2", "87654321")
	require.NoError(t, err)
	claims, err := f.issuer.Verifier().Verify(tok.Token, testNow)
	require.NoError(t, err)
	require.Equal(t, int64(1), claims.UserID)

	_, err = f.auth.Authenticate(ctx, "admin", "12345678")
	require.ErrorIs(t, err, ErrAuthenticationFailed)
	_, err = f.auth.Authenticate(ctx, "admin2", "12345678")
	require.ErrorIs(t, err, ErrAuthenticationFailed)

	// A later username-only rename keeps the new password.
	_, err = f.accounts.Update(ctx, 1, UpdateUserInput{Username: ptr("admin3")})
	require.NoError(t, err)
	_, err = f.auth.Authenticate(ctx, "admin3", "87654321")
	require.NoError(t, err)
}

// Two users with distinct credentials each get a token naming their own id.
func TestAdminScenario(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	admin, err := f.accounts.Create(ctx, CreateUserInput{Username: "admin", Password: "password123", FirstName: "Admin", LastName: "User"})
	require.NoError(t, err)
	admin2, err := f.accounts.Create(ctx, CreateUserInput{Username: "admin2", Password: "password456", FirstName: "Admin", LastName: "Two"})
	require.NoError(t, err)

	tok1, err := f.auth.Authenticate(ctx, "admin", "password123")
	require.NoError(t, err)
	tok2, err := f.auth.Authenticate(ctx, "admin2", "password456")
	require.NoError(t, err)
	require.NotEqual(t, tok1.Token, tok2.Token)

	c1, err := f.issuer.Verifier().Verify(tok1.Token, testNow)
	require.NoError(t, err)
	c2, err := f.issuer.Verifier().Verify(tok2.Token, testNow)
	require.NoError(t, err)
	require.Equal(t, admin.ID, c1.UserID)
	require.Equal(t, admin2.ID, c2.UserID)

	_, err = f.auth.Authenticate(ctx, "admin", "password456")
	require.ErrorIs(t, err, ErrAuthenticationFailed)

	require.NoError(t, f.accounts.Delete(ctx, admin.ID))
	_, err = f.auth.Authenticate(ctx, "admin", "password123")
	require.ErrorIs(t, err, ErrAuthenticationFailed)
}

func TestMapStoreErr(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	require.ErrorIs(t, mapStoreErr(store.ErrNotFound), ErrNotFound)
	require.ErrorIs(t, mapStoreErr(store.ErrAlreadyExists), ErrDuplicateUsername)
	require.ErrorIs(t, mapStoreErr(boom), boom)
}

func TestValidationErrorMessage(t *testing.T) {
	t.Parallel()

	err := &ValidationError{Fields: map[string]string{"username": "b", "first_name": "a"}}
	require.Equal(t, "validation failed: first_name: a; username: b", err.Error())
	require.ErrorIs(t, err, ErrValidation)
}
