package users_test

import (
	"context"
	"testing"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestVerifyIdentity(t *testing.T) {
	hash, err := users.HashPassword("Sup3rSecret!")
	require.NoError(t, err)

	account := &users.User{
		Email:        "tester@example.com",
		PasswordHash: hash,
		IsActive:     true,
		Permissions:  users.PermissionList{users.PermissionUser},
	}

	notFound := errors.New("record not found", errors.CategoryNotFound)

	t.Run("valid credentials return the account", func(t *testing.T) {
		store := new(MockUserStore)
		store.On("GetByEmail", mock.Anything, "tester@example.com").Return(account, nil)

		provider := users.NewUserProvider(store).WithLogger(noopLogger{})

		user, err := provider.VerifyIdentity(context.Background(), "tester@example.com", "Sup3rSecret!")
		require.NoError(t, err)
		assert.Equal(t, account.Email, user.Email)
		store.AssertExpectations(t)
	})

	t.Run("unknown email maps to invalid credentials", func(t *testing.T) {
		store := new(MockUserStore)
		store.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, notFound)

		provider := users.NewUserProvider(store).WithLogger(noopLogger{})

		_, err := provider.VerifyIdentity(context.Background(), "ghost@example.com", "Sup3rSecret!")
		require.Error(t, err)
		assert.True(t, errors.Is(err, users.ErrCredentialsNotValid))
	})

	t.Run("password mismatch maps to the same error", func(t *testing.T) {
		store := new(MockUserStore)
		store.On("GetByEmail", mock.Anything, "tester@example.com").Return(account, nil)

		provider := users.NewUserProvider(store).WithLogger(noopLogger{})

		_, err := provider.VerifyIdentity(context.Background(), "tester@example.com", "wrong-password")
		require.Error(t, err)
		assert.True(t, errors.Is(err, users.ErrCredentialsNotValid))
	})

	t.Run("lookup uses the email verbatim", func(t *testing.T) {
		store := new(MockUserStore)
		// mixed case lookup misses: login never normalizes the email
		store.On("GetByEmail", mock.Anything, "Tester@Example.com").Return(nil, notFound)

		provider := users.NewUserProvider(store).WithLogger(noopLogger{})

		_, err := provider.VerifyIdentity(context.Background(), "Tester@Example.com", "Sup3rSecret!")
		require.Error(t, err)
		assert.True(t, errors.Is(err, users.ErrCredentialsNotValid))
		store.AssertExpectations(t)
	})
}

func TestFindIdentityByID(t *testing.T) {
	account := &users.User{Email: "tester@example.com", IsActive: true}

	t.Run("returns the stored account", func(t *testing.T) {
		store := new(MockUserStore)
		store.On("GetByID", mock.Anything, "some-id").Return(account, nil)

		provider := users.NewUserProvider(store).WithLogger(noopLogger{})

		user, err := provider.FindIdentityByID(context.Background(), "some-id")
		require.NoError(t, err)
		assert.Equal(t, account.Email, user.Email)
	})

	t.Run("store errors pass through", func(t *testing.T) {
		store := new(MockUserStore)
		store.On("GetByID", mock.Anything, "missing-id").
			Return(nil, errors.New("record not found", errors.CategoryNotFound))

		provider := users.NewUserProvider(store).WithLogger(noopLogger{})

		_, err := provider.FindIdentityByID(context.Background(), "missing-id")
		require.Error(t, err)
		assert.True(t, errors.IsNotFound(err))
	})
}
