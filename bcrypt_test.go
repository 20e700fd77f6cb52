package users_test

import (
	"testing"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	t.Run("hashes and verifies a password", func(t *testing.T) {
		hash, err := users.HashPassword("Sup3rSecret!")
		require.NoError(t, err)
		assert.NotEqual(t, "Sup3rSecret!", hash)
		assert.NoError(t, users.ComparePasswordAndHash("Sup3rSecret!", hash))
	})

	t.Run("rejects an empty password", func(t *testing.T) {
		_, err := users.HashPassword("")
		require.Error(t, err)
		assert.True(t, errors.Is(err, users.ErrNoEmptyString))
	})
}

func TestComparePasswordAndHash(t *testing.T) {
	hash, err := users.HashPassword("Sup3rSecret!")
	require.NoError(t, err)

	t.Run("mismatch returns sentinel error", func(t *testing.T) {
		err := users.ComparePasswordAndHash("wrong-password", hash)
		require.Error(t, err)
		assert.True(t, errors.Is(err, users.ErrMismatchedHashAndPassword))
	})

	t.Run("invalid hash is an error", func(t *testing.T) {
		err := users.ComparePasswordAndHash("Sup3rSecret!", "not-a-bcrypt-hash")
		assert.Error(t, err)
	})
}

func TestRandomPasswordHash(t *testing.T) {
	h1 := users.RandomPasswordHash()
	h2 := users.RandomPasswordHash()

	assert.NotEmpty(t, h1)
	assert.NotEmpty(t, h2)
	assert.NotEqual(t, h1, h2)
}
