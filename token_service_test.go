package users_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenService(key string) users.TokenService {
	return users.NewTokenService([]byte(key), "", nil, noopLogger{})
}

func TestTokenServiceGenerate(t *testing.T) {
	svc := newTestTokenService("signing-key")

	token, err := svc.Generate("user-123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Validate(token)
	require.NoError(t, err)

	assert.Equal(t, "user-123", claims.UserID())
	assert.Equal(t, "user-123", claims.Subject())

	t.Run("token lives for seven days", func(t *testing.T) {
		expected := time.Now().Add(7 * 24 * time.Hour)
		assert.WithinDuration(t, expected, claims.Expires(), time.Minute)
		assert.WithinDuration(t, time.Now(), claims.IssuedAt(), time.Minute)
	})
}

func TestTokenServiceValidate(t *testing.T) {
	svc := newTestTokenService("signing-key")

	t.Run("expired token", func(t *testing.T) {
		past := time.Now().Add(-time.Hour)
		raw, err := svc.SignClaims(&users.JWTClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "user-123",
				IssuedAt:  jwt.NewNumericDate(past.Add(-time.Hour)),
				ExpiresAt: jwt.NewNumericDate(past),
			},
			UID: "user-123",
		})
		require.NoError(t, err)

		_, err = svc.Validate(raw)
		require.Error(t, err)
		assert.True(t, errors.Is(err, users.ErrTokenExpired))
		assert.True(t, users.IsTokenExpiredError(err))
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.Validate("not.a.token")
		require.Error(t, err)
		assert.True(t, users.IsMalformedError(err))
	})

	t.Run("wrong signing key", func(t *testing.T) {
		other := newTestTokenService("different-key")
		token, err := other.Generate("user-123")
		require.NoError(t, err)

		_, err = svc.Validate(token)
		assert.Error(t, err)
	})

	t.Run("issuer is enforced when configured", func(t *testing.T) {
		issuing := users.NewTokenService([]byte("signing-key"), "users-svc", nil, noopLogger{})
		strict := users.NewTokenService([]byte("signing-key"), "other-issuer", nil, noopLogger{})

		token, err := issuing.Generate("user-123")
		require.NoError(t, err)

		_, err = issuing.Validate(token)
		assert.NoError(t, err)

		_, err = strict.Validate(token)
		assert.Error(t, err)
	})

	t.Run("SignClaims rejects nil claims", func(t *testing.T) {
		_, err := svc.SignClaims(nil)
		assert.Error(t, err)
	})
}
