package users_test

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func staticClaims(uid string) users.AuthClaims {
	return &users.JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: uid},
		UID:              uid,
	}
}

func TestTokenValidatorFunc(t *testing.T) {
	t.Run("adapts a function", func(t *testing.T) {
		v := users.TokenValidatorFunc(func(token string) (users.AuthClaims, error) {
			return staticClaims("user-1"), nil
		})

		claims, err := v.Validate("any")
		require.NoError(t, err)
		assert.Equal(t, "user-1", claims.UserID())
	})

	t.Run("nil func fails closed", func(t *testing.T) {
		var v users.TokenValidatorFunc
		_, err := v.Validate("any")
		assert.Error(t, err)
	})
}

func TestMultiTokenValidator(t *testing.T) {
	succeed := users.TokenValidatorFunc(func(string) (users.AuthClaims, error) {
		return staticClaims("user-1"), nil
	})
	malformed := users.TokenValidatorFunc(func(string) (users.AuthClaims, error) {
		return nil, users.ErrTokenMalformed
	})
	expired := users.TokenValidatorFunc(func(string) (users.AuthClaims, error) {
		return nil, users.ErrTokenExpired
	})

	t.Run("first success wins", func(t *testing.T) {
		v := users.NewMultiTokenValidator(succeed, malformed)
		claims, err := v.Validate("token")
		require.NoError(t, err)
		assert.Equal(t, "user-1", claims.UserID())
	})

	t.Run("malformed falls through to next validator", func(t *testing.T) {
		v := users.NewMultiTokenValidator(malformed, succeed)
		claims, err := v.Validate("token")
		require.NoError(t, err)
		assert.Equal(t, "user-1", claims.UserID())
	})

	t.Run("non malformed errors stop the chain", func(t *testing.T) {
		v := users.NewMultiTokenValidator(expired, succeed)
		_, err := v.Validate("token")
		require.Error(t, err)
		assert.True(t, errors.Is(err, users.ErrTokenExpired))
	})

	t.Run("all malformed returns last error", func(t *testing.T) {
		v := users.NewMultiTokenValidator(malformed, malformed)
		_, err := v.Validate("token")
		require.Error(t, err)
		assert.True(t, users.IsMalformedError(err))
	})

	t.Run("no validators", func(t *testing.T) {
		v := users.NewMultiTokenValidator(nil, nil)
		_, err := v.Validate("token")
		require.Error(t, err)
		assert.True(t, errors.Is(err, users.ErrTokenMalformed))
	})
}
