package users_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-users"
	"github.com/stretchr/testify/assert"
)

func TestJWTClaims(t *testing.T) {
	now := time.Now()

	t.Run("UserID prefers uid claim", func(t *testing.T) {
		claims := &users.JWTClaims{
			RegisteredClaims: jwt.RegisteredClaims{Subject: "subject-id"},
			UID:              "uid-value",
		}
		assert.Equal(t, "uid-value", claims.UserID())
		assert.Equal(t, "subject-id", claims.Subject())
	})

	t.Run("UserID falls back to subject", func(t *testing.T) {
		claims := &users.JWTClaims{
			RegisteredClaims: jwt.RegisteredClaims{Subject: "subject-id"},
		}
		assert.Equal(t, "subject-id", claims.UserID())
	})

	t.Run("time accessors", func(t *testing.T) {
		claims := &users.JWTClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				IssuedAt:  jwt.NewNumericDate(now),
				ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			},
		}
		assert.WithinDuration(t, now, claims.IssuedAt(), time.Second)
		assert.WithinDuration(t, now.Add(time.Hour), claims.Expires(), time.Second)
	})

	t.Run("missing timestamps are zero", func(t *testing.T) {
		claims := &users.JWTClaims{}
		assert.True(t, claims.Expires().IsZero())
		assert.True(t, claims.IssuedAt().IsZero())
	})
}
