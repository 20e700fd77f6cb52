package users

import (
	"context"

	"github.com/goliatone/go-router"
)

// DefaultClaimsContextKey is the router locals key the JWT middleware uses
// for validated claims.
const DefaultClaimsContextKey = "user"

// DefaultUserContextKey is the router locals key the Protected middleware
// uses for the loaded account.
const DefaultUserContextKey = "auth_user"

var userCtxKey = &contextKey{"user"}
var claimsCtxKey = &contextKey{"claims"}

type contextKey struct {
	name string
}

// WithContext sets the User in the given context
func WithContext(r context.Context, user *User) context.Context {
	return context.WithValue(r, userCtxKey, user)
}

// FromContext finds the user from the context.
func FromContext(ctx context.Context) (*User, bool) {
	raw, ok := ctx.Value(userCtxKey).(*User)
	return raw, ok
}

// WithClaimsContext sets the AuthClaims in the given context
func WithClaimsContext(r context.Context, claims AuthClaims) context.Context {
	return context.WithValue(r, claimsCtxKey, claims)
}

// GetClaims extracts the AuthClaims from the standard context
func GetClaims(ctx context.Context) (AuthClaims, bool) {
	raw, ok := ctx.Value(claimsCtxKey).(AuthClaims)
	return raw, ok
}

// GetRouterClaims extracts the AuthClaims from the router context
func GetRouterClaims(ctx router.Context, key string) (AuthClaims, bool) {
	if key == "" {
		key = DefaultClaimsContextKey
	}
	raw := ctx.Locals(key)
	if raw == nil {
		return nil, false
	}
	claims, ok := raw.(AuthClaims)
	return claims, ok
}

// UserFromRouterContext extracts the authenticated user stored by the
// Protected middleware.
func UserFromRouterContext(ctx router.Context, key ...string) (*User, bool) {
	k := DefaultUserContextKey
	if len(key) > 0 && key[0] != "" {
		k = key[0]
	}
	raw := ctx.Locals(k)
	if raw == nil {
		return nil, false
	}
	user, ok := raw.(*User)
	return user, ok
}
