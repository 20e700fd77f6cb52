package users

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-router"
)

// CheckPermissions is the route guard decision. An empty required set
// allows any authenticated request through. A nil user is a wiring
// failure (the route ran without the Protected middleware) and reports
// ErrMissingRequestUser. Otherwise the user needs at least ONE of the
// required permissions; a denial names the email and the full acceptable
// list.
func CheckPermissions(required []Permission, user *User) error {
	if len(required) == 0 {
		return nil
	}

	if user == nil {
		return ErrMissingRequestUser
	}

	if user.Permissions.HasAny(required...) {
		return nil
	}

	return permissionDenied(user.Email, required)
}

// RequirePermissions guards a route with a statically declared permission
// set. It reads the authenticated user that the Protected middleware
// stored under DefaultUserContextKey.
func RequirePermissions(required ...Permission) router.MiddlewareFunc {
	return RequirePermissionsWithKey(DefaultUserContextKey, required...)
}

// RequirePermissionsWithKey is RequirePermissions with a custom locals key.
func RequirePermissionsWithKey(contextKey string, required ...Permission) router.MiddlewareFunc {
	return func(next router.HandlerFunc) router.HandlerFunc {
		return func(ctx router.Context) error {
			user, _ := UserFromRouterContext(ctx, contextKey)
			if err := CheckPermissions(required, user); err != nil {
				return RespondError(ctx, err)
			}
			return next(ctx)
		}
	}
}

func permissionDenied(email string, required []Permission) error {
	clone := ErrForbiddenPermissions.Clone()
	clone.Message = fmt.Sprintf(
		"El usuario %s necesita uno de estos permisos: [%s]",
		email,
		joinPermissions(required),
	)
	return clone.WithMetadata(map[string]any{
		"email":       email,
		"permissions": joinPermissions(required),
	})
}

func joinPermissions(perms []Permission) string {
	parts := make([]string, 0, len(perms))
	for _, p := range perms {
		parts = append(parts, string(p))
	}
	return strings.Join(parts, ", ")
}
