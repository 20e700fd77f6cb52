package users

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// User is the user model
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`
	ID            uuid.UUID      `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Email         string         `bun:"email,notnull,unique" json:"email,omitempty"`
	PasswordHash  string         `bun:"password_hash,notnull" json:"-"`
	IsActive      bool           `bun:"is_active" json:"is_active"`
	Permissions   PermissionList `bun:"permissions" json:"permissions,omitempty"`
	CreatedAt     *time.Time     `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time     `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// HasAnyPermission reports whether the user holds at least one of the
// required permissions.
func (u *User) HasAnyPermission(required ...Permission) bool {
	if u == nil {
		return false
	}
	return u.Permissions.HasAny(required...)
}

// NormalizeEmail lowercases and trims an email address. It is applied at
// registration and on email updates, NOT on the login lookup path: a login
// must present the email exactly as stored.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func prepareUserDefaults(record *User) {
	if record == nil {
		return
	}

	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}

	if len(record.Permissions) == 0 {
		record.Permissions = PermissionList{PermissionUser}
	}

	// Accounts always start active; deactivation is a lifecycle operation.
	record.IsActive = true
}
