package users

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Permission is an enumerated capability tag granted to a user account.
type Permission string

const (
	// PermissionSuperAdmin grants unrestricted access
	PermissionSuperAdmin Permission = "super_admin"
	// PermissionUser is the baseline permission every account gets
	PermissionUser Permission = "user"

	PermissionRRHHCrear    Permission = "rrhh_crear"
	PermissionRRHHLeer     Permission = "rrhh_leer"
	PermissionRRHHEditar   Permission = "rrhh_editar"
	PermissionRRHHEliminar Permission = "rrhh_eliminar"

	PermissionVehiculosCrear    Permission = "vehiculos_crear"
	PermissionVehiculosLeer     Permission = "vehiculos_leer"
	PermissionVehiculosEditar   Permission = "vehiculos_editar"
	PermissionVehiculosEliminar Permission = "vehiculos_eliminar"
)

var allPermissions = []Permission{
	PermissionSuperAdmin,
	PermissionUser,
	PermissionRRHHCrear,
	PermissionRRHHLeer,
	PermissionRRHHEditar,
	PermissionRRHHEliminar,
	PermissionVehiculosCrear,
	PermissionVehiculosLeer,
	PermissionVehiculosEditar,
	PermissionVehiculosEliminar,
}

// AllPermissions returns every known permission.
func AllPermissions() []Permission {
	out := make([]Permission, len(allPermissions))
	copy(out, allPermissions)
	return out
}

// IsValid reports whether p is a known permission.
func (p Permission) IsValid() bool {
	for _, known := range allPermissions {
		if p == known {
			return true
		}
	}
	return false
}

func (p Permission) String() string {
	return string(p)
}

// ParsePermission resolves a raw string into a known Permission.
func ParsePermission(raw string) (Permission, error) {
	p := Permission(raw)
	if !p.IsValid() {
		return "", fmt.Errorf("unknown permission: %q", raw)
	}
	return p, nil
}

// PermissionList is the set of permissions attached to a user. It is
// persisted as a JSON array so the same column works on postgres and
// sqlite.
type PermissionList []Permission

// Has reports whether the list contains the given permission.
func (l PermissionList) Has(p Permission) bool {
	for _, granted := range l {
		if granted == p {
			return true
		}
	}
	return false
}

// HasAny reports whether the list intersects the required set. Duplicate
// entries on either side are tolerated.
func (l PermissionList) HasAny(required ...Permission) bool {
	for _, want := range required {
		if l.Has(want) {
			return true
		}
	}
	return false
}

// Value implements driver.Valuer.
func (l PermissionList) Value() (driver.Value, error) {
	if l == nil {
		l = PermissionList{}
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (l *PermissionList) Scan(src any) error {
	if src == nil {
		*l = nil
		return nil
	}

	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported permissions column type: %T", src)
	}

	if len(data) == 0 {
		*l = nil
		return nil
	}

	return json.Unmarshal(data, l)
}
