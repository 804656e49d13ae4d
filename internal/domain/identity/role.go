// Package identity holds users, roles and permissions.
//
// Roles and permissions are partitioned by guard name, the authentication
// context they apply to. They are global rather than tenant-owned.
package identity

import (
	"strings"

	"github.com/stockpile/backend/internal/domain/shared"
)

// DefaultGuard is the guard used when none is supplied.
const DefaultGuard = "api"

// Role is a named set of permissions.
type Role struct {
	shared.Audit
	Name        string
	GuardName   string
	Permissions []Permission
}

// Permission is a named ability, conventionally "resource:action".
type Permission struct {
	shared.Audit
	Name      string
	GuardName string
}

// PermissionName builds a permission name from resource and action.
func PermissionName(resource, action string) string {
	return strings.ToLower(resource) + ":" + strings.ToLower(action)
}

// NormalizeGuard returns DefaultGuard for an empty guard.
func NormalizeGuard(guard string) string {
	guard = strings.TrimSpace(guard)
	if guard == "" {
		return DefaultGuard
	}
	return guard
}

// PermissionNames returns the role's permission names.
func (r *Role) PermissionNames() []string {
	names := make([]string, 0, len(r.Permissions))
	for _, p := range r.Permissions {
		names = append(names, p.Name)
	}
	return names
}
