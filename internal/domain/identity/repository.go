package identity

import (
	"context"

	"github.com/stockpile/backend/internal/domain/shared"
)

// RoleRepository stores roles and their permission links.
type RoleRepository interface {
	shared.Repository[Role]
	// FindAllByGuard returns every live role of a guard with permissions loaded.
	FindAllByGuard(ctx context.Context, guard string) ([]Role, error)
	// SyncPermissions replaces the role's permission links.
	SyncPermissions(ctx context.Context, roleID int64, permissionIDs []int64) error
}

// PermissionRepository stores permissions.
type PermissionRepository interface {
	shared.Repository[Permission]
	FindAllByGuard(ctx context.Context, guard string) ([]Permission, error)
	FindByNames(ctx context.Context, guard string, names []string) ([]Permission, error)
}

// UserRepository stores users and their role assignments.
type UserRepository interface {
	FindByID(ctx context.Context, id int64) (*User, error)
	// FindInTenant is FindByID restricted to the tenant of the caller in ctx.
	FindInTenant(ctx context.Context, id int64) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	RoleIDs(ctx context.Context, userID int64) ([]int64, error)
	AssignRole(ctx context.Context, userID, roleID int64) error
	RevokeRole(ctx context.Context, userID, roleID int64) error
}
