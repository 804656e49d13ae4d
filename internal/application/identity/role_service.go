package identity

import (
	"context"
	"sort"
	"strings"

	"github.com/stockpile/backend/internal/application/crud"
	"github.com/stockpile/backend/internal/application/validation"
	"github.com/stockpile/backend/internal/domain/identity"
	"github.com/stockpile/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// RoleService manages role grants: permissions on roles and roles on users.
type RoleService struct {
	roles       identity.RoleRepository
	permissions identity.PermissionRepository
	users       identity.UserRepository
	hooks       crud.Hooks
	logger      *zap.Logger
}

// NewRoleService creates a role service. hooks run after every grant change.
func NewRoleService(
	roles identity.RoleRepository,
	permissions identity.PermissionRepository,
	users identity.UserRepository,
	logger *zap.Logger,
	hooks ...crud.Hook,
) *RoleService {
	return &RoleService{
		roles:       roles,
		permissions: permissions,
		users:       users,
		hooks:       hooks,
		logger:      logger,
	}
}

// SyncPermissions replaces the role's permissions with the named ones. Every
// name must exist under the role's guard.
func (s *RoleService) SyncPermissions(ctx context.Context, roleID int64, names []string) (*identity.Role, error) {
	role, err := s.roles.FindByID(ctx, roleID)
	if err != nil {
		return nil, err
	}

	names = uniqueNames(names)
	found, err := s.permissions.FindByNames(ctx, role.GuardName, names)
	if err != nil {
		return nil, err
	}
	if len(found) != len(names) {
		known := make(map[string]struct{}, len(found))
		for _, p := range found {
			known[p.Name] = struct{}{}
		}
		var missing []string
		for _, n := range names {
			if _, ok := known[n]; !ok {
				missing = append(missing, n)
			}
		}
		return nil, validation.Failed(validation.Errors{
			"permissions": "The following permissions do not exist: " + strings.Join(missing, ", "),
		})
	}

	ids := make([]int64, 0, len(found))
	for _, p := range found {
		ids = append(ids, p.ID)
	}
	if err := s.roles.SyncPermissions(ctx, roleID, ids); err != nil {
		return nil, err
	}
	s.logger.Info("Role permissions synced",
		zap.Int64("role_id", roleID),
		zap.Int("permission_count", len(ids)))

	if err := s.hooks.Fire(ctx, crud.Mutation{Resource: "role", Event: crud.Updated, ID: roleID}); err != nil {
		return nil, err
	}
	role.Permissions = found
	return role, nil
}

// AssignRole grants roleID to userID, a user of the caller's tenant.
// Assigning a held role is a no-op.
func (s *RoleService) AssignRole(ctx context.Context, userID, roleID int64) error {
	if _, err := s.users.FindInTenant(ctx, userID); err != nil {
		return err
	}
	if _, err := s.roles.FindByID(ctx, roleID); err != nil {
		return err
	}
	if err := s.users.AssignRole(ctx, userID, roleID); err != nil {
		return err
	}
	s.logger.Info("Role assigned", zap.Int64("user_id", userID), zap.Int64("role_id", roleID))
	return s.hooks.Fire(ctx, crud.Mutation{Resource: "user_role", Event: crud.Created, ID: userID})
}

// RevokeRole removes roleID from userID.
func (s *RoleService) RevokeRole(ctx context.Context, userID, roleID int64) error {
	if _, err := s.users.FindInTenant(ctx, userID); err != nil {
		return err
	}
	held, err := s.users.RoleIDs(ctx, userID)
	if err != nil {
		return err
	}
	if !containsID(held, roleID) {
		return shared.ErrNotFound.WithMessage("User does not have this role")
	}
	if err := s.users.RevokeRole(ctx, userID, roleID); err != nil {
		return err
	}
	s.logger.Info("Role revoked", zap.Int64("user_id", userID), zap.Int64("role_id", roleID))
	return s.hooks.Fire(ctx, crud.Mutation{Resource: "user_role", Event: crud.Deleted, ID: userID})
}

func uniqueNames(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
