package identity

import (
	"context"

	"github.com/stockpile/backend/internal/domain/identity"
)

// Authorizer answers permission checks from the registry.
type Authorizer struct {
	registry *Registry
	users    identity.UserRepository
}

// NewAuthorizer creates an authorizer.
func NewAuthorizer(registry *Registry, users identity.UserRepository) *Authorizer {
	return &Authorizer{registry: registry, users: users}
}

// Can reports whether the user holds permission under guard.
func (a *Authorizer) Can(ctx context.Context, userID int64, guard, permission string) (bool, error) {
	roleIDs, err := a.users.RoleIDs(ctx, userID)
	if err != nil {
		return false, err
	}
	if len(roleIDs) == 0 {
		return false, nil
	}
	snapshot, err := a.registry.Snapshot(ctx, guard)
	if err != nil {
		return false, err
	}
	return snapshot.Grants(roleIDs, permission), nil
}

// Permissions returns the user's effective permission names under guard.
func (a *Authorizer) Permissions(ctx context.Context, userID int64, guard string) ([]string, error) {
	roleIDs, err := a.users.RoleIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	snapshot, err := a.registry.Snapshot(ctx, guard)
	if err != nil {
		return nil, err
	}
	return snapshot.PermissionsFor(roleIDs), nil
}
