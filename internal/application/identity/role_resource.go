package identity

import (
	"context"

	"github.com/stockpile/backend/internal/application/crud"
	"github.com/stockpile/backend/internal/application/projection"
	"github.com/stockpile/backend/internal/application/validation"
	"github.com/stockpile/backend/internal/domain/identity"
)

const (
	TableRoles       = "roles"
	TablePermissions = "permissions"
)

// RoleDefinition describes the role resource.
func RoleDefinition() crud.Definition[identity.Role] {
	return crud.Definition[identity.Role]{
		Resource: "role",
		Prepare:  defaultGuard,
		Rules:    guardedNameRules(TableRoles),
		Apply: func(r *identity.Role, in validation.Fields, op validation.Operation) {
			applyGuardedName(&r.Name, &r.GuardName, in, op)
		},
		Current: func(r *identity.Role) validation.Fields {
			return validation.Fields{"guard_name": r.GuardName}
		},
		Project: projectRole,
	}
}

// PermissionDefinition describes the permission resource.
func PermissionDefinition() crud.Definition[identity.Permission] {
	return crud.Definition[identity.Permission]{
		Resource: "permission",
		Prepare:  defaultGuard,
		Rules:    guardedNameRules(TablePermissions),
		Apply: func(p *identity.Permission, in validation.Fields, op validation.Operation) {
			applyGuardedName(&p.Name, &p.GuardName, in, op)
		},
		Current: func(p *identity.Permission) validation.Fields {
			return validation.Fields{"guard_name": p.GuardName}
		},
		Project: projectPermission,
	}
}

func guardedNameRules(table string) func(validation.Operation, int64) validation.RuleSet {
	return func(_ validation.Operation, id int64) validation.RuleSet {
		return validation.Rules(
			validation.Field("name",
				validation.Required(), validation.String(), validation.MaxLength(255),
				validation.UniqueIn(table, "name").Except(id).ScopedBy("guard_name")),
			validation.Field("guard_name",
				validation.Nullable(), validation.String(), validation.MaxLength(255)),
		)
	}
}

// defaultGuard fills a missing or blank guard_name so uniqueness is always
// scoped to a concrete guard.
func defaultGuard(in validation.Fields, op validation.Operation) validation.Fields {
	if !in.Filled("guard_name") && (op == validation.Create || in.Has("guard_name")) {
		in["guard_name"] = identity.DefaultGuard
	}
	return in
}

func applyGuardedName(name, guard *string, in validation.Fields, op validation.Operation) {
	if in.Sent(op, "name") {
		*name = in.String("name")
	}
	if in.Sent(op, "guard_name") {
		*guard = identity.NormalizeGuard(in.String("guard_name"))
	}
}

func projectRole(_ context.Context, r *identity.Role, _ projection.RefResolver) ([]projection.Field, error) {
	return projection.NewBuilder().
		Add("id", r.ID).
		Add("name", r.Name).
		Add("guard_name", r.GuardName).
		Add("permissions", r.PermissionNames()).
		Timestamps(&r.Audit).
		Fields(), nil
}

func projectPermission(_ context.Context, p *identity.Permission, _ projection.RefResolver) ([]projection.Field, error) {
	return projection.NewBuilder().
		Add("id", p.ID).
		Add("name", p.Name).
		Add("guard_name", p.GuardName).
		Timestamps(&p.Audit).
		Fields(), nil
}
