package catalog

import (
	"context"

	"github.com/stockpile/backend/internal/application/crud"
	"github.com/stockpile/backend/internal/application/projection"
	"github.com/stockpile/backend/internal/application/validation"
	"github.com/stockpile/backend/internal/domain/catalog"
)

// UnitDefinition describes the unit-of-measure resource.
func UnitDefinition() crud.Definition[catalog.Unit] {
	return crud.Definition[catalog.Unit]{
		Resource: "unit",
		Rules:    UnitRules,
		Apply: func(u *catalog.Unit, in validation.Fields, op validation.Operation) {
			if in.Sent(op, "name") {
				u.Name = in.String("name")
			}
			if in.Sent(op, "short_name") {
				u.ShortName = in.String("short_name")
			}
			crud.ApplyStatus(&u.Status, in, op)
		},
		Project: func(_ context.Context, u *catalog.Unit, _ projection.RefResolver) ([]projection.Field, error) {
			return projection.NewBuilder().
				Add("id", u.ID).
				Add("name", u.Name).
				Add("short_name", u.ShortName).
				Add("status", u.Status).
				Audit(&u.Audit).
				Fields(), nil
		},
	}
}

// UnitRules is the unit constraint table.
func UnitRules(_ validation.Operation, id int64) validation.RuleSet {
	return validation.Rules(
		validation.Field("name",
			validation.Required(), validation.String(), validation.MaxLength(255),
			validation.UniqueIn(TableUnits, "name").Except(id).PerTenant()),
		validation.Field("short_name", validation.Required(), validation.String(), validation.MaxLength(20)),
		validation.Field("status", validation.Nullable(), validation.Boolean()),
	)
}
