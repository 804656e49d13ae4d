package catalog

import (
	"context"

	"github.com/stockpile/backend/internal/application/crud"
	"github.com/stockpile/backend/internal/application/projection"
	"github.com/stockpile/backend/internal/application/validation"
	"github.com/stockpile/backend/internal/domain/catalog"
)

// LookupDefinition describes the lookup code resource. Its timestamps are
// rendered literally.
func LookupDefinition() crud.Definition[catalog.Lookup] {
	return crud.Definition[catalog.Lookup]{
		Resource: "lookup",
		Rules:    LookupRules,
		Apply: func(l *catalog.Lookup, in validation.Fields, op validation.Operation) {
			if in.Sent(op, "type") {
				l.Type = in.String("type")
			}
			if in.Sent(op, "code") {
				l.Code = in.String("code")
			}
			if in.Sent(op, "name") {
				l.Name = in.String("name")
			}
			crud.ApplyStatus(&l.Status, in, op)
		},
		Current: func(l *catalog.Lookup) validation.Fields {
			return validation.Fields{"type": l.Type}
		},
		Project: func(_ context.Context, l *catalog.Lookup, _ projection.RefResolver) ([]projection.Field, error) {
			return projection.NewBuilder().
				Add("id", l.ID).
				Add("type", l.Type).
				Add("code", l.Code).
				Add("name", l.Name).
				Add("status", l.Status).
				LiteralTimestamps(&l.Audit).
				Fields(), nil
		},
	}
}

// LookupRules is the lookup constraint table. Codes are unique per type.
func LookupRules(_ validation.Operation, id int64) validation.RuleSet {
	return validation.Rules(
		validation.Field("type", validation.Required(), validation.String(), validation.MaxLength(50)),
		validation.Field("code",
			validation.Required(), validation.String(), validation.MaxLength(50),
			validation.UniqueIn(TableLookups, "code").Except(id).ScopedBy("type").PerTenant()),
		validation.Field("name", validation.Required(), validation.String(), validation.MaxLength(255)),
		validation.Field("status", validation.Nullable(), validation.Boolean()),
	)
}
