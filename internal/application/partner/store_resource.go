package partner

import (
	"context"

	"github.com/stockpile/backend/internal/application/crud"
	"github.com/stockpile/backend/internal/application/projection"
	"github.com/stockpile/backend/internal/application/validation"
	"github.com/stockpile/backend/internal/domain/partner"
)

// StoreDefinition describes the store resource.
func StoreDefinition() crud.Definition[partner.Store] {
	return crud.Definition[partner.Store]{
		Resource: "store",
		Rules:    StoreRules,
		Apply: func(s *partner.Store, in validation.Fields, op validation.Operation) {
			if in.Sent(op, "company_id") {
				s.CompanyID = in.Int64("company_id")
			}
			if in.Sent(op, "name") {
				s.Name = in.String("name")
			}
			if in.Sent(op, "code") {
				s.Code = in.String("code")
			}
			if in.Sent(op, "address") {
				s.Address = in.StringPtr("address")
			}
			if in.Sent(op, "phone") {
				s.Phone = in.StringPtr("phone")
			}
			crud.ApplyStatus(&s.Status, in, op)
		},
		Project: func(ctx context.Context, s *partner.Store, refs projection.RefResolver) ([]projection.Field, error) {
			company, err := refs.Resolve(ctx, TableCompanies, &s.CompanyID)
			if err != nil {
				return nil, err
			}
			return projection.NewBuilder().
				Add("id", s.ID).
				Relation("company_id", "company_name", company).
				Add("name", s.Name).
				Add("code", s.Code).
				Add("address", s.Address).
				Add("phone", s.Phone).
				Add("status", s.Status).
				Audit(&s.Audit).
				Fields(), nil
		},
	}
}

// StoreRules is the store constraint table.
func StoreRules(_ validation.Operation, id int64) validation.RuleSet {
	return validation.Rules(
		validation.Field("company_id",
			validation.Required(), validation.Integer(), validation.ExistsIn(TableCompanies, "id").PerTenant()),
		validation.Field("name", validation.Required(), validation.String(), validation.MaxLength(255)),
		validation.Field("code",
			validation.Required(), validation.String(), validation.MaxLength(50),
			validation.UniqueIn(TableStores, "code").Except(id).PerTenant()),
		validation.Field("address", validation.Nullable(), validation.String(), validation.MaxLength(500)),
		validation.Field("phone", validation.Nullable(), validation.String(), validation.MaxLength(20)),
		validation.Field("status", validation.Nullable(), validation.Boolean()),
	)
}

// LocationDefinition describes the storage location resource.
func LocationDefinition() crud.Definition[partner.Location] {
	return crud.Definition[partner.Location]{
		Resource: "location",
		Rules:    LocationRules,
		Apply: func(l *partner.Location, in validation.Fields, op validation.Operation) {
			if in.Sent(op, "store_id") {
				l.StoreID = in.Int64("store_id")
			}
			if in.Sent(op, "name") {
				l.Name = in.String("name")
			}
			if in.Sent(op, "code") {
				l.Code = in.String("code")
			}
			crud.ApplyStatus(&l.Status, in, op)
		},
		Project: func(ctx context.Context, l *partner.Location, refs projection.RefResolver) ([]projection.Field, error) {
			store, err := refs.Resolve(ctx, TableStores, &l.StoreID)
			if err != nil {
				return nil, err
			}
			return projection.NewBuilder().
				Add("id", l.ID).
				Relation("store_id", "store_name", store).
				Add("name", l.Name).
				Add("code", l.Code).
				Add("status", l.Status).
				Audit(&l.Audit).
				Fields(), nil
		},
	}
}

// LocationRules is the location constraint table.
func LocationRules(_ validation.Operation, id int64) validation.RuleSet {
	return validation.Rules(
		validation.Field("store_id",
			validation.Required(), validation.Integer(), validation.ExistsIn(TableStores, "id").PerTenant()),
		validation.Field("name", validation.Required(), validation.String(), validation.MaxLength(255)),
		validation.Field("code",
			validation.Required(), validation.String(), validation.MaxLength(50),
			validation.UniqueIn(TableLocations, "code").Except(id).PerTenant()),
		validation.Field("status", validation.Nullable(), validation.Boolean()),
	)
}
