package partner

import (
	"context"

	"github.com/stockpile/backend/internal/application/crud"
	"github.com/stockpile/backend/internal/application/projection"
	"github.com/stockpile/backend/internal/application/validation"
	"github.com/stockpile/backend/internal/domain/partner"
)

// CompanyDefinition describes the company resource.
func CompanyDefinition() crud.Definition[partner.Company] {
	return crud.Definition[partner.Company]{
		Resource: "company",
		Rules:    CompanyRules,
		Apply: func(c *partner.Company, in validation.Fields, op validation.Operation) {
			if in.Sent(op, "name") {
				c.Name = in.String("name")
			}
			if in.Sent(op, "code") {
				c.Code = in.String("code")
			}
			if in.Sent(op, "email") {
				c.Email = in.StringPtr("email")
			}
			if in.Sent(op, "phone") {
				c.Phone = in.StringPtr("phone")
			}
			if in.Sent(op, "address") {
				c.Address = in.StringPtr("address")
			}
			crud.ApplyStatus(&c.Status, in, op)
		},
		Project: func(_ context.Context, c *partner.Company, _ projection.RefResolver) ([]projection.Field, error) {
			return projection.NewBuilder().
				Add("id", c.ID).
				Add("name", c.Name).
				Add("code", c.Code).
				Add("email", c.Email).
				Add("phone", c.Phone).
				Add("address", c.Address).
				Add("status", c.Status).
				Audit(&c.Audit).
				Fields(), nil
		},
	}
}

// CompanyRules is the company constraint table.
func CompanyRules(_ validation.Operation, id int64) validation.RuleSet {
	return validation.Rules(
		validation.Field("name",
			validation.Required(), validation.String(), validation.MaxLength(255),
			validation.UniqueIn(TableCompanies, "name").Except(id).PerTenant()),
		validation.Field("code",
			validation.Required(), validation.String(), validation.MaxLength(50),
			validation.UniqueIn(TableCompanies, "code").Except(id).PerTenant()),
		validation.Field("email", validation.Nullable(), validation.String(), validation.MaxLength(255)),
		validation.Field("phone", validation.Nullable(), validation.String(), validation.MaxLength(20)),
		validation.Field("address", validation.Nullable(), validation.String(), validation.MaxLength(500)),
		validation.Field("status", validation.Nullable(), validation.Boolean()),
	)
}
