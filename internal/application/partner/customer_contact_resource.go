package partner

import (
	"context"

	"github.com/stockpile/backend/internal/application/crud"
	"github.com/stockpile/backend/internal/application/projection"
	"github.com/stockpile/backend/internal/application/validation"
	"github.com/stockpile/backend/internal/domain/partner"
)

// CustomerContactDefinition describes the customer contact resource.
func CustomerContactDefinition() crud.Definition[partner.CustomerContact] {
	return crud.Definition[partner.CustomerContact]{
		Resource: "customer-contact",
		Rules:    CustomerContactRules,
		Apply:    applyCustomerContact,
		Project:  projectCustomerContact,
	}
}

// CustomerContactRules is the customer contact constraint table.
func CustomerContactRules(_ validation.Operation, _ int64) validation.RuleSet {
	return validation.Rules(
		validation.Field("district", validation.Required(), validation.String(), validation.MaxLength(255)),
		validation.Field("company_id",
			validation.Required(), validation.Integer(), validation.ExistsIn(TableCompanies, "id").PerTenant()),
		validation.Field("customer_name", validation.Required(), validation.String(), validation.MaxLength(255)),
		validation.Field("contact_one", validation.Required(), validation.String(), validation.MaxLength(20)),
		validation.Field("contact_two", validation.Nullable(), validation.String(), validation.MaxLength(20)),
		validation.Field("contact_three", validation.Nullable(), validation.String(), validation.MaxLength(20)),
		validation.Field("remarks", validation.Nullable(), validation.String(), validation.MaxLength(1000)),
	).WithMessages(map[string]string{
		"district.required":    "Please select a district.",
		"company_id.required":  "Please select a company.",
		"contact_one.required": "At least one contact number is required.",
	})
}

func applyCustomerContact(c *partner.CustomerContact, in validation.Fields, op validation.Operation) {
	if in.Sent(op, "district") {
		c.District = in.String("district")
	}
	if in.Sent(op, "company_id") {
		c.CompanyID = in.Int64("company_id")
	}
	if in.Sent(op, "customer_name") {
		c.CustomerName = in.String("customer_name")
	}
	if in.Sent(op, "contact_one") {
		c.ContactOne = in.String("contact_one")
	}
	if in.Sent(op, "contact_two") {
		c.ContactTwo = in.StringPtr("contact_two")
	}
	if in.Sent(op, "contact_three") {
		c.ContactThree = in.StringPtr("contact_three")
	}
	if in.Sent(op, "remarks") {
		c.Remarks = in.StringPtr("remarks")
	}
}

func projectCustomerContact(ctx context.Context, c *partner.CustomerContact, refs projection.RefResolver) ([]projection.Field, error) {
	company, err := refs.Resolve(ctx, TableCompanies, &c.CompanyID)
	if err != nil {
		return nil, err
	}
	return projection.NewBuilder().
		Add("id", c.ID).
		Add("district", c.District).
		Relation("company_id", "company_name", company).
		Add("customer_name", c.CustomerName).
		Add("contact_one", c.ContactOne).
		Add("contact_two", c.ContactTwo).
		Add("contact_three", c.ContactThree).
		Add("remarks", c.Remarks).
		Timestamps(&c.Audit).
		Fields(), nil
}
