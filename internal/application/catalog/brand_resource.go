package catalog

import (
	"context"

	"github.com/stockpile/backend/internal/application/crud"
	"github.com/stockpile/backend/internal/application/projection"
	"github.com/stockpile/backend/internal/application/validation"
	"github.com/stockpile/backend/internal/domain/catalog"
)

// BrandDefinition describes the brand resource.
func BrandDefinition() crud.Definition[catalog.Brand] {
	return crud.Definition[catalog.Brand]{
		Resource: "brand",
		Prepare:  deriveSlug,
		Rules:    BrandRules,
		Apply:    applyBrand,
		Project:  projectBrand,
	}
}

// BrandRules is the brand constraint table.
func BrandRules(_ validation.Operation, id int64) validation.RuleSet {
	return validation.Rules(
		validation.Field("name",
			validation.Required(), validation.String(), validation.MaxLength(255),
			validation.UniqueIn(TableBrands, "name").Except(id).PerTenant()),
		validation.Field("slug",
			validation.Nullable(), validation.String(), validation.MaxLength(255),
			validation.UniqueIn(TableBrands, "slug").Except(id).PerTenant()),
		validation.Field("status", validation.Nullable(), validation.Boolean()),
	)
}

func applyBrand(b *catalog.Brand, in validation.Fields, op validation.Operation) {
	if in.Sent(op, "name") {
		b.Name = in.String("name")
	}
	if in.Sent(op, "slug") {
		b.Slug = in.String("slug")
	}
	crud.ApplyStatus(&b.Status, in, op)
}

func projectBrand(_ context.Context, b *catalog.Brand, _ projection.RefResolver) ([]projection.Field, error) {
	return projection.NewBuilder().
		Add("id", b.ID).
		Add("name", b.Name).
		Add("slug", b.Slug).
		Add("status", b.Status).
		Audit(&b.Audit).
		Fields(), nil
}
