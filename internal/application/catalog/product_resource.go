package catalog

import (
	"context"

	"github.com/stockpile/backend/internal/application/crud"
	"github.com/stockpile/backend/internal/application/projection"
	"github.com/stockpile/backend/internal/application/validation"
	"github.com/stockpile/backend/internal/domain/catalog"
)

// ProductDefinition describes the product resource.
func ProductDefinition() crud.Definition[catalog.Product] {
	return crud.Definition[catalog.Product]{
		Resource: "product",
		Rules:    ProductRules,
		Apply:    applyProduct,
		Project:  projectProduct,
	}
}

// ProductRules is the product constraint table. Every classification
// reference is optional but must exist when given.
func ProductRules(_ validation.Operation, id int64) validation.RuleSet {
	ref := func(field, table string) validation.FieldRules {
		return validation.Field(field,
			validation.Nullable(), validation.Integer(), validation.ExistsIn(table, "id").PerTenant())
	}
	return validation.Rules(
		validation.Field("name", validation.Required(), validation.String(), validation.MaxLength(255)),
		validation.Field("code",
			validation.Required(), validation.String(), validation.MaxLength(50),
			validation.UniqueIn(TableProducts, "code").Except(id).PerTenant()),
		ref("brand_id", TableBrands),
		ref("category_id", TableCategories),
		ref("sub_category_id", TableSubCategories),
		ref("model_id", TableModels),
		ref("unit_id", TableUnits),
		validation.Field("status", validation.Nullable(), validation.Boolean()),
	)
}

func applyProduct(p *catalog.Product, in validation.Fields, op validation.Operation) {
	if in.Sent(op, "name") {
		p.Name = in.String("name")
	}
	if in.Sent(op, "code") {
		p.Code = in.String("code")
	}
	refs := map[string]**int64{
		"brand_id":        &p.BrandID,
		"category_id":     &p.CategoryID,
		"sub_category_id": &p.SubCategoryID,
		"model_id":        &p.ModelID,
		"unit_id":         &p.UnitID,
	}
	for key, dst := range refs {
		if in.Sent(op, key) {
			*dst = in.Int64Ptr(key)
		}
	}
	crud.ApplyStatus(&p.Status, in, op)
}

func projectProduct(ctx context.Context, p *catalog.Product, refs projection.RefResolver) ([]projection.Field, error) {
	tables := []struct {
		table string
		id    *int64
	}{
		{TableBrands, p.BrandID},
		{TableCategories, p.CategoryID},
		{TableSubCategories, p.SubCategoryID},
		{TableModels, p.ModelID},
		{TableUnits, p.UnitID},
	}
	resolved := make([]*projection.Ref, len(tables))
	for i, t := range tables {
		ref, err := refs.Resolve(ctx, t.table, t.id)
		if err != nil {
			return nil, err
		}
		resolved[i] = ref
	}

	return projection.NewBuilder().
		Add("id", p.ID).
		Add("name", p.Name).
		Add("code", p.Code).
		Relation("brand_id", "brand_name", resolved[0]).
		Relation("category_id", "category_name", resolved[1]).
		Relation("sub_category_id", "sub_category_name", resolved[2]).
		Relation("model_id", "model_name", resolved[3]).
		Relation("unit_id", "unit_name", resolved[4]).
		Add("status", p.Status).
		Audit(&p.Audit).
		Fields(), nil
}
