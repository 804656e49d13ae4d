package catalog

import (
	"context"

	"github.com/stockpile/backend/internal/application/crud"
	"github.com/stockpile/backend/internal/application/projection"
	"github.com/stockpile/backend/internal/application/validation"
	"github.com/stockpile/backend/internal/domain/catalog"
)

// ModelDefinition describes the product model resource.
func ModelDefinition() crud.Definition[catalog.Model] {
	return crud.Definition[catalog.Model]{
		Resource: "model",
		Rules:    ModelRules,
		Apply:    applyModel,
		Project:  projectModel,
	}
}

// ModelRules is the model constraint table.
func ModelRules(_ validation.Operation, id int64) validation.RuleSet {
	return validation.Rules(
		validation.Field("brand_id",
			validation.Required(), validation.Integer(), validation.ExistsIn(TableBrands, "id").PerTenant()),
		validation.Field("category_id",
			validation.Required(), validation.Integer(), validation.ExistsIn(TableCategories, "id").PerTenant()),
		validation.Field("sub_category_id",
			validation.Required(), validation.Integer(), validation.ExistsIn(TableSubCategories, "id").PerTenant()),
		validation.Field("name",
			validation.Required(), validation.String(), validation.MaxLength(255),
			validation.UniqueIn(TableModels, "name").Except(id).PerTenant()),
		validation.Field("slug",
			validation.Nullable(), validation.String(), validation.MaxLength(255),
			validation.UniqueIn(TableModels, "slug").Except(id).PerTenant()),
		validation.Field("status", validation.Nullable(), validation.Boolean()),
	).WithMessages(map[string]string{
		"brand_id.required":        "Please select a brand.",
		"category_id.required":     "Please select a category.",
		"sub_category_id.required": "Please select a sub category.",
	})
}

func applyModel(m *catalog.Model, in validation.Fields, op validation.Operation) {
	if in.Sent(op, "brand_id") {
		m.BrandID = in.Int64("brand_id")
	}
	if in.Sent(op, "category_id") {
		m.CategoryID = in.Int64("category_id")
	}
	if in.Sent(op, "sub_category_id") {
		m.SubCategoryID = in.Int64("sub_category_id")
	}
	if in.Sent(op, "name") {
		m.Name = in.String("name")
	}
	if in.Sent(op, "slug") {
		m.Slug = in.StringPtr("slug")
	}
	crud.ApplyStatus(&m.Status, in, op)
}

func projectModel(ctx context.Context, m *catalog.Model, refs projection.RefResolver) ([]projection.Field, error) {
	brand, err := refs.Resolve(ctx, TableBrands, &m.BrandID)
	if err != nil {
		return nil, err
	}
	category, err := refs.Resolve(ctx, TableCategories, &m.CategoryID)
	if err != nil {
		return nil, err
	}
	subCategory, err := refs.Resolve(ctx, TableSubCategories, &m.SubCategoryID)
	if err != nil {
		return nil, err
	}

	return projection.NewBuilder().
		Add("id", m.ID).
		Add("name", m.Name).
		Add("slug", m.Slug).
		Relation("brand_id", "brand_name", brand).
		Relation("category_id", "category_name", category).
		Relation("sub_category_id", "sub_category_name", subCategory).
		Add("status", m.Status).
		Audit(&m.Audit).
		Fields(), nil
}
