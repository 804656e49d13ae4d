package catalog

import (
	"context"

	"github.com/stockpile/backend/internal/application/crud"
	"github.com/stockpile/backend/internal/application/projection"
	"github.com/stockpile/backend/internal/application/validation"
	"github.com/stockpile/backend/internal/domain/catalog"
)

// CategoryDefinition describes the category resource.
func CategoryDefinition() crud.Definition[catalog.Category] {
	return crud.Definition[catalog.Category]{
		Resource: "category",
		Prepare:  deriveSlug,
		Rules:    CategoryRules,
		Apply:    applyCategory,
		Project:  projectCategory,
	}
}

// CategoryRules is the category constraint table.
func CategoryRules(_ validation.Operation, id int64) validation.RuleSet {
	return validation.Rules(
		validation.Field("name",
			validation.Required(), validation.String(), validation.MaxLength(255),
			validation.UniqueIn(TableCategories, "name").Except(id).PerTenant()),
		validation.Field("slug",
			validation.Nullable(), validation.String(), validation.MaxLength(255),
			validation.UniqueIn(TableCategories, "slug").Except(id).PerTenant()),
		validation.Field("status", validation.Nullable(), validation.Boolean()),
	)
}

func applyCategory(c *catalog.Category, in validation.Fields, op validation.Operation) {
	if in.Sent(op, "name") {
		c.Name = in.String("name")
	}
	if in.Sent(op, "slug") {
		c.Slug = in.String("slug")
	}
	crud.ApplyStatus(&c.Status, in, op)
}

func projectCategory(_ context.Context, c *catalog.Category, _ projection.RefResolver) ([]projection.Field, error) {
	return projection.NewBuilder().
		Add("id", c.ID).
		Add("name", c.Name).
		Add("slug", c.Slug).
		Add("status", c.Status).
		Audit(&c.Audit).
		Fields(), nil
}

// SubCategoryDefinition describes the sub-category resource. Name and slug
// are unique among sub-categories of the same parent category.
func SubCategoryDefinition() crud.Definition[catalog.SubCategory] {
	return crud.Definition[catalog.SubCategory]{
		Resource: "sub-category",
		Rules:    SubCategoryRules,
		Apply:    applySubCategory,
		Current: func(s *catalog.SubCategory) validation.Fields {
			return validation.Fields{"category_id": s.CategoryID}
		},
		Project: projectSubCategory,
	}
}

// SubCategoryRules is the sub-category constraint table.
func SubCategoryRules(_ validation.Operation, id int64) validation.RuleSet {
	return validation.Rules(
		validation.Field("category_id",
			validation.Required(), validation.Integer(),
			validation.ExistsIn(TableCategories, "id").PerTenant()),
		validation.Field("name",
			validation.Required(), validation.String(), validation.MaxLength(255),
			validation.UniqueIn(TableSubCategories, "name").Except(id).ScopedBy("category_id").PerTenant()),
		validation.Field("slug",
			validation.Required(), validation.String(), validation.MaxLength(255),
			validation.UniqueIn(TableSubCategories, "slug").Except(id).ScopedBy("category_id").PerTenant()),
		validation.Field("status", validation.Required(), validation.Boolean()),
	).WithMessages(map[string]string{
		"category_id.required": "Please select a category.",
		"category_id.exists":   "The selected category does not exist.",
	})
}

func applySubCategory(s *catalog.SubCategory, in validation.Fields, op validation.Operation) {
	if in.Sent(op, "category_id") {
		s.CategoryID = in.Int64("category_id")
	}
	if in.Sent(op, "name") {
		s.Name = in.String("name")
	}
	if in.Sent(op, "slug") {
		s.Slug = in.String("slug")
	}
	crud.ApplyStatus(&s.Status, in, op)
}

func projectSubCategory(ctx context.Context, s *catalog.SubCategory, refs projection.RefResolver) ([]projection.Field, error) {
	category, err := refs.Resolve(ctx, TableCategories, &s.CategoryID)
	if err != nil {
		return nil, err
	}
	return projection.NewBuilder().
		Add("id", s.ID).
		Relation("category_id", "category_name", category).
		Add("name", s.Name).
		Add("slug", s.Slug).
		Add("status", s.Status).
		Timestamps(&s.Audit).
		Fields(), nil
}
