package catalog

import "github.com/stockpile/backend/internal/domain/shared"

// Model is a concrete model line of a brand within a category tree,
// e.g. brand "Acme", category "Phones", sub-category "Android", model "X1".
type Model struct {
	shared.TenantAudit
	BrandID       int64
	CategoryID    int64
	SubCategoryID int64
	Name          string
	Slug          *string
	Status        bool
}
