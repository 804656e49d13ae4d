package catalog

import "github.com/stockpile/backend/internal/domain/shared"

// Product is a sellable item. Every classification reference is optional.
type Product struct {
	shared.TenantAudit
	Name          string
	Code          string
	BrandID       *int64
	CategoryID    *int64
	SubCategoryID *int64
	ModelID       *int64
	UnitID        *int64
	Status        bool
}
