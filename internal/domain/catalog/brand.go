// Package catalog holds the product master data: brands, categories,
// sub-categories, models, units, products and lookup codes.
package catalog

import "github.com/stockpile/backend/internal/domain/shared"

// Brand is a product manufacturer or label.
type Brand struct {
	shared.TenantAudit
	Name   string
	Slug   string
	Status bool
}

// Category groups products at the top level.
type Category struct {
	shared.TenantAudit
	Name   string
	Slug   string
	Status bool
}

// SubCategory belongs to exactly one Category. Name and slug are unique
// among siblings of the same category only.
type SubCategory struct {
	shared.TenantAudit
	CategoryID int64
	Name       string
	Slug       string
	Status     bool
}

// Unit is a unit of measure such as "Piece" / "pcs".
type Unit struct {
	shared.TenantAudit
	Name      string
	ShortName string
	Status    bool
}
