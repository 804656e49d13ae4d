package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// sortFields returns the common audit columns plus extra.
func sortFields(extra ...string) map[string]bool {
	fields := map[string]bool{
		"id":         true,
		"created_at": true,
		"updated_at": true,
	}
	for _, f := range extra {
		fields[f] = true
	}
	return fields
}

// Allowed sort fields per table
var (
	CommonSortFields          = sortFields()
	BrandSortFields           = sortFields("name", "slug", "status")
	CategorySortFields        = sortFields("name", "slug", "status")
	SubCategorySortFields     = sortFields("name", "slug", "status", "category_id")
	UnitSortFields            = sortFields("name", "short_name", "status")
	LookupSortFields          = sortFields("type", "code", "name", "status")
	ModelSortFields           = sortFields("name", "slug", "status", "brand_id", "category_id", "sub_category_id")
	ProductSortFields         = sortFields("name", "code", "status", "brand_id", "category_id", "model_id")
	CompanySortFields         = sortFields("name", "code", "status")
	StoreSortFields           = sortFields("name", "code", "status", "company_id")
	LocationSortFields        = sortFields("name", "code", "status", "store_id")
	CustomerContactSortFields = sortFields("customer_name", "district", "company_id")
	PurchasePriceSortFields   = sortFields("po_no", "product_id", "price", "qty", "month", "year", "date")
	RoleSortFields            = sortFields("name", "guard_name")
	PermissionSortFields      = sortFields("name", "guard_name")
)
