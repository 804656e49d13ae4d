package catalog

import "github.com/stockpile/backend/internal/domain/shared"

// Repository contracts for catalog records.
type (
	BrandRepository       = shared.Repository[Brand]
	CategoryRepository    = shared.Repository[Category]
	SubCategoryRepository = shared.Repository[SubCategory]
	ModelRepository       = shared.Repository[Model]
	UnitRepository        = shared.Repository[Unit]
	ProductRepository     = shared.Repository[Product]
	LookupRepository      = shared.Repository[Lookup]
)
