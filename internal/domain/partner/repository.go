package partner

import "github.com/stockpile/backend/internal/domain/shared"

// Repository contracts for partner records.
type (
	CompanyRepository         = shared.Repository[Company]
	StoreRepository           = shared.Repository[Store]
	LocationRepository        = shared.Repository[Location]
	CustomerContactRepository = shared.Repository[CustomerContact]
)
