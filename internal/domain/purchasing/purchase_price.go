// Package purchasing records the prices products were bought at.
package purchasing

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/stockpile/backend/internal/domain/shared"
)

// PurchasePrice is one purchase-order line price for a product in a period.
type PurchasePrice struct {
	shared.TenantAudit
	PONo      string
	ProductID *int64
	Price     decimal.Decimal
	Qty       int64
	Month     int
	Year      int
	Date      time.Time
}

// PurchasePriceRepository is the storage contract for purchase prices.
type PurchasePriceRepository = shared.Repository[PurchasePrice]
