package models

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/stockpile/backend/internal/domain/purchasing"
)

// PurchasePriceModel is the persistence model for PurchasePrice.
type PurchasePriceModel struct {
	TenantAuditModel
	PONo      string          `gorm:"column:po_no;type:varchar(50);not null;index"`
	ProductID *int64          `gorm:"index"`
	Price     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Qty       int64           `gorm:"not null"`
	Month     int             `gorm:"not null"`
	Year      int             `gorm:"not null"`
	Date      time.Time       `gorm:"type:date;not null"`
}

// TableName returns the table name for GORM
func (PurchasePriceModel) TableName() string { return "purchase_prices" }

// ToDomain converts to the domain entity
func (m *PurchasePriceModel) ToDomain() *purchasing.PurchasePrice {
	return &purchasing.PurchasePrice{
		TenantAudit: m.TenantAuditModel.ToDomain(),
		PONo:        m.PONo,
		ProductID:   m.ProductID,
		Price:       m.Price,
		Qty:         m.Qty,
		Month:       m.Month,
		Year:        m.Year,
		Date:        m.Date,
	}
}

// FromDomain populates the model from the domain entity
func (m *PurchasePriceModel) FromDomain(p *purchasing.PurchasePrice) {
	m.FromDomainTenantAudit(p.TenantAudit)
	m.PONo = p.PONo
	m.ProductID = p.ProductID
	m.Price = p.Price
	m.Qty = p.Qty
	m.Month = p.Month
	m.Year = p.Year
	m.Date = p.Date
}
