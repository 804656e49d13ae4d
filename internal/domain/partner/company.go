// Package partner holds the companies the tenant trades with, their stores
// and storage locations, and customer contact records.
package partner

import "github.com/stockpile/backend/internal/domain/shared"

// Company is a trading partner.
type Company struct {
	shared.TenantAudit
	Name    string
	Code    string
	Email   *string
	Phone   *string
	Address *string
	Status  bool
}

// Store is a branch of a Company.
type Store struct {
	shared.TenantAudit
	CompanyID int64
	Name      string
	Code      string
	Address   *string
	Phone     *string
	Status    bool
}

// Location is a storage location inside a Store.
type Location struct {
	shared.TenantAudit
	StoreID int64
	Name    string
	Code    string
	Status  bool
}

// CustomerContact is a named contact person at a Company in a district.
type CustomerContact struct {
	shared.TenantAudit
	District     string
	CompanyID    int64
	CustomerName string
	ContactOne   string
	ContactTwo   *string
	ContactThree *string
	Remarks      *string
}
