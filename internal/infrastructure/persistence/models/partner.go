package models

import (
	"github.com/stockpile/backend/internal/domain/partner"
)

// CompanyModel is the persistence model for Company.
type CompanyModel struct {
	TenantAuditModel
	Name    string  `gorm:"type:varchar(255);not null"`
	Code    string  `gorm:"type:varchar(50);not null"`
	Email   *string `gorm:"type:varchar(255)"`
	Phone   *string `gorm:"type:varchar(20)"`
	Address *string `gorm:"type:varchar(500)"`
	Status  bool    `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (CompanyModel) TableName() string { return "companies" }

// ToDomain converts to the domain entity
func (m *CompanyModel) ToDomain() *partner.Company {
	return &partner.Company{
		TenantAudit: m.TenantAuditModel.ToDomain(),
		Name:        m.Name,
		Code:        m.Code,
		Email:       m.Email,
		Phone:       m.Phone,
		Address:     m.Address,
		Status:      m.Status,
	}
}

// FromDomain populates the model from the domain entity
func (m *CompanyModel) FromDomain(c *partner.Company) {
	m.FromDomainTenantAudit(c.TenantAudit)
	m.Name = c.Name
	m.Code = c.Code
	m.Email = c.Email
	m.Phone = c.Phone
	m.Address = c.Address
	m.Status = c.Status
}

// StoreModel is the persistence model for Store.
type StoreModel struct {
	TenantAuditModel
	CompanyID int64   `gorm:"not null;index"`
	Name      string  `gorm:"type:varchar(255);not null"`
	Code      string  `gorm:"type:varchar(50);not null"`
	Address   *string `gorm:"type:varchar(500)"`
	Phone     *string `gorm:"type:varchar(20)"`
	Status    bool    `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (StoreModel) TableName() string { return "stores" }

// ToDomain converts to the domain entity
func (m *StoreModel) ToDomain() *partner.Store {
	return &partner.Store{
		TenantAudit: m.TenantAuditModel.ToDomain(),
		CompanyID:   m.CompanyID,
		Name:        m.Name,
		Code:        m.Code,
		Address:     m.Address,
		Phone:       m.Phone,
		Status:      m.Status,
	}
}

// FromDomain populates the model from the domain entity
func (m *StoreModel) FromDomain(s *partner.Store) {
	m.FromDomainTenantAudit(s.TenantAudit)
	m.CompanyID = s.CompanyID
	m.Name = s.Name
	m.Code = s.Code
	m.Address = s.Address
	m.Phone = s.Phone
	m.Status = s.Status
}

// LocationModel is the persistence model for Location.
type LocationModel struct {
	TenantAuditModel
	StoreID int64  `gorm:"not null;index"`
	Name    string `gorm:"type:varchar(255);not null"`
	Code    string `gorm:"type:varchar(50);not null"`
	Status  bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (LocationModel) TableName() string { return "locations" }

// ToDomain converts to the domain entity
func (m *LocationModel) ToDomain() *partner.Location {
	return &partner.Location{
		TenantAudit: m.TenantAuditModel.ToDomain(),
		StoreID:     m.StoreID,
		Name:        m.Name,
		Code:        m.Code,
		Status:      m.Status,
	}
}

// FromDomain populates the model from the domain entity
func (m *LocationModel) FromDomain(l *partner.Location) {
	m.FromDomainTenantAudit(l.TenantAudit)
	m.StoreID = l.StoreID
	m.Name = l.Name
	m.Code = l.Code
	m.Status = l.Status
}

// CustomerContactModel is the persistence model for CustomerContact.
type CustomerContactModel struct {
	TenantAuditModel
	District     string  `gorm:"type:varchar(255);not null"`
	CompanyID    int64   `gorm:"not null;index"`
	CustomerName string  `gorm:"type:varchar(255);not null"`
	ContactOne   string  `gorm:"type:varchar(20);not null"`
	ContactTwo   *string `gorm:"type:varchar(20)"`
	ContactThree *string `gorm:"type:varchar(20)"`
	Remarks      *string `gorm:"type:varchar(1000)"`
}

// TableName returns the table name for GORM
func (CustomerContactModel) TableName() string { return "customer_contacts" }

// ToDomain converts to the domain entity
func (m *CustomerContactModel) ToDomain() *partner.CustomerContact {
	return &partner.CustomerContact{
		TenantAudit:  m.TenantAuditModel.ToDomain(),
		District:     m.District,
		CompanyID:    m.CompanyID,
		CustomerName: m.CustomerName,
		ContactOne:   m.ContactOne,
		ContactTwo:   m.ContactTwo,
		ContactThree: m.ContactThree,
		Remarks:      m.Remarks,
	}
}

// FromDomain populates the model from the domain entity
func (m *CustomerContactModel) FromDomain(c *partner.CustomerContact) {
	m.FromDomainTenantAudit(c.TenantAudit)
	m.District = c.District
	m.CompanyID = c.CompanyID
	m.CustomerName = c.CustomerName
	m.ContactOne = c.ContactOne
	m.ContactTwo = c.ContactTwo
	m.ContactThree = c.ContactThree
	m.Remarks = c.Remarks
}
