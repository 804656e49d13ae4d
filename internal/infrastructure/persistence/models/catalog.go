package models

import (
	"github.com/stockpile/backend/internal/domain/catalog"
)

// BrandModel is the persistence model for Brand.
type BrandModel struct {
	TenantAuditModel
	Name   string `gorm:"type:varchar(255);not null"`
	Slug   string `gorm:"type:varchar(255)"`
	Status bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (BrandModel) TableName() string { return "brands" }

// ToDomain converts to the domain entity
func (m *BrandModel) ToDomain() *catalog.Brand {
	return &catalog.Brand{TenantAudit: m.TenantAuditModel.ToDomain(), Name: m.Name, Slug: m.Slug, Status: m.Status}
}

// FromDomain populates the model from the domain entity
func (m *BrandModel) FromDomain(b *catalog.Brand) {
	m.FromDomainTenantAudit(b.TenantAudit)
	m.Name = b.Name
	m.Slug = b.Slug
	m.Status = b.Status
}

// CategoryModel is the persistence model for Category.
type CategoryModel struct {
	TenantAuditModel
	Name   string `gorm:"type:varchar(255);not null"`
	Slug   string `gorm:"type:varchar(255)"`
	Status bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (CategoryModel) TableName() string { return "categories" }

// ToDomain converts to the domain entity
func (m *CategoryModel) ToDomain() *catalog.Category {
	return &catalog.Category{TenantAudit: m.TenantAuditModel.ToDomain(), Name: m.Name, Slug: m.Slug, Status: m.Status}
}

// FromDomain populates the model from the domain entity
func (m *CategoryModel) FromDomain(c *catalog.Category) {
	m.FromDomainTenantAudit(c.TenantAudit)
	m.Name = c.Name
	m.Slug = c.Slug
	m.Status = c.Status
}

// SubCategoryModel is the persistence model for SubCategory.
type SubCategoryModel struct {
	TenantAuditModel
	CategoryID int64  `gorm:"not null;index"`
	Name       string `gorm:"type:varchar(255);not null"`
	Slug       string `gorm:"type:varchar(255)"`
	Status     bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (SubCategoryModel) TableName() string { return "sub_categories" }

// ToDomain converts to the domain entity
func (m *SubCategoryModel) ToDomain() *catalog.SubCategory {
	return &catalog.SubCategory{
		TenantAudit: m.TenantAuditModel.ToDomain(),
		CategoryID:  m.CategoryID,
		Name:        m.Name,
		Slug:        m.Slug,
		Status:      m.Status,
	}
}

// FromDomain populates the model from the domain entity
func (m *SubCategoryModel) FromDomain(s *catalog.SubCategory) {
	m.FromDomainTenantAudit(s.TenantAudit)
	m.CategoryID = s.CategoryID
	m.Name = s.Name
	m.Slug = s.Slug
	m.Status = s.Status
}

// UnitModel is the persistence model for Unit.
type UnitModel struct {
	TenantAuditModel
	Name      string `gorm:"type:varchar(255);not null"`
	ShortName string `gorm:"type:varchar(50);not null"`
	Status    bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (UnitModel) TableName() string { return "units" }

// ToDomain converts to the domain entity
func (m *UnitModel) ToDomain() *catalog.Unit {
	return &catalog.Unit{TenantAudit: m.TenantAuditModel.ToDomain(), Name: m.Name, ShortName: m.ShortName, Status: m.Status}
}

// FromDomain populates the model from the domain entity
func (m *UnitModel) FromDomain(u *catalog.Unit) {
	m.FromDomainTenantAudit(u.TenantAudit)
	m.Name = u.Name
	m.ShortName = u.ShortName
	m.Status = u.Status
}

// LookupModel is the persistence model for Lookup.
type LookupModel struct {
	TenantAuditModel
	Type   string `gorm:"type:varchar(100);not null;index"`
	Code   string `gorm:"type:varchar(100);not null"`
	Name   string `gorm:"type:varchar(255);not null"`
	Status bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (LookupModel) TableName() string { return "lookups" }

// ToDomain converts to the domain entity
func (m *LookupModel) ToDomain() *catalog.Lookup {
	return &catalog.Lookup{TenantAudit: m.TenantAuditModel.ToDomain(), Type: m.Type, Code: m.Code, Name: m.Name, Status: m.Status}
}

// FromDomain populates the model from the domain entity
func (m *LookupModel) FromDomain(l *catalog.Lookup) {
	m.FromDomainTenantAudit(l.TenantAudit)
	m.Type = l.Type
	m.Code = l.Code
	m.Name = l.Name
	m.Status = l.Status
}

// ModelModel is the persistence model for a product Model.
type ModelModel struct {
	TenantAuditModel
	BrandID       int64   `gorm:"not null;index"`
	CategoryID    int64   `gorm:"not null;index"`
	SubCategoryID int64   `gorm:"not null;index"`
	Name          string  `gorm:"type:varchar(255);not null"`
	Slug          *string `gorm:"type:varchar(255)"`
	Status        bool    `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (ModelModel) TableName() string { return "models" }

// ToDomain converts to the domain entity
func (m *ModelModel) ToDomain() *catalog.Model {
	return &catalog.Model{
		TenantAudit:   m.TenantAuditModel.ToDomain(),
		BrandID:       m.BrandID,
		CategoryID:    m.CategoryID,
		SubCategoryID: m.SubCategoryID,
		Name:          m.Name,
		Slug:          m.Slug,
		Status:        m.Status,
	}
}

// FromDomain populates the model from the domain entity
func (m *ModelModel) FromDomain(d *catalog.Model) {
	m.FromDomainTenantAudit(d.TenantAudit)
	m.BrandID = d.BrandID
	m.CategoryID = d.CategoryID
	m.SubCategoryID = d.SubCategoryID
	m.Name = d.Name
	m.Slug = d.Slug
	m.Status = d.Status
}

// ProductModel is the persistence model for Product.
type ProductModel struct {
	TenantAuditModel
	Name          string `gorm:"type:varchar(255);not null"`
	Code          string `gorm:"type:varchar(100);not null"`
	BrandID       *int64 `gorm:"index"`
	CategoryID    *int64 `gorm:"index"`
	SubCategoryID *int64 `gorm:"index"`
	ModelID       *int64 `gorm:"index"`
	UnitID        *int64 `gorm:"index"`
	Status        bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string { return "products" }

// ToDomain converts to the domain entity
func (m *ProductModel) ToDomain() *catalog.Product {
	return &catalog.Product{
		TenantAudit:   m.TenantAuditModel.ToDomain(),
		Name:          m.Name,
		Code:          m.Code,
		BrandID:       m.BrandID,
		CategoryID:    m.CategoryID,
		SubCategoryID: m.SubCategoryID,
		ModelID:       m.ModelID,
		UnitID:        m.UnitID,
		Status:        m.Status,
	}
}

// FromDomain populates the model from the domain entity
func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.FromDomainTenantAudit(p.TenantAudit)
	m.Name = p.Name
	m.Code = p.Code
	m.BrandID = p.BrandID
	m.CategoryID = p.CategoryID
	m.SubCategoryID = p.SubCategoryID
	m.ModelID = p.ModelID
	m.UnitID = p.UnitID
	m.Status = p.Status
}
