package persistence

import (
	"github.com/stockpile/backend/internal/domain/catalog"
	"github.com/stockpile/backend/internal/domain/partner"
	"github.com/stockpile/backend/internal/domain/purchasing"
	"github.com/stockpile/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// Catalog repositories

// NewBrandRepository creates the brand repository
func NewBrandRepository(db *gorm.DB) *GormRepository[catalog.Brand, models.BrandModel, *models.BrandModel] {
	return NewGormRepository[catalog.Brand, models.BrandModel](db, RepositoryConfig{
		SortFields:    BrandSortFields,
		SearchColumns: []string{"name", "slug"},
		FilterColumns: []string{"status"},
		TenantScoped:  true,
	})
}

// NewCategoryRepository creates the category repository
func NewCategoryRepository(db *gorm.DB) *GormRepository[catalog.Category, models.CategoryModel, *models.CategoryModel] {
	return NewGormRepository[catalog.Category, models.CategoryModel](db, RepositoryConfig{
		SortFields:    CategorySortFields,
		SearchColumns: []string{"name", "slug"},
		FilterColumns: []string{"status"},
		TenantScoped:  true,
	})
}

// NewSubCategoryRepository creates the sub-category repository
func NewSubCategoryRepository(db *gorm.DB) *GormRepository[catalog.SubCategory, models.SubCategoryModel, *models.SubCategoryModel] {
	return NewGormRepository[catalog.SubCategory, models.SubCategoryModel](db, RepositoryConfig{
		SortFields:    SubCategorySortFields,
		SearchColumns: []string{"name", "slug"},
		FilterColumns: []string{"status", "category_id"},
		TenantScoped:  true,
	})
}

// NewUnitRepository creates the unit repository
func NewUnitRepository(db *gorm.DB) *GormRepository[catalog.Unit, models.UnitModel, *models.UnitModel] {
	return NewGormRepository[catalog.Unit, models.UnitModel](db, RepositoryConfig{
		SortFields:    UnitSortFields,
		SearchColumns: []string{"name", "short_name"},
		FilterColumns: []string{"status"},
		TenantScoped:  true,
	})
}

// NewLookupRepository creates the lookup repository
func NewLookupRepository(db *gorm.DB) *GormRepository[catalog.Lookup, models.LookupModel, *models.LookupModel] {
	return NewGormRepository[catalog.Lookup, models.LookupModel](db, RepositoryConfig{
		SortFields:    LookupSortFields,
		SearchColumns: []string{"code", "name"},
		FilterColumns: []string{"status", "type"},
		TenantScoped:  true,
	})
}

// NewModelRepository creates the product model repository
func NewModelRepository(db *gorm.DB) *GormRepository[catalog.Model, models.ModelModel, *models.ModelModel] {
	return NewGormRepository[catalog.Model, models.ModelModel](db, RepositoryConfig{
		SortFields:    ModelSortFields,
		SearchColumns: []string{"name", "slug"},
		FilterColumns: []string{"status", "brand_id", "category_id", "sub_category_id"},
		TenantScoped:  true,
	})
}

// NewProductRepository creates the product repository
func NewProductRepository(db *gorm.DB) *GormRepository[catalog.Product, models.ProductModel, *models.ProductModel] {
	return NewGormRepository[catalog.Product, models.ProductModel](db, RepositoryConfig{
		SortFields:    ProductSortFields,
		SearchColumns: []string{"name", "code"},
		FilterColumns: []string{"status", "brand_id", "category_id", "sub_category_id", "model_id", "unit_id"},
		TenantScoped:  true,
	})
}

// Partner repositories

// NewCompanyRepository creates the company repository
func NewCompanyRepository(db *gorm.DB) *GormRepository[partner.Company, models.CompanyModel, *models.CompanyModel] {
	return NewGormRepository[partner.Company, models.CompanyModel](db, RepositoryConfig{
		SortFields:    CompanySortFields,
		SearchColumns: []string{"name", "code", "email"},
		FilterColumns: []string{"status"},
		TenantScoped:  true,
	})
}

// NewStoreRepository creates the store repository
func NewStoreRepository(db *gorm.DB) *GormRepository[partner.Store, models.StoreModel, *models.StoreModel] {
	return NewGormRepository[partner.Store, models.StoreModel](db, RepositoryConfig{
		SortFields:    StoreSortFields,
		SearchColumns: []string{"name", "code"},
		FilterColumns: []string{"status", "company_id"},
		TenantScoped:  true,
	})
}

// NewLocationRepository creates the location repository
func NewLocationRepository(db *gorm.DB) *GormRepository[partner.Location, models.LocationModel, *models.LocationModel] {
	return NewGormRepository[partner.Location, models.LocationModel](db, RepositoryConfig{
		SortFields:    LocationSortFields,
		SearchColumns: []string{"name", "code"},
		FilterColumns: []string{"status", "store_id"},
		TenantScoped:  true,
	})
}

// NewCustomerContactRepository creates the customer contact repository
func NewCustomerContactRepository(db *gorm.DB) *GormRepository[partner.CustomerContact, models.CustomerContactModel, *models.CustomerContactModel] {
	return NewGormRepository[partner.CustomerContact, models.CustomerContactModel](db, RepositoryConfig{
		SortFields:    CustomerContactSortFields,
		SearchColumns: []string{"customer_name", "district", "contact_one"},
		FilterColumns: []string{"company_id", "district"},
		TenantScoped:  true,
	})
}

// Purchasing repositories

// NewPurchasePriceRepository creates the purchase price repository
func NewPurchasePriceRepository(db *gorm.DB) *GormRepository[purchasing.PurchasePrice, models.PurchasePriceModel, *models.PurchasePriceModel] {
	return NewGormRepository[purchasing.PurchasePrice, models.PurchasePriceModel](db, RepositoryConfig{
		SortFields:    PurchasePriceSortFields,
		SearchColumns: []string{"po_no"},
		FilterColumns: []string{"product_id", "month", "year"},
		TenantScoped:  true,
	})
}
