package catalog

// Table names referenced by constraint tables and relation lookups.
const (
	TableBrands        = "brands"
	TableCategories    = "categories"
	TableSubCategories = "sub_categories"
	TableModels        = "models"
	TableUnits         = "units"
	TableProducts      = "products"
	TableLookups       = "lookups"
)
