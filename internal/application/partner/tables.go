package partner

// Table names referenced by constraint tables and relation lookups.
const (
	TableCompanies        = "companies"
	TableStores           = "stores"
	TableLocations        = "locations"
	TableCustomerContacts = "customer_contacts"
)
