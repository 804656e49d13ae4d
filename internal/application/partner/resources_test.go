package partner_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stockpile/backend/internal/application/crud"
	"github.com/stockpile/backend/internal/application/partner"
	"github.com/stockpile/backend/internal/application/projection"
	"github.com/stockpile/backend/internal/application/validation"
	domain "github.com/stockpile/backend/internal/domain/partner"
	"github.com/stockpile/backend/internal/domain/shared"
	"github.com/stockpile/backend/internal/infrastructure/persistence"
	"github.com/stockpile/backend/internal/infrastructure/persistence/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var (
	tenantA = uuid.MustParse("c3a1f2e4-5b6d-4c7e-8f9a-0b1c2d3e4f5a")
	tenantB = uuid.MustParse("1f2e3d4c-5b6a-4978-8695-a4b3c2d1e0f9")
)

type partnerFixture struct {
	companies *crud.Service[domain.Company]
	stores    *crud.Service[domain.Store]
	locations *crud.Service[domain.Location]
	contacts  *crud.Service[domain.CustomerContact]
	fired     []crud.Mutation
}

func newPartnerFixture(t *testing.T) *partnerFixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(models.All()...))

	f := &partnerFixture{}
	record := crud.HookFunc(func(_ context.Context, m crud.Mutation) error {
		f.fired = append(f.fired, m)
		return nil
	})
	v := validation.New(persistence.NewGormRecordChecker(db))
	refs := persistence.NewGormRefResolver(db)
	f.companies = crud.NewService(partner.CompanyDefinition(), persistence.NewCompanyRepository(db), v, refs,
		crud.WithHooks[domain.Company](record))
	f.stores = crud.NewService(partner.StoreDefinition(), persistence.NewStoreRepository(db), v, refs)
	f.locations = crud.NewService(partner.LocationDefinition(), persistence.NewLocationRepository(db), v, refs)
	f.contacts = crud.NewService(partner.CustomerContactDefinition(), persistence.NewCustomerContactRepository(db), v, refs)
	return f
}

func as(tenantID uuid.UUID) context.Context {
	return shared.WithActor(context.Background(), shared.Actor{UserID: 8, TenantID: tenantID})
}

func field(t *testing.T, r projection.Resource, key string) any {
	t.Helper()
	v, ok := r.Get(key)
	require.True(t, ok, "missing key %q", key)
	return v
}

func idOf(t *testing.T, r projection.Resource) int64 {
	t.Helper()
	return field(t, r, "id").(int64)
}

func failures(t *testing.T, err error) validation.Errors {
	t.Helper()
	var failed *validation.FailedError
	require.ErrorAs(t, err, &failed)
	return failed.Errors
}

func (f *partnerFixture) company(t *testing.T, ctx context.Context, name, code string) int64 {
	t.Helper()
	res, err := f.companies.Create(ctx, validation.Fields{"name": name, "code": code})
	require.NoError(t, err)
	return idOf(t, res)
}

func TestCompanyDefinition(t *testing.T) {
	f := newPartnerFixture(t)
	ctx := as(tenantA)

	res, err := f.companies.Create(ctx, validation.Fields{
		"name": "Northwind", "code": "NW", "email": "ops@northwind.test", "phone": nil,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"id", "name", "code", "email", "phone", "address", "status",
		"created_by", "updated_by", "created_at", "updated_at",
	}, res.Keys())
	email := field(t, res, "email").(*string)
	require.NotNil(t, email)
	assert.Equal(t, "ops@northwind.test", *email)
	assert.Nil(t, field(t, res, "phone"))
	createdBy := field(t, res, "created_by").(*int64)
	require.NotNil(t, createdBy)
	assert.Equal(t, int64(8), *createdBy)

	t.Run("name and code are unique per tenant", func(t *testing.T) {
		_, err := f.companies.Create(ctx, validation.Fields{"name": "Northwind", "code": "NW"})
		errs := failures(t, err)
		assert.Equal(t, "The name has already been taken.", errs["name"])
		assert.Equal(t, "The code has already been taken.", errs["code"])

		_, err = f.companies.Create(as(tenantB), validation.Fields{"name": "Northwind", "code": "NW"})
		assert.NoError(t, err)
	})

	t.Run("soft-deleted codes stay taken", func(t *testing.T) {
		id := f.company(t, ctx, "Contoso", "CT")
		require.NoError(t, f.companies.Delete(ctx, id))

		_, err := f.companies.Create(ctx, validation.Fields{"name": "Contoso 2", "code": "CT"})
		assert.Equal(t, "The code has already been taken.", failures(t, err)["code"])
	})

	t.Run("mutations notify hooks", func(t *testing.T) {
		require.NotEmpty(t, f.fired)
		assert.Equal(t, "company", f.fired[0].Resource)
		assert.Equal(t, crud.Created, f.fired[0].Event)
	})
}

func TestStoreAndLocationDefinitions(t *testing.T) {
	f := newPartnerFixture(t)
	ctx := as(tenantA)
	company := f.company(t, ctx, "Northwind", "NW")

	store, err := f.stores.Create(ctx, validation.Fields{
		"company_id": json.Number("1"), "name": "Main Street", "code": "MS-01", "address": "1 Main St",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"id", "company_id", "company_name", "name", "code", "address", "phone", "status",
		"created_by", "updated_by", "created_at", "updated_at",
	}, store.Keys())
	assert.Equal(t, company, field(t, store, "company_id"))
	assert.Equal(t, "Northwind", field(t, store, "company_name"))

	loc, err := f.locations.Create(ctx, validation.Fields{
		"store_id": idOf(t, store), "name": "Aisle 4", "code": "A4",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"id", "store_id", "store_name", "name", "code", "status",
		"created_by", "updated_by", "created_at", "updated_at",
	}, loc.Keys())
	assert.Equal(t, "Main Street", field(t, loc, "store_name"))

	t.Run("parents must exist in the tenant", func(t *testing.T) {
		_, err := f.stores.Create(as(tenantB), validation.Fields{"company_id": company, "name": "X", "code": "X"})
		assert.Equal(t, "The selected company id is invalid.", failures(t, err)["company_id"])

		_, err = f.locations.Create(ctx, validation.Fields{"store_id": 77, "name": "X", "code": "X"})
		assert.Equal(t, "The selected store id is invalid.", failures(t, err)["store_id"])
	})

	t.Run("codes are unique", func(t *testing.T) {
		_, err := f.stores.Create(ctx, validation.Fields{"company_id": company, "name": "Second", "code": "MS-01"})
		assert.Equal(t, "The code has already been taken.", failures(t, err)["code"])

		_, err = f.locations.Create(ctx, validation.Fields{"store_id": idOf(t, store), "name": "Aisle 5", "code": "A4"})
		assert.Equal(t, "The code has already been taken.", failures(t, err)["code"])
	})

	t.Run("list filters by parent", func(t *testing.T) {
		page, err := f.locations.List(ctx, shared.Filter{
			Page: 1, PageSize: 10, Filters: map[string]any{"store_id": idOf(t, store)},
		}, []string{"id", "code"})
		require.NoError(t, err)
		require.Len(t, page.Items, 1)
		assert.Equal(t, []string{"id", "code"}, page.Items[0].Keys())
		assert.Equal(t, "A4", field(t, page.Items[0], "code"))
	})
}

func TestCustomerContactDefinition(t *testing.T) {
	f := newPartnerFixture(t)
	ctx := as(tenantA)
	company := f.company(t, ctx, "Northwind", "NW")

	t.Run("custom required messages", func(t *testing.T) {
		_, err := f.contacts.Create(ctx, validation.Fields{"customer_name": "Ann"})
		errs := failures(t, err)
		assert.Equal(t, validation.Errors{
			"district":    "Please select a district.",
			"company_id":  "Please select a company.",
			"contact_one": "At least one contact number is required.",
		}, errs)
	})

	res, err := f.contacts.Create(ctx, validation.Fields{
		"district": "Colombo", "company_id": company, "customer_name": "Ann Perera",
		"contact_one": "0771234567", "contact_two": nil, "remarks": "prefers email",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"id", "district", "company_id", "company_name", "customer_name",
		"contact_one", "contact_two", "contact_three", "remarks", "created_at", "updated_at",
	}, res.Keys())
	assert.Equal(t, "Northwind", field(t, res, "company_name"))
	assert.Nil(t, field(t, res, "contact_two"))
	assert.IsType(t, time.Time{}, field(t, res, "created_at"))

	t.Run("partial update keeps other fields", func(t *testing.T) {
		updated, err := f.contacts.Update(ctx, idOf(t, res), validation.Fields{
			"district": "Kandy", "company_id": company, "customer_name": "Ann Perera",
			"contact_one": "0771234567", "contact_two": "0112345678",
		})
		require.NoError(t, err)
		assert.Equal(t, "Kandy", field(t, updated, "district"))
		two := field(t, updated, "contact_two").(*string)
		require.NotNil(t, two)
		assert.Equal(t, "0112345678", *two)
		remarks := field(t, updated, "remarks").(*string)
		require.NotNil(t, remarks)
		assert.Equal(t, "prefers email", *remarks)
	})

	t.Run("lengths are bounded", func(t *testing.T) {
		_, err := f.contacts.Create(ctx, validation.Fields{
			"district": "Colombo", "company_id": company, "customer_name": "Bob",
			"contact_one": "012345678901234567890",
		})
		assert.Equal(t, "The contact one may not be greater than 20 characters.", failures(t, err)["contact_one"])
	})
}
