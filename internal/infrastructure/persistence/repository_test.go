package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stockpile/backend/internal/domain/catalog"
	"github.com/stockpile/backend/internal/domain/shared"
	"github.com/stockpile/backend/internal/infrastructure/persistence/models"
	"github.com/stockpile/backend/internal/infrastructure/persistence/tenant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockBrandRepository(t *testing.T) (*GormRepository[catalog.Brand, models.BrandModel, *models.BrandModel], sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: mockDB, DriverName: "postgres"}), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewBrandRepository(gormDB), mock, mockDB
}

func seedBrand(t *testing.T, repo *GormRepository[catalog.Brand, models.BrandModel, *models.BrandModel], ctx context.Context, name string) *catalog.Brand {
	t.Helper()
	tenantID, _ := tenant.FromContext(ctx)
	b := &catalog.Brand{Name: name, Slug: name, Status: true}
	b.TenantID = tenantID
	require.NoError(t, repo.Create(ctx, b))
	return b
}

func TestGormRepository_FindByID_SQL(t *testing.T) {
	t.Run("filters by tenant and live rows", func(t *testing.T) {
		repo, mock, mockDB := newMockBrandRepository(t)
		defer mockDB.Close()

		now := time.Now()
		rows := sqlmock.NewRows([]string{"id", "tenant_id", "name", "slug", "status", "created_at", "updated_at"}).
			AddRow(5, testTenant, "Acme", "acme", true, now, now)

		// Scope conditions are applied at execution, so only the fragments are pinned.
		mock.ExpectQuery(`SELECT \* FROM "brands" WHERE .*"tenant_id" = \$\d.*"brands"."deleted_at" IS NULL ORDER BY .* LIMIT .*`).
			WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), 1).
			WillReturnRows(rows)

		brand, err := repo.FindByID(tenantCtx(testTenant), 5)

		require.NoError(t, err)
		assert.Equal(t, int64(5), brand.ID)
		assert.Equal(t, "Acme", brand.Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps record not found", func(t *testing.T) {
		repo, mock, mockDB := newMockBrandRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "brands"`).WillReturnError(gorm.ErrRecordNotFound)

		brand, err := repo.FindByID(tenantCtx(testTenant), 9)

		assert.Nil(t, brand)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormRepository_Lifecycle(t *testing.T) {
	db := newTestDB(t)
	repo := NewBrandRepository(db)
	ctx := tenantCtx(testTenant)

	brand := seedBrand(t, repo, ctx, "acme")
	require.NotZero(t, brand.ID)
	assert.False(t, brand.CreatedAt.IsZero())

	t.Run("update persists changes", func(t *testing.T) {
		brand.Name = "Acme Corp"
		require.NoError(t, repo.Update(ctx, brand))

		got, err := repo.FindByID(ctx, brand.ID)
		require.NoError(t, err)
		assert.Equal(t, "Acme Corp", got.Name)
	})

	t.Run("soft delete records deleter and hides row", func(t *testing.T) {
		deleter := int64(42)
		require.NoError(t, repo.Delete(ctx, brand.ID, &deleter))

		_, err := repo.FindByID(ctx, brand.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)

		trashed, err := repo.FindByIDWithTrashed(ctx, brand.ID)
		require.NoError(t, err)
		assert.True(t, trashed.IsDeleted())
		require.NotNil(t, trashed.DeletedBy)
		assert.Equal(t, deleter, *trashed.DeletedBy)
	})

	t.Run("restore clears markers", func(t *testing.T) {
		require.NoError(t, repo.Restore(ctx, brand.ID))

		got, err := repo.FindByID(ctx, brand.ID)
		require.NoError(t, err)
		assert.False(t, got.IsDeleted())
		assert.Nil(t, got.DeletedBy)
	})

	t.Run("restore of live row is not found", func(t *testing.T) {
		assert.ErrorIs(t, repo.Restore(ctx, brand.ID), shared.ErrNotFound)
	})

	t.Run("force delete removes row", func(t *testing.T) {
		require.NoError(t, repo.ForceDelete(ctx, brand.ID))

		_, err := repo.FindByIDWithTrashed(ctx, brand.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.ErrorIs(t, repo.ForceDelete(ctx, brand.ID), shared.ErrNotFound)
	})
}

func TestGormRepository_TenantIsolation(t *testing.T) {
	db := newTestDB(t)
	repo := NewBrandRepository(db)

	mine := seedBrand(t, repo, tenantCtx(testTenant), "mine")
	seedBrand(t, repo, tenantCtx(otherTenant), "theirs")

	_, err := repo.FindByID(tenantCtx(otherTenant), mine.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	items, total, err := repo.FindAll(tenantCtx(testTenant), shared.DefaultFilter())
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.Equal(t, "mine", items[0].Name)

	_, _, err = repo.FindAll(context.Background(), shared.DefaultFilter())
	assert.ErrorIs(t, err, tenant.ErrTenantIDRequired)
}

func TestGormRepository_FindAll(t *testing.T) {
	db := newTestDB(t)
	repo := NewBrandRepository(db)
	ctx := tenantCtx(testTenant)

	for _, name := range []string{"alpha", "bravo", "charlie", "delta", "echo"} {
		seedBrand(t, repo, ctx, name)
	}

	t.Run("paginates with total", func(t *testing.T) {
		items, total, err := repo.FindAll(ctx, shared.Filter{Page: 2, PageSize: 2, OrderBy: "name", OrderDir: "asc"})
		require.NoError(t, err)
		assert.Equal(t, int64(5), total)
		require.Len(t, items, 2)
		assert.Equal(t, "charlie", items[0].Name)
		assert.Equal(t, "delta", items[1].Name)
	})

	t.Run("search is case-insensitive", func(t *testing.T) {
		items, total, err := repo.FindAll(ctx, shared.Filter{Search: "RAV", PageSize: 10})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Equal(t, "bravo", items[0].Name)
	})

	t.Run("unknown sort column falls back to id desc", func(t *testing.T) {
		items, _, err := repo.FindAll(ctx, shared.Filter{OrderBy: "name; DROP TABLE brands", PageSize: 10})
		require.NoError(t, err)
		require.Len(t, items, 5)
		assert.Equal(t, "echo", items[0].Name)
	})

	t.Run("equality filters apply to whitelisted columns", func(t *testing.T) {
		items, _, err := repo.FindAll(ctx, shared.Filter{PageSize: 10, Filters: map[string]any{"status": false, "name": "alpha"}})
		require.NoError(t, err)
		assert.Empty(t, items)
	})
}

func TestGormRepository_DuplicateKeyIsAlreadyExists(t *testing.T) {
	db := newTestDB(t)
	db.Config.TranslateError = true
	require.NoError(t, db.Exec("CREATE UNIQUE INDEX uq_brands_name ON brands (tenant_id, name)").Error)
	repo := NewBrandRepository(db)
	ctx := tenantCtx(testTenant)

	seedBrand(t, repo, ctx, "acme")

	dup := &catalog.Brand{Name: "acme", Slug: "acme-2", Status: true}
	dup.TenantID = testTenant
	err := repo.Create(ctx, dup)
	assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	other := seedBrand(t, repo, ctx, "other")
	other.Name = "acme"
	assert.ErrorIs(t, repo.Update(ctx, other), shared.ErrAlreadyExists)

	theirs := &catalog.Brand{Name: "acme", Slug: "acme", Status: true}
	theirs.TenantID = otherTenant
	assert.NoError(t, repo.Create(tenantCtx(otherTenant), theirs))
}

func TestTranslateWriteError(t *testing.T) {
	assert.ErrorIs(t, translateWriteError(gorm.ErrDuplicatedKey), shared.ErrAlreadyExists)
	assert.Equal(t, gorm.ErrInvalidData, translateWriteError(gorm.ErrInvalidData))
	assert.NoError(t, translateWriteError(nil))
}
