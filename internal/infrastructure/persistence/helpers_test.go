package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stockpile/backend/internal/domain/shared"
	"github.com/stockpile/backend/internal/infrastructure/persistence/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var (
	testTenant  = uuid.MustParse("6f1c4e0a-8a57-4c4f-9d1e-3b7f2a6c9e01")
	otherTenant = uuid.MustParse("0b9e3f52-1d7a-4e8b-a6c4-5f2d8e9a7b13")
)

// newTestDB opens a private in-memory SQLite database with every table.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A single connection keeps every query on the same in-memory database.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

func tenantCtx(tenantID uuid.UUID) context.Context {
	return shared.WithActor(context.Background(), shared.Actor{UserID: 1, TenantID: tenantID})
}
