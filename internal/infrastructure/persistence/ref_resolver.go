package persistence

import (
	"context"

	"github.com/stockpile/backend/internal/application/projection"
	"github.com/stockpile/backend/internal/infrastructure/persistence/tenant"
	"gorm.io/gorm"
)

// displayColumns maps tables whose display column is not "name".
var displayColumns = map[string]string{
	"customer_contacts": "customer_name",
	"purchase_prices":   "po_no",
	"users":             "username",
}

// globalTables are not partitioned by tenant.
var globalTables = map[string]bool{
	"roles":       true,
	"permissions": true,
}

// GormRefResolver loads relation display names by primary key.
type GormRefResolver struct {
	db *gorm.DB
}

// NewGormRefResolver creates a new GormRefResolver
func NewGormRefResolver(db *gorm.DB) *GormRefResolver {
	return &GormRefResolver{db: db}
}

// Resolve returns the id and display name of a live row, nil when id is nil
// or the row is missing or soft-deleted.
func (r *GormRefResolver) Resolve(ctx context.Context, table string, id *int64) (*projection.Ref, error) {
	if id == nil {
		return nil, nil
	}
	col := displayColumns[table]
	if col == "" {
		col = "name"
	}
	if err := checkIdentifiers(table, col); err != nil {
		return nil, err
	}

	query := r.db.WithContext(ctx).Table(table).
		Select("id, "+col+" AS name").
		Where("id = ? AND deleted_at IS NULL", *id)
	if _, ok := tenant.FromContext(ctx); ok && !globalTables[table] {
		query = query.Scopes(tenant.Scope(ctx))
	}

	var rows []projection.Ref
	if err := query.Limit(1).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}
