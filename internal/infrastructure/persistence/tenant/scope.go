// Package tenant restricts queries on tenant-owned tables to the caller's tenant.
package tenant

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/stockpile/backend/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Column is the tenant discriminator column of every tenant-owned table.
const Column = "tenant_id"

// ErrTenantIDRequired is returned when a tenant-scoped query runs without a caller.
var ErrTenantIDRequired = errors.New("tenant ID is required for this query")

// FromContext returns the caller's tenant, if any.
func FromContext(ctx context.Context) (uuid.UUID, bool) {
	actor, ok := shared.ActorFrom(ctx)
	if !ok || actor.TenantID == uuid.Nil {
		return uuid.Nil, false
	}
	return actor.TenantID, true
}

// Scope returns a GORM scope filtering the current table by the caller's
// tenant. Without a caller the statement fails with ErrTenantIDRequired.
func Scope(ctx context.Context) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		tenantID, ok := FromContext(ctx)
		if !ok {
			_ = db.AddError(ErrTenantIDRequired)
			return db
		}
		return db.Where(clause.Eq{
			Column: clause.Column{Table: clause.CurrentTable, Name: Column},
			Value:  tenantID,
		})
	}
}
