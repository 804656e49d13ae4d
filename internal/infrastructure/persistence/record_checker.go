package persistence

import (
	"context"
	"fmt"
	"regexp"
	"sort"

	"github.com/stockpile/backend/internal/application/validation"
	"github.com/stockpile/backend/internal/infrastructure/persistence/tenant"
	"gorm.io/gorm"
)

var identifierPattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

func checkIdentifiers(names ...string) error {
	for _, n := range names {
		if !identifierPattern.MatchString(n) {
			return fmt.Errorf("invalid identifier %q", n)
		}
	}
	return nil
}

// GormRecordChecker answers exists-in and unique-in lookups with COUNT queries.
type GormRecordChecker struct {
	db *gorm.DB
}

// NewGormRecordChecker creates a new GormRecordChecker
func NewGormRecordChecker(db *gorm.DB) *GormRecordChecker {
	return &GormRecordChecker{db: db}
}

// Exists reports whether a live row has Column = Value.
func (c *GormRecordChecker) Exists(ctx context.Context, q validation.ExistsQuery) (bool, error) {
	if err := checkIdentifiers(q.Table, q.Column); err != nil {
		return false, err
	}
	query := c.db.WithContext(ctx).Table(q.Table).
		Where(q.Column+" = ?", q.Value).
		Where("deleted_at IS NULL")
	if q.Tenant {
		query = query.Scopes(tenant.Scope(ctx))
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Taken reports whether another row, soft-deleted or not, already holds Value
// within the given scope.
func (c *GormRecordChecker) Taken(ctx context.Context, q validation.UniqueQuery) (bool, error) {
	if err := checkIdentifiers(q.Table, q.Column); err != nil {
		return false, err
	}
	query := c.db.WithContext(ctx).Table(q.Table).Where(q.Column+" = ?", q.Value)
	if q.ExceptID != 0 {
		query = query.Where("id <> ?", q.ExceptID)
	}

	cols := make([]string, 0, len(q.Scope))
	for col := range q.Scope {
		cols = append(cols, col)
	}
	sort.Strings(cols)
	for _, col := range cols {
		if err := checkIdentifiers(col); err != nil {
			return false, err
		}
		if v := q.Scope[col]; v == nil {
			query = query.Where(col + " IS NULL")
		} else {
			query = query.Where(col+" = ?", v)
		}
	}
	if q.Tenant {
		query = query.Scopes(tenant.Scope(ctx))
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
