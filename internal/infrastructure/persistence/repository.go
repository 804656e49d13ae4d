package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/stockpile/backend/internal/domain/shared"
	"github.com/stockpile/backend/internal/infrastructure/persistence/tenant"
	"gorm.io/gorm"
)

// Mapper is satisfied by a pointer to a persistence model that converts to
// and from its domain entity.
type Mapper[T any, M any] interface {
	*M
	ToDomain() *T
	FromDomain(entity *T)
}

// RepositoryConfig tunes listing behavior for one table.
type RepositoryConfig struct {
	// SortFields whitelists ORDER BY columns.
	SortFields map[string]bool
	// SearchColumns are matched case-insensitively against Filter.Search.
	SearchColumns []string
	// FilterColumns whitelists equality filters taken from Filter.Filters.
	FilterColumns []string
	// TenantScoped restricts every query to the caller's tenant.
	TenantScoped bool
	// Preload names associations loaded on every read.
	Preload []string
}

// GormRepository implements shared.Repository[T] for any mapped model M.
type GormRepository[T any, M any, PM Mapper[T, M]] struct {
	db  *gorm.DB
	cfg RepositoryConfig
}

// NewGormRepository creates a repository over model M
func NewGormRepository[T any, M any, PM Mapper[T, M]](db *gorm.DB, cfg RepositoryConfig) *GormRepository[T, M, PM] {
	if cfg.SortFields == nil {
		cfg.SortFields = CommonSortFields
	}
	return &GormRepository[T, M, PM]{db: db, cfg: cfg}
}

// DB exposes the connection for table-specific queries.
func (r *GormRepository[T, M, PM]) DB() *gorm.DB {
	return r.db
}

func (r *GormRepository[T, M, PM]) query(ctx context.Context) *gorm.DB {
	return r.scoped(ctx, r.db.WithContext(ctx))
}

func (r *GormRepository[T, M, PM]) reads(ctx context.Context) *gorm.DB {
	db := r.query(ctx)
	for _, assoc := range r.cfg.Preload {
		db = db.Preload(assoc)
	}
	return db
}

func (r *GormRepository[T, M, PM]) scoped(ctx context.Context, db *gorm.DB) *gorm.DB {
	if r.cfg.TenantScoped {
		return db.Scopes(tenant.Scope(ctx))
	}
	return db
}

// FindByID finds a live record by ID
func (r *GormRepository[T, M, PM]) FindByID(ctx context.Context, id int64) (*T, error) {
	return r.find(r.reads(ctx), id)
}

// FindByIDWithTrashed finds a record by ID including soft-deleted rows
func (r *GormRepository[T, M, PM]) FindByIDWithTrashed(ctx context.Context, id int64) (*T, error) {
	return r.find(r.reads(ctx).Unscoped(), id)
}

func (r *GormRepository[T, M, PM]) find(db *gorm.DB, id int64) (*T, error) {
	var model M
	if err := db.Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return PM(&model).ToDomain(), nil
}

// FindAll returns one page of live records and the total match count
func (r *GormRepository[T, M, PM]) FindAll(ctx context.Context, filter shared.Filter) ([]T, int64, error) {
	var models []M
	var total int64

	query := r.applyFilter(r.query(ctx).Model(new(M)), filter)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortField := ValidateSortField(filter.OrderBy, r.cfg.SortFields, "id")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query = query.Order(sortField + " " + sortOrder)

	if filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	for _, assoc := range r.cfg.Preload {
		query = query.Preload(assoc)
	}
	if err := query.Find(&models).Error; err != nil {
		return nil, 0, err
	}

	out := make([]T, 0, len(models))
	for i := range models {
		out = append(out, *PM(&models[i]).ToDomain())
	}
	return out, total, nil
}

func (r *GormRepository[T, M, PM]) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if search := strings.TrimSpace(filter.Search); search != "" && len(r.cfg.SearchColumns) > 0 {
		pattern := "%" + strings.ToLower(search) + "%"
		conds := make([]string, 0, len(r.cfg.SearchColumns))
		args := make([]any, 0, len(r.cfg.SearchColumns))
		for _, col := range r.cfg.SearchColumns {
			conds = append(conds, fmt.Sprintf("LOWER(%s) LIKE ?", col))
			args = append(args, pattern)
		}
		query = query.Where(strings.Join(conds, " OR "), args...)
	}
	for _, col := range r.cfg.FilterColumns {
		if v, ok := filter.Filters[col]; ok && v != nil {
			query = query.Where(col+" = ?", v)
		}
	}
	return query
}

// translateWriteError reports a unique index violation as ErrAlreadyExists.
// A concurrent write can pass validation and still lose at the index.
func translateWriteError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return shared.ErrAlreadyExists.Wrap(err)
	}
	return err
}

// Create inserts a record and copies generated columns back to entity
func (r *GormRepository[T, M, PM]) Create(ctx context.Context, entity *T) error {
	var model M
	PM(&model).FromDomain(entity)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return translateWriteError(err)
	}
	*entity = *PM(&model).ToDomain()
	return nil
}

// Update saves every column of an existing record
func (r *GormRepository[T, M, PM]) Update(ctx context.Context, entity *T) error {
	var model M
	PM(&model).FromDomain(entity)
	result := r.query(ctx).Save(&model)
	if result.Error != nil {
		return translateWriteError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	if len(r.cfg.Preload) > 0 {
		fresh, err := r.FindByID(ctx, any(PM(&model)).(interface{ GetID() int64 }).GetID())
		if err != nil {
			return err
		}
		*entity = *fresh
		return nil
	}
	*entity = *PM(&model).ToDomain()
	return nil
}

// Delete soft-deletes a record, recording who deleted it
func (r *GormRepository[T, M, PM]) Delete(ctx context.Context, id int64, deletedBy *int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.scoped(ctx, tx).Model(new(M)).Where("id = ?", id).Update("deleted_by", deletedBy).Error; err != nil {
			return err
		}
		result := r.scoped(ctx, tx).Where("id = ?", id).Delete(new(M))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Restore clears the soft-delete markers of a record
func (r *GormRepository[T, M, PM]) Restore(ctx context.Context, id int64) error {
	result := r.query(ctx).Unscoped().Model(new(M)).
		Where("id = ? AND deleted_at IS NOT NULL", id).
		Updates(map[string]any{"deleted_at": nil, "deleted_by": nil})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// ForceDelete permanently removes a record
func (r *GormRepository[T, M, PM]) ForceDelete(ctx context.Context, id int64) error {
	result := r.query(ctx).Unscoped().Where("id = ?", id).Delete(new(M))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
