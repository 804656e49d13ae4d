package persistence

import (
	"context"

	"github.com/stockpile/backend/internal/domain/identity"
	"github.com/stockpile/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormRoleRepository implements identity.RoleRepository using GORM
type GormRoleRepository struct {
	*GormRepository[identity.Role, models.RoleModel, *models.RoleModel]
}

// NewGormRoleRepository creates a new GormRoleRepository
func NewGormRoleRepository(db *gorm.DB) *GormRoleRepository {
	return &GormRoleRepository{
		GormRepository: NewGormRepository[identity.Role, models.RoleModel](db, RepositoryConfig{
			SortFields:    RoleSortFields,
			SearchColumns: []string{"name"},
			FilterColumns: []string{"guard_name"},
			Preload:       []string{"Permissions"},
		}),
	}
}

// FindAllByGuard returns every live role of a guard with its permissions
func (r *GormRoleRepository) FindAllByGuard(ctx context.Context, guard string) ([]identity.Role, error) {
	var rows []models.RoleModel
	if err := r.db.WithContext(ctx).
		Preload("Permissions").
		Where("guard_name = ?", identity.NormalizeGuard(guard)).
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	roles := make([]identity.Role, 0, len(rows))
	for i := range rows {
		roles = append(roles, *rows[i].ToDomain())
	}
	return roles, nil
}

// SyncPermissions replaces the role's permission links with permissionIDs
func (r *GormRoleRepository) SyncPermissions(ctx context.Context, roleID int64, permissionIDs []int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("role_id = ?", roleID).Delete(&models.RolePermissionModel{}).Error; err != nil {
			return err
		}
		if len(permissionIDs) == 0 {
			return nil
		}
		links := make([]models.RolePermissionModel, 0, len(permissionIDs))
		for _, pid := range permissionIDs {
			links = append(links, models.RolePermissionModel{RoleID: roleID, PermissionID: pid})
		}
		return tx.Create(&links).Error
	})
}

// ForceDelete removes the role together with its permission and user links
func (r *GormRoleRepository) ForceDelete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("role_id = ?", id).Delete(&models.RolePermissionModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("role_id = ?", id).Delete(&models.UserRoleModel{}).Error; err != nil {
			return err
		}
		return NewGormRepository[identity.Role, models.RoleModel](tx, r.cfg).ForceDelete(ctx, id)
	})
}

// GormPermissionRepository implements identity.PermissionRepository using GORM
type GormPermissionRepository struct {
	*GormRepository[identity.Permission, models.PermissionModel, *models.PermissionModel]
}

// NewGormPermissionRepository creates a new GormPermissionRepository
func NewGormPermissionRepository(db *gorm.DB) *GormPermissionRepository {
	return &GormPermissionRepository{
		GormRepository: NewGormRepository[identity.Permission, models.PermissionModel](db, RepositoryConfig{
			SortFields:    PermissionSortFields,
			SearchColumns: []string{"name"},
			FilterColumns: []string{"guard_name"},
		}),
	}
}

// FindAllByGuard returns every live permission of a guard
func (r *GormPermissionRepository) FindAllByGuard(ctx context.Context, guard string) ([]identity.Permission, error) {
	return r.findWhere(ctx, r.db.WithContext(ctx).Where("guard_name = ?", identity.NormalizeGuard(guard)))
}

// FindByNames returns the live permissions of a guard whose names are in names
func (r *GormPermissionRepository) FindByNames(ctx context.Context, guard string, names []string) ([]identity.Permission, error) {
	if len(names) == 0 {
		return []identity.Permission{}, nil
	}
	return r.findWhere(ctx, r.db.WithContext(ctx).
		Where("guard_name = ? AND name IN ?", identity.NormalizeGuard(guard), names))
}

func (r *GormPermissionRepository) findWhere(_ context.Context, query *gorm.DB) ([]identity.Permission, error) {
	var rows []models.PermissionModel
	if err := query.Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	perms := make([]identity.Permission, 0, len(rows))
	for i := range rows {
		perms = append(perms, *rows[i].ToDomain())
	}
	return perms, nil
}

// ForceDelete removes the permission and its role links
func (r *GormPermissionRepository) ForceDelete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("permission_id = ?", id).Delete(&models.RolePermissionModel{}).Error; err != nil {
			return err
		}
		return NewGormRepository[identity.Permission, models.PermissionModel](tx, r.cfg).ForceDelete(ctx, id)
	})
}
