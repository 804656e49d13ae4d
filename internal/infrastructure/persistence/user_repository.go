package persistence

import (
	"context"
	"errors"

	"github.com/stockpile/backend/internal/domain/identity"
	"github.com/stockpile/backend/internal/domain/shared"
	"github.com/stockpile/backend/internal/infrastructure/persistence/models"
	"github.com/stockpile/backend/internal/infrastructure/persistence/tenant"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormUserRepository implements identity.UserRepository using GORM
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GormUserRepository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// FindByID finds a live user by ID
func (r *GormUserRepository) FindByID(ctx context.Context, id int64) (*identity.User, error) {
	return r.first(r.db.WithContext(ctx).Where("id = ?", id))
}

// FindInTenant finds a live user owned by the caller's tenant. Users of
// other tenants are reported as not found.
func (r *GormUserRepository) FindInTenant(ctx context.Context, id int64) (*identity.User, error) {
	return r.first(r.db.WithContext(ctx).Scopes(tenant.Scope(ctx)).Where("id = ?", id))
}

// FindByUsername finds a live user by username
func (r *GormUserRepository) FindByUsername(ctx context.Context, username string) (*identity.User, error) {
	return r.first(r.db.WithContext(ctx).Where("username = ?", username))
}

func (r *GormUserRepository) first(query *gorm.DB) (*identity.User, error) {
	var model models.UserModel
	if err := query.First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Create inserts a user
func (r *GormUserRepository) Create(ctx context.Context, user *identity.User) error {
	var model models.UserModel
	model.FromDomain(user)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return err
	}
	*user = *model.ToDomain()
	return nil
}

// RoleIDs returns the ids of the roles assigned to a user
func (r *GormUserRepository) RoleIDs(ctx context.Context, userID int64) ([]int64, error) {
	var ids []int64
	if err := r.db.WithContext(ctx).Model(&models.UserRoleModel{}).
		Where("user_id = ?", userID).
		Order("role_id ASC").
		Pluck("role_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// AssignRole links a role to a user. Assigning a held role is a no-op.
func (r *GormUserRepository) AssignRole(ctx context.Context, userID, roleID int64) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.UserRoleModel{UserID: userID, RoleID: roleID}).Error
}

// RevokeRole removes a role from a user
func (r *GormUserRepository) RevokeRole(ctx context.Context, userID, roleID int64) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND role_id = ?", userID, roleID).
		Delete(&models.UserRoleModel{}).Error
}
