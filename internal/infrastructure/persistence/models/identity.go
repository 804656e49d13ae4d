package models

import (
	"github.com/stockpile/backend/internal/domain/identity"
)

// UserModel is the persistence model for User.
type UserModel struct {
	TenantAuditModel
	Username     string `gorm:"type:varchar(100);not null;uniqueIndex"`
	Name         string `gorm:"type:varchar(255);not null"`
	PasswordHash string `gorm:"type:varchar(255);not null"`
	Status       bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (UserModel) TableName() string { return "users" }

// ToDomain converts to the domain entity
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		TenantAudit:  m.TenantAuditModel.ToDomain(),
		Username:     m.Username,
		Name:         m.Name,
		PasswordHash: m.PasswordHash,
		Status:       m.Status,
	}
}

// FromDomain populates the model from the domain entity
func (m *UserModel) FromDomain(u *identity.User) {
	m.FromDomainTenantAudit(u.TenantAudit)
	m.Username = u.Username
	m.Name = u.Name
	m.PasswordHash = u.PasswordHash
	m.Status = u.Status
}

// RoleModel is the persistence model for Role. Roles are global.
type RoleModel struct {
	AuditModel
	Name        string            `gorm:"type:varchar(255);not null"`
	GuardName   string            `gorm:"type:varchar(255);not null;default:'api'"`
	Permissions []PermissionModel `gorm:"many2many:role_has_permissions;joinForeignKey:RoleID;joinReferences:PermissionID"`
}

// TableName returns the table name for GORM
func (RoleModel) TableName() string { return "roles" }

// ToDomain converts to the domain entity with any loaded permissions
func (m *RoleModel) ToDomain() *identity.Role {
	r := &identity.Role{
		Audit:       m.AuditModel.ToDomain(),
		Name:        m.Name,
		GuardName:   m.GuardName,
		Permissions: make([]identity.Permission, 0, len(m.Permissions)),
	}
	for i := range m.Permissions {
		r.Permissions = append(r.Permissions, *m.Permissions[i].ToDomain())
	}
	return r
}

// FromDomain populates the model from the domain entity. Permission links
// are managed separately.
func (m *RoleModel) FromDomain(r *identity.Role) {
	m.FromDomainAudit(r.Audit)
	m.Name = r.Name
	m.GuardName = identity.NormalizeGuard(r.GuardName)
}

// PermissionModel is the persistence model for Permission.
type PermissionModel struct {
	AuditModel
	Name      string `gorm:"type:varchar(255);not null"`
	GuardName string `gorm:"type:varchar(255);not null;default:'api'"`
}

// TableName returns the table name for GORM
func (PermissionModel) TableName() string { return "permissions" }

// ToDomain converts to the domain entity
func (m *PermissionModel) ToDomain() *identity.Permission {
	return &identity.Permission{Audit: m.AuditModel.ToDomain(), Name: m.Name, GuardName: m.GuardName}
}

// FromDomain populates the model from the domain entity
func (m *PermissionModel) FromDomain(p *identity.Permission) {
	m.FromDomainAudit(p.Audit)
	m.Name = p.Name
	m.GuardName = identity.NormalizeGuard(p.GuardName)
}

// RolePermissionModel links a role to a permission.
type RolePermissionModel struct {
	RoleID       int64 `gorm:"primaryKey"`
	PermissionID int64 `gorm:"primaryKey"`
}

// TableName returns the table name for GORM
func (RolePermissionModel) TableName() string { return "role_has_permissions" }

// UserRoleModel links a user to a role.
type UserRoleModel struct {
	UserID int64 `gorm:"primaryKey"`
	RoleID int64 `gorm:"primaryKey"`
}

// TableName returns the table name for GORM
func (UserRoleModel) TableName() string { return "user_has_roles" }

// All returns every model, in dependency order, for AutoMigrate in tests.
func All() []any {
	return []any{
		&BrandModel{}, &CategoryModel{}, &SubCategoryModel{}, &UnitModel{}, &LookupModel{},
		&ModelModel{}, &ProductModel{},
		&CompanyModel{}, &StoreModel{}, &LocationModel{}, &CustomerContactModel{},
		&PurchasePriceModel{},
		&UserModel{}, &PermissionModel{}, &RoleModel{}, &RolePermissionModel{}, &UserRoleModel{},
	}
}
