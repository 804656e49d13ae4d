package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/stockpile/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// AuditModel provides the id, actor and timestamp columns of every table.
// DeletedAt makes GORM soft-delete by default.
type AuditModel struct {
	ID        int64          `gorm:"primaryKey;autoIncrement"`
	CreatedBy *int64         `gorm:"index"`
	UpdatedBy *int64
	DeletedBy *int64
	CreatedAt time.Time      `gorm:"not null"`
	UpdatedAt time.Time      `gorm:"not null"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// ToDomain converts AuditModel to the domain audit block
func (m *AuditModel) ToDomain() shared.Audit {
	a := shared.Audit{
		ID:        m.ID,
		CreatedBy: m.CreatedBy,
		UpdatedBy: m.UpdatedBy,
		DeletedBy: m.DeletedBy,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	if m.DeletedAt.Valid {
		t := m.DeletedAt.Time
		a.DeletedAt = &t
	}
	return a
}

// FromDomainAudit populates AuditModel from the domain audit block
func (m *AuditModel) FromDomainAudit(a shared.Audit) {
	m.ID = a.ID
	m.CreatedBy = a.CreatedBy
	m.UpdatedBy = a.UpdatedBy
	m.DeletedBy = a.DeletedBy
	m.CreatedAt = a.CreatedAt
	m.UpdatedAt = a.UpdatedAt
	if a.DeletedAt != nil {
		m.DeletedAt = gorm.DeletedAt{Time: *a.DeletedAt, Valid: true}
	} else {
		m.DeletedAt = gorm.DeletedAt{}
	}
}

// GetID returns the primary key
func (m *AuditModel) GetID() int64 {
	return m.ID
}

// TenantAuditModel adds the owning tenant.
type TenantAuditModel struct {
	AuditModel
	TenantID uuid.UUID `gorm:"type:uuid;not null;index"`
}

// ToDomain converts TenantAuditModel to the domain tenant audit block
func (m *TenantAuditModel) ToDomain() shared.TenantAudit {
	return shared.TenantAudit{Audit: m.AuditModel.ToDomain(), TenantID: m.TenantID}
}

// FromDomainTenantAudit populates TenantAuditModel from the domain block
func (m *TenantAuditModel) FromDomainTenantAudit(t shared.TenantAudit) {
	m.FromDomainAudit(t.Audit)
	m.TenantID = t.TenantID
}

// IsTenantScoped marks models whose queries are filtered by tenant.
func (m *TenantAuditModel) IsTenantScoped() bool {
	return true
}
