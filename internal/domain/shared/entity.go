package shared

import (
	"time"

	"github.com/google/uuid"
)

// Audit carries the bookkeeping columns shared by every stored record.
type Audit struct {
	ID        int64
	CreatedBy *int64
	UpdatedBy *int64
	DeletedBy *int64
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// GetID returns the record id
func (a *Audit) GetID() int64 {
	return a.ID
}

// AuditInfo exposes the audit block for mutation bookkeeping.
func (a *Audit) AuditInfo() *Audit {
	return a
}

// IsDeleted reports whether the record is soft-deleted
func (a *Audit) IsDeleted() bool {
	return a.DeletedAt != nil
}

// TenantAudit is Audit for records owned by a tenant.
type TenantAudit struct {
	Audit
	TenantID uuid.UUID
}

// GetTenantID returns the owning tenant
func (t *TenantAudit) GetTenantID() uuid.UUID {
	return t.TenantID
}

// SetTenantID assigns the owning tenant
func (t *TenantAudit) SetTenantID(id uuid.UUID) {
	t.TenantID = id
}

// Entity is implemented by every audited record.
type Entity interface {
	GetID() int64
	AuditInfo() *Audit
}

// TenantOwned is implemented by records partitioned per tenant.
type TenantOwned interface {
	GetTenantID() uuid.UUID
	SetTenantID(id uuid.UUID)
}
