package catalog

import "github.com/stockpile/backend/internal/domain/shared"

// Lookup is a typed code list entry (payment terms, districts, ...).
// Code is unique within Type.
type Lookup struct {
	shared.TenantAudit
	Type   string
	Code   string
	Name   string
	Status bool
}
