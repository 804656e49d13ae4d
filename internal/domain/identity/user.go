package identity

import (
	"github.com/stockpile/backend/internal/domain/shared"
)

// User is an account that can sign in to the API.
type User struct {
	shared.TenantAudit
	Username     string
	Name         string
	PasswordHash string
	Status       bool
}

// IsActive reports whether the user may sign in
func (u *User) IsActive() bool {
	return u.Status && !u.IsDeleted()
}
