package validation

import (
	"sort"
	"strings"

	"github.com/stockpile/backend/internal/domain/shared"
)

// Errors maps a field name to its first failing message.
type Errors map[string]string

// Fields returns the failing field names in sorted order.
func (e Errors) Fields() []string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// FailedError is returned when input does not satisfy its rule set.
type FailedError struct {
	Errors Errors
}

// Error implements error
func (e *FailedError) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for _, field := range e.Errors.Fields() {
		parts = append(parts, field+": "+e.Errors[field])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Unwrap lets errors.Is(err, shared.ErrValidation) match.
func (e *FailedError) Unwrap() error {
	return shared.ErrValidation
}

// Failed wraps field errors as an error.
func Failed(errs Errors) *FailedError {
	return &FailedError{Errors: errs}
}
