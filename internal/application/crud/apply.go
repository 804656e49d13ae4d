package crud

import "github.com/stockpile/backend/internal/application/validation"

// ApplyStatus sets an active flag from in. New records default to active; an
// update leaves the flag alone unless a value was sent.
func ApplyStatus(dst *bool, in validation.Fields, op validation.Operation) {
	switch {
	case in.Filled("status"):
		*dst = in.Bool("status")
	case op == validation.Create:
		*dst = true
	}
}
