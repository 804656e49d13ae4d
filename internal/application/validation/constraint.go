// Package validation evaluates declarative per-endpoint constraint tables
// against decoded request bodies.
//
// A RuleSet maps field names to an ordered list of constraints drawn from a
// closed set of kinds. Evaluation stops at the first failing constraint of a
// field but always visits every field, producing field -> first message.
// Referential and uniqueness constraints consult a RecordChecker so that
// missing references and duplicates surface as validation failures rather
// than storage errors.
package validation

import (
	"github.com/shopspring/decimal"
)

// Operation distinguishes creation from partial update.
type Operation int

const (
	// Create validates a new record
	Create Operation = iota
	// Update validates a partial update of an existing record
	Update
)

// String returns the operation name
func (o Operation) String() string {
	if o == Update {
		return "update"
	}
	return "create"
}

// Kind is the closed set of constraint kinds.
type Kind int

const (
	KindRequired Kind = iota + 1
	KindNullable
	KindString
	KindInteger
	KindNumeric
	KindBoolean
	KindDate
	KindMaxLength
	KindDigits
	KindRange
	KindExistsIn
	KindUniqueIn
)

var kindNames = map[Kind]string{
	KindRequired:  "required",
	KindNullable:  "nullable",
	KindString:    "string",
	KindInteger:   "integer",
	KindNumeric:   "numeric",
	KindBoolean:   "boolean",
	KindDate:      "date",
	KindMaxLength: "max",
	KindDigits:    "digits",
	KindRange:     "between",
	KindExistsIn:  "exists",
	KindUniqueIn:  "unique",
}

// String returns the rule name used in message keys, e.g. "required".
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Constraint is a single rule. Only the fields relevant to Kind are set.
type Constraint struct {
	Kind Kind

	// N is the length bound for KindMaxLength and KindDigits.
	N int
	// Min and Max bound KindRange.
	Min decimal.Decimal
	Max decimal.Decimal

	// Table and Column name the lookup target of KindExistsIn/KindUniqueIn.
	Table  string
	Column string
	// ExceptID excludes one row from a uniqueness check. Zero means none.
	ExceptID int64
	// Scope lists sibling fields that must match for a row to count as a duplicate.
	Scope []string
	// Tenant restricts the lookup to the caller's tenant.
	Tenant bool
}

// Required fails when the field is absent, null or blank.
func Required() Constraint { return Constraint{Kind: KindRequired} }

// Nullable lets a null or blank value skip the remaining constraints.
func Nullable() Constraint { return Constraint{Kind: KindNullable} }

// String requires a JSON string.
func String() Constraint { return Constraint{Kind: KindString} }

// Integer requires an integral number or a string of digits.
func Integer() Constraint { return Constraint{Kind: KindInteger} }

// Numeric requires a number or a numeric string.
func Numeric() Constraint { return Constraint{Kind: KindNumeric} }

// Boolean accepts true, false, 1, 0, "1" and "0".
func Boolean() Constraint { return Constraint{Kind: KindBoolean} }

// Date requires a YYYY-MM-DD (optionally with time) string.
func Date() Constraint { return Constraint{Kind: KindDate} }

// MaxLength bounds string length in characters, or the value of a numeric field.
func MaxLength(n int) Constraint { return Constraint{Kind: KindMaxLength, N: n} }

// Digits requires exactly n decimal digits.
func Digits(n int) Constraint { return Constraint{Kind: KindDigits, N: n} }

// Range bounds a numeric field's value, or a string field's length, inclusively.
func Range(min, max int64) Constraint {
	return Constraint{Kind: KindRange, Min: decimal.NewFromInt(min), Max: decimal.NewFromInt(max)}
}

// ExistsIn requires a live row in table whose column equals the value.
func ExistsIn(table, column string) Constraint {
	return Constraint{Kind: KindExistsIn, Table: table, Column: column}
}

// UniqueIn requires that no other row in table has the value in column.
func UniqueIn(table, column string) Constraint {
	return Constraint{Kind: KindUniqueIn, Table: table, Column: column}
}

// Except excludes the row with the given id from a uniqueness check.
func (c Constraint) Except(id int64) Constraint {
	c.ExceptID = id
	return c
}

// ScopedBy restricts a uniqueness check to rows sharing the given fields.
func (c Constraint) ScopedBy(fields ...string) Constraint {
	c.Scope = append(append([]string(nil), c.Scope...), fields...)
	return c
}

// PerTenant restricts an exists/unique lookup to the caller's tenant.
func (c Constraint) PerTenant() Constraint {
	c.Tenant = true
	return c
}

// FieldRules is the ordered constraint list for one field.
type FieldRules struct {
	Field       string
	Constraints []Constraint
}

// Field declares the constraints for a field.
func Field(name string, constraints ...Constraint) FieldRules {
	return FieldRules{Field: name, Constraints: constraints}
}

func (f FieldRules) has(kind Kind) bool {
	for _, c := range f.Constraints {
		if c.Kind == kind {
			return true
		}
	}
	return false
}

func (f FieldRules) numeric() bool {
	return f.has(KindInteger) || f.has(KindNumeric)
}

// RuleSet is the constraint table of one endpoint.
type RuleSet struct {
	Fields []FieldRules
	// Messages overrides default messages, keyed "field.rule" (e.g. "slug.unique").
	Messages map[string]string
	// Attributes overrides the display name of a field in messages.
	Attributes map[string]string
}

// Rules builds a RuleSet from field declarations.
func Rules(fields ...FieldRules) RuleSet {
	return RuleSet{Fields: fields}
}

// WithMessages returns the rule set with message overrides merged in.
func (r RuleSet) WithMessages(messages map[string]string) RuleSet {
	merged := make(map[string]string, len(r.Messages)+len(messages))
	for k, v := range r.Messages {
		merged[k] = v
	}
	for k, v := range messages {
		merged[k] = v
	}
	r.Messages = merged
	return r
}

// WithAttributes returns the rule set with attribute display names merged in.
func (r RuleSet) WithAttributes(attributes map[string]string) RuleSet {
	merged := make(map[string]string, len(r.Attributes)+len(attributes))
	for k, v := range r.Attributes {
		merged[k] = v
	}
	for k, v := range attributes {
		merged[k] = v
	}
	r.Attributes = merged
	return r
}

// Lookup returns the rules declared for a field.
func (r RuleSet) Lookup(field string) (FieldRules, bool) {
	for _, f := range r.Fields {
		if f.Field == field {
			return f, true
		}
	}
	return FieldRules{}, false
}

// Names returns the declared field names in order.
func (r RuleSet) Names() []string {
	names := make([]string, 0, len(r.Fields))
	for _, f := range r.Fields {
		names = append(names, f.Field)
	}
	return names
}
