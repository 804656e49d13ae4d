package validation

import (
	"context"
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// ExistsQuery asks whether a live row has Column = Value.
type ExistsQuery struct {
	Table  string
	Column string
	Value  any
	Tenant bool
}

// UniqueQuery asks whether a row other than ExceptID already has Column = Value
// among rows matching Scope. Soft-deleted rows count.
type UniqueQuery struct {
	Table    string
	Column   string
	Value    any
	ExceptID int64
	Scope    map[string]any
	Tenant   bool
}

// RecordChecker answers referential and uniqueness lookups against the store.
type RecordChecker interface {
	Exists(ctx context.Context, q ExistsQuery) (bool, error)
	Taken(ctx context.Context, q UniqueQuery) (bool, error)
}

// Validator evaluates rule sets.
type Validator struct {
	checker RecordChecker
	engine  *validator.Validate
}

// New creates a Validator backed by checker for exists/unique lookups.
func New(checker RecordChecker) *Validator {
	return &Validator{
		checker: checker,
		engine:  validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Option adjusts a single evaluation.
type Option func(*evalOptions)

type evalOptions struct {
	current Fields
}

// WithCurrent supplies the stored values of the record being updated. They
// fill in uniqueness scope fields the request omits.
func WithCurrent(current Fields) Option {
	return func(o *evalOptions) {
		o.current = current
	}
}

// Check evaluates rules against input. A nil Errors means the input passed.
// The error return is reserved for lookup failures.
func (v *Validator) Check(ctx context.Context, rules RuleSet, input Fields, opts ...Option) (Errors, error) {
	var o evalOptions
	for _, opt := range opts {
		opt(&o)
	}

	errs := Errors{}
	for _, field := range rules.Fields {
		msg, err := v.checkField(ctx, rules, field, input, o)
		if err != nil {
			return nil, fmt.Errorf("validate %s: %w", field.Field, err)
		}
		if msg != "" {
			errs[field.Field] = msg
		}
	}
	if len(errs) == 0 {
		return nil, nil
	}
	return errs, nil
}

// Validate is Check returning field errors as a *FailedError.
func (v *Validator) Validate(ctx context.Context, rules RuleSet, input Fields, opts ...Option) error {
	errs, err := v.Check(ctx, rules, input, opts...)
	if err != nil {
		return err
	}
	if errs != nil {
		return Failed(errs)
	}
	return nil
}

func (v *Validator) checkField(ctx context.Context, rules RuleSet, field FieldRules, input Fields, o evalOptions) (string, error) {
	value, present := input[field.Field]
	blank := isBlank(value)

	if field.has(KindRequired) && (!present || blank) {
		return message(rules, field, Required()), nil
	}
	if !present {
		return "", nil
	}
	if blank && (field.has(KindNullable) || value != nil) {
		// blank strings never reach the non-implicit rules
		return "", nil
	}

	for _, c := range field.Constraints {
		ok, err := v.passes(ctx, field, c, value, input, o)
		if err != nil {
			return "", err
		}
		if !ok {
			return message(rules, field, c), nil
		}
	}
	return "", nil
}

func (v *Validator) passes(ctx context.Context, field FieldRules, c Constraint, value any, input Fields, o evalOptions) (bool, error) {
	switch c.Kind {
	case KindRequired, KindNullable:
		return true, nil
	case KindString:
		_, ok := value.(string)
		return ok, nil
	case KindInteger:
		_, ok := asInt64(value)
		return ok, nil
	case KindNumeric:
		_, ok := asDecimal(value)
		return ok, nil
	case KindBoolean:
		_, ok := asBool(value)
		return ok, nil
	case KindDate:
		_, ok := asDate(value)
		return ok, nil
	case KindMaxLength:
		return v.withinMax(field, c, value), nil
	case KindDigits:
		s, ok := asString(value)
		if !ok {
			return false, nil
		}
		return v.engine.Var(s, "number,len="+strconv.Itoa(c.N)) == nil, nil
	case KindRange:
		return withinRange(field, c, value), nil
	case KindExistsIn:
		return v.checker.Exists(ctx, ExistsQuery{
			Table:  c.Table,
			Column: c.Column,
			Value:  lookupValue(value),
			Tenant: c.Tenant,
		})
	case KindUniqueIn:
		taken, err := v.checker.Taken(ctx, UniqueQuery{
			Table:    c.Table,
			Column:   c.Column,
			Value:    lookupValue(value),
			ExceptID: c.ExceptID,
			Scope:    scopeValues(c.Scope, input, o.current),
			Tenant:   c.Tenant,
		})
		return !taken, err
	}
	return false, fmt.Errorf("unknown constraint kind %d", c.Kind)
}

func (v *Validator) withinMax(field FieldRules, c Constraint, value any) bool {
	if field.numeric() {
		d, ok := asDecimal(value)
		return ok && d.LessThanOrEqual(decimal.NewFromInt(int64(c.N)))
	}
	s, ok := value.(string)
	if !ok {
		return false
	}
	return v.engine.Var(s, "max="+strconv.Itoa(c.N)) == nil
}

func withinRange(field FieldRules, c Constraint, value any) bool {
	var size decimal.Decimal
	if field.numeric() {
		d, ok := asDecimal(value)
		if !ok {
			return false
		}
		size = d
	} else {
		s, ok := value.(string)
		if !ok {
			return false
		}
		size = decimal.NewFromInt(int64(utf8.RuneCountInString(s)))
	}
	return size.GreaterThanOrEqual(c.Min) && size.LessThanOrEqual(c.Max)
}

func scopeValues(scope []string, input, current Fields) map[string]any {
	if len(scope) == 0 {
		return nil
	}
	values := make(map[string]any, len(scope))
	for _, field := range scope {
		if v, ok := input[field]; ok && !isBlank(v) {
			values[field] = lookupValue(v)
			continue
		}
		if v, ok := current[field]; ok && !isBlank(v) {
			values[field] = lookupValue(v)
			continue
		}
		values[field] = nil
	}
	return values
}
