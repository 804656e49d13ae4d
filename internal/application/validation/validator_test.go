package validation

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stockpile/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	id     int64
	values map[string]any
}

// fakeChecker resolves lookups against in-memory tables.
type fakeChecker struct {
	tables map[string][]row
	err    error
	calls  int
}

func (f *fakeChecker) Exists(_ context.Context, q ExistsQuery) (bool, error) {
	f.calls++
	if f.err != nil {
		return false, f.err
	}
	for _, r := range f.tables[q.Table] {
		if q.Column == "id" && r.id == q.Value {
			return true, nil
		}
		if r.values[q.Column] == q.Value {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeChecker) Taken(_ context.Context, q UniqueQuery) (bool, error) {
	f.calls++
	if f.err != nil {
		return false, f.err
	}
	for _, r := range f.tables[q.Table] {
		if r.id == q.ExceptID || r.values[q.Column] != q.Value {
			continue
		}
		match := true
		for k, v := range q.Scope {
			if r.values[k] != v {
				match = false
			}
		}
		if match {
			return true, nil
		}
	}
	return false, nil
}

func newChecker() *fakeChecker {
	return &fakeChecker{tables: map[string][]row{
		"categories": {{id: 1, values: map[string]any{"name": "Phones"}}, {id: 2, values: map[string]any{"name": "Tablets"}}},
		"sub_categories": {
			{id: 10, values: map[string]any{"category_id": int64(1), "slug": "android", "name": "Android"}},
			{id: 11, values: map[string]any{"category_id": int64(2), "slug": "ios", "name": "iOS"}},
		},
	}}
}

func subCategoryRules(id int64) RuleSet {
	return Rules(
		Field("category_id", Required(), Integer(), ExistsIn("categories", "id")),
		Field("name", Required(), String(), MaxLength(255), UniqueIn("sub_categories", "name").Except(id).ScopedBy("category_id")),
		Field("slug", Required(), String(), MaxLength(255), UniqueIn("sub_categories", "slug").Except(id).ScopedBy("category_id")),
		Field("status", Required(), Boolean()),
	)
}

func TestValidator_RequiredAndTypes(t *testing.T) {
	v := New(newChecker())
	ctx := context.Background()

	rules := Rules(
		Field("po_no", Required(), String(), MaxLength(5)),
		Field("qty", Required(), Integer(), Range(1, 10)),
		Field("price", Required(), Numeric()),
		Field("year", Required(), Digits(4)),
		Field("date", Required(), Date()),
		Field("note", Nullable(), String()),
	)

	t.Run("reports first failure per field", func(t *testing.T) {
		errs, err := v.Check(ctx, rules, Fields{
			"po_no": "PO-12345",
			"qty":   json.Number("11"),
			"price": "abc",
			"year":  json.Number("24"),
			"date":  "31/12/2024",
			"note":  nil,
		})
		require.NoError(t, err)
		assert.Equal(t, Errors{
			"po_no": "The po no may not be greater than 5 characters.",
			"qty":   "The qty must be between 1 and 10.",
			"price": "The price must be a number.",
			"year":  "The year must be 4 digits.",
			"date":  "The date is not a valid date.",
		}, errs)
	})

	t.Run("missing required fields", func(t *testing.T) {
		errs, err := v.Check(ctx, rules, Fields{"po_no": "  "})
		require.NoError(t, err)
		assert.Equal(t, "The po no field is required.", errs["po_no"])
		assert.Equal(t, "The qty field is required.", errs["qty"])
		assert.Len(t, errs, 5)
	})

	t.Run("valid input passes", func(t *testing.T) {
		errs, err := v.Check(ctx, rules, Fields{
			"po_no": "PO-1",
			"qty":   float64(3),
			"price": json.Number("12.50"),
			"year":  "2024",
			"date":  "2024-12-31",
		})
		require.NoError(t, err)
		assert.Nil(t, errs)
	})

	t.Run("integer rejects fractions", func(t *testing.T) {
		errs, err := v.Check(ctx, rules, Fields{"qty": 2.5})
		require.NoError(t, err)
		assert.Equal(t, "The qty must be an integer.", errs["qty"])
	})

	t.Run("null without nullable fails the type rule", func(t *testing.T) {
		r := Rules(Field("remarks", String()))
		errs, err := v.Check(ctx, r, Fields{"remarks": nil})
		require.NoError(t, err)
		assert.Equal(t, "The remarks must be a string.", errs["remarks"])
	})
}

func TestValidator_ExistsIn(t *testing.T) {
	checker := newChecker()
	v := New(checker)
	rules := Rules(Field("category_id", Required(), Integer(), ExistsIn("categories", "id")))

	errs, err := v.Check(context.Background(), rules, Fields{"category_id": json.Number("99")})
	require.NoError(t, err)
	assert.Equal(t, "The selected category id is invalid.", errs["category_id"])

	errs, err = v.Check(context.Background(), rules, Fields{"category_id": json.Number("2")})
	require.NoError(t, err)
	assert.Nil(t, errs)
}

func TestValidator_ShortCircuitSkipsLookups(t *testing.T) {
	checker := newChecker()
	v := New(checker)
	rules := Rules(Field("category_id", Required(), Integer(), ExistsIn("categories", "id")))

	errs, err := v.Check(context.Background(), rules, Fields{"category_id": "abc"})
	require.NoError(t, err)
	assert.Equal(t, "The category id must be an integer.", errs["category_id"])
	assert.Zero(t, checker.calls)
}

func TestValidator_IntegerOutOfRange(t *testing.T) {
	checker := newChecker()
	v := New(checker)
	rules := Rules(Field("category_id", Required(), Integer(), ExistsIn("categories", "id")))

	tests := []struct {
		name  string
		value any
	}{
		{"json number above int64 wraps to an existing id", json.Number("18446744073709551617")},
		{"json number below int64", json.Number("-9223372036854775809")},
		{"float at 2^63", float64(1 << 63)},
		{"string above int64", "9223372036854775808"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs, err := v.Check(context.Background(), rules, Fields{"category_id": tt.value})
			require.NoError(t, err)
			assert.Equal(t, "The category id must be an integer.", errs["category_id"])
		})
	}
	assert.Zero(t, checker.calls)

	n, ok := asInt64(json.Number("9223372036854775807"))
	assert.True(t, ok)
	assert.Equal(t, int64(9223372036854775807), n)
	assert.Nil(t, Fields{"category_id": json.Number("18446744073709551617")}.Int64Ptr("category_id"))
}

func TestValidator_ScopedUniqueness(t *testing.T) {
	v := New(newChecker())
	ctx := context.Background()

	t.Run("duplicate slug under same category is rejected", func(t *testing.T) {
		errs, err := v.Check(ctx, subCategoryRules(0), Fields{
			"category_id": json.Number("1"), "name": "Other", "slug": "android", "status": true,
		})
		require.NoError(t, err)
		assert.Equal(t, "The slug has already been taken.", errs["slug"])
	})

	t.Run("same slug under another category is accepted", func(t *testing.T) {
		errs, err := v.Check(ctx, subCategoryRules(0), Fields{
			"category_id": json.Number("2"), "name": "Android", "slug": "android", "status": true,
		})
		require.NoError(t, err)
		assert.Nil(t, errs)
	})

	t.Run("update may keep its own slug", func(t *testing.T) {
		errs, err := v.Check(ctx, subCategoryRules(10), Fields{
			"category_id": json.Number("1"), "name": "Android", "slug": "android", "status": "1",
		})
		require.NoError(t, err)
		assert.Nil(t, errs)
	})

	t.Run("scope falls back to current values", func(t *testing.T) {
		rules := Rules(Field("slug", String(), UniqueIn("sub_categories", "slug").Except(11).ScopedBy("category_id")))
		errs, err := v.Check(ctx, rules, Fields{"slug": "android"}, WithCurrent(Fields{"category_id": int64(1)}))
		require.NoError(t, err)
		assert.Equal(t, "The slug has already been taken.", errs["slug"])
	})
}

func TestValidator_OperationBranch(t *testing.T) {
	v := New(newChecker())
	rules := func(op Operation) RuleSet {
		product := []Constraint{Required()}
		if op == Update {
			product = []Constraint{Nullable()}
		}
		return Rules(Field("product_id", append(product, Integer())...))
	}

	errs, err := v.Check(context.Background(), rules(Create), Fields{})
	require.NoError(t, err)
	assert.Contains(t, errs, "product_id")

	errs, err = v.Check(context.Background(), rules(Update), Fields{})
	require.NoError(t, err)
	assert.Nil(t, errs)
}

func TestValidator_CustomMessages(t *testing.T) {
	v := New(newChecker())
	rules := Rules(Field("district", Required())).
		WithMessages(map[string]string{"district.required": "Please choose a district."})

	errs, err := v.Check(context.Background(), rules, Fields{})
	require.NoError(t, err)
	assert.Equal(t, "Please choose a district.", errs["district"])
}

func TestValidator_Validate(t *testing.T) {
	t.Run("field errors become FailedError", func(t *testing.T) {
		v := New(newChecker())
		err := v.Validate(context.Background(), Rules(Field("name", Required())), Fields{})

		var failed *FailedError
		require.True(t, errors.As(err, &failed))
		assert.True(t, errors.Is(err, shared.ErrValidation))
		assert.Equal(t, "The name field is required.", failed.Errors["name"])
	})

	t.Run("lookup errors propagate", func(t *testing.T) {
		checker := newChecker()
		checker.err = errors.New("connection refused")
		v := New(checker)
		err := v.Validate(context.Background(), Rules(Field("category_id", ExistsIn("categories", "id"))), Fields{"category_id": 1})

		require.Error(t, err)
		assert.False(t, errors.Is(err, shared.ErrValidation))
		assert.Contains(t, err.Error(), "connection refused")
	})
}
