package purchasing

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stockpile/backend/internal/application/projection"
	"github.com/stockpile/backend/internal/application/validation"
	"github.com/stockpile/backend/internal/domain/purchasing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type existingProducts map[int64]bool

func (p existingProducts) Exists(_ context.Context, q validation.ExistsQuery) (bool, error) {
	id, _ := q.Value.(int64)
	return q.Table == "products" && p[id], nil
}

func (existingProducts) Taken(context.Context, validation.UniqueQuery) (bool, error) {
	return false, nil
}

func validPrice() validation.Fields {
	return validation.Fields{
		"po_no": "PO-1", "product_id": int64(1), "price": "12.50",
		"qty": int64(3), "month": int64(4), "year": "2024", "date": "2024-04-02",
	}
}

func TestPurchasePriceRules_ProductRequiredOnlyOnCreate(t *testing.T) {
	v := validation.New(existingProducts{1: true})
	ctx := context.Background()

	in := validPrice()
	delete(in, "product_id")

	errs, err := v.Check(ctx, PurchasePriceRules(validation.Create, 0), in)
	require.NoError(t, err)
	assert.Equal(t, validation.Errors{"product_id": "Please select a product."}, errs)

	errs, err = v.Check(ctx, PurchasePriceRules(validation.Update, 7), in)
	require.NoError(t, err)
	assert.Nil(t, errs)
}

func TestPurchasePriceRules_Bounds(t *testing.T) {
	v := validation.New(existingProducts{1: true})
	in := validPrice()
	in["product_id"] = int64(2)
	in["month"] = int64(13)
	in["year"] = "24"
	in["qty"] = int64(0)
	in["date"] = "02/04/2024"
	delete(in, "po_no")

	errs, err := v.Check(context.Background(), PurchasePriceRules(validation.Create, 0), in)
	require.NoError(t, err)
	assert.Equal(t, "The PO number is required.", errs["po_no"])
	assert.Contains(t, errs, "product_id")
	assert.Equal(t, "The month must be between 1 and 12.", errs["month"])
	assert.Equal(t, "The year must be 4 digits.", errs["year"])
	assert.Contains(t, errs, "qty")
	assert.Contains(t, errs, "date")
	assert.NotContains(t, errs, "price")
}

type productNames map[int64]string

func (p productNames) Resolve(_ context.Context, table string, id *int64) (*projection.Ref, error) {
	if id == nil || table != "products" {
		return nil, nil
	}
	name, ok := p[*id]
	if !ok {
		return nil, nil
	}
	return &projection.Ref{ID: *id, Name: name}, nil
}

func TestPurchasePriceDefinition_ApplyAndProject(t *testing.T) {
	def := PurchasePriceDefinition()
	assert.Equal(t, "purchase-price", def.Resource)

	var p purchasing.PurchasePrice
	in := validPrice()
	in["price"] = json.Number("12.5")
	def.Apply(&p, in, validation.Create)

	fields, err := def.Project(context.Background(), &p, productNames{1: "Widget"})
	require.NoError(t, err)
	res := projection.Project(fields, []string{"product_id", "product_name", "price", "year", "date"})
	assert.Equal(t, map[string]any{
		"product_id": int64(1), "product_name": "Widget", "price": "12.50", "year": 2024, "date": "2024-04-02",
	}, res.Map())

	// an update without product_id keeps the stored product
	update := validPrice()
	delete(update, "product_id")
	def.Apply(&p, update, validation.Update)
	require.NotNil(t, p.ProductID)
	assert.Equal(t, int64(1), *p.ProductID)

	// a product that no longer resolves renders as nulls
	fields, err = def.Project(context.Background(), &p, productNames{})
	require.NoError(t, err)
	res = projection.Project(fields, []string{"product_id", "product_name"})
	assert.Equal(t, map[string]any{"product_id": nil, "product_name": nil}, res.Map())
}
