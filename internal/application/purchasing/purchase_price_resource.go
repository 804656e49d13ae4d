// Package purchasing wires the purchase price resource.
package purchasing

import (
	"context"

	catalogapp "github.com/stockpile/backend/internal/application/catalog"
	"github.com/stockpile/backend/internal/application/crud"
	"github.com/stockpile/backend/internal/application/projection"
	"github.com/stockpile/backend/internal/application/validation"
	"github.com/stockpile/backend/internal/domain/purchasing"
)

// TablePurchasePrices is the purchase price table.
const TablePurchasePrices = "purchase_prices"

// PurchasePriceDefinition describes the purchase price resource.
func PurchasePriceDefinition() crud.Definition[purchasing.PurchasePrice] {
	return crud.Definition[purchasing.PurchasePrice]{
		Resource: "purchase-price",
		Rules:    PurchasePriceRules,
		Apply:    applyPurchasePrice,
		Project:  projectPurchasePrice,
	}
}

// PurchasePriceRules is the purchase price constraint table. product_id is
// mandatory when creating and optional on a partial update.
func PurchasePriceRules(op validation.Operation, _ int64) validation.RuleSet {
	presence := validation.Required()
	if op == validation.Update {
		presence = validation.Nullable()
	}
	return validation.Rules(
		validation.Field("po_no", validation.Required(), validation.String(), validation.MaxLength(50)),
		validation.Field("product_id",
			presence, validation.Integer(), validation.ExistsIn(catalogapp.TableProducts, "id").PerTenant()),
		validation.Field("price", validation.Required(), validation.Numeric(), validation.Range(0, 99999999)),
		validation.Field("qty", validation.Required(), validation.Integer(), validation.Range(1, 1000000)),
		validation.Field("month", validation.Required(), validation.Integer(), validation.Range(1, 12)),
		validation.Field("year", validation.Required(), validation.Digits(4)),
		validation.Field("date", validation.Required(), validation.Date()),
	).WithMessages(map[string]string{
		"po_no.required":      "The PO number is required.",
		"product_id.required": "Please select a product.",
	})
}

func applyPurchasePrice(p *purchasing.PurchasePrice, in validation.Fields, op validation.Operation) {
	if in.Sent(op, "po_no") {
		p.PONo = in.String("po_no")
	}
	if in.Filled("product_id") {
		p.ProductID = in.Int64Ptr("product_id")
	}
	if in.Sent(op, "price") {
		p.Price = in.Decimal("price")
	}
	if in.Sent(op, "qty") {
		p.Qty = in.Int64("qty")
	}
	if in.Sent(op, "month") {
		p.Month = int(in.Int64("month"))
	}
	if in.Sent(op, "year") {
		p.Year = int(in.Int64("year"))
	}
	if in.Sent(op, "date") {
		p.Date = in.Date("date")
	}
}

func projectPurchasePrice(ctx context.Context, p *purchasing.PurchasePrice, refs projection.RefResolver) ([]projection.Field, error) {
	product, err := refs.Resolve(ctx, catalogapp.TableProducts, p.ProductID)
	if err != nil {
		return nil, err
	}
	var date any
	if !p.Date.IsZero() {
		date = p.Date.Format("2006-01-02")
	}
	return projection.NewBuilder().
		Add("id", p.ID).
		Add("po_no", p.PONo).
		Relation("product_id", "product_name", product).
		Add("price", p.Price.StringFixed(2)).
		Add("qty", p.Qty).
		Add("month", p.Month).
		Add("year", p.Year).
		Add("date", date).
		Timestamps(&p.Audit).
		Fields(), nil
}
