// Package pricing computes unit prices and cart totals. All functions are
// pure; currency rounding is left to the presentation layer.
package pricing

import (
	"github.com/baigojahanzaib/ajj-sales/internal/catalog"
	"github.com/shopspring/decimal"
)

// TaxRate is the fixed sales tax rate applied to the cart subtotal.
var TaxRate = decimal.NewFromFloat(0.09)

// PriceOf computes the unit price of a product with the given variation
// selections: base price plus the sum of the selected options' price
// modifiers. A selection that does not resolve against the product's
// variation list contributes nothing; that is a caller error, not a failure.
// Selection order does not affect the result.
func PriceOf(p *catalog.Product, selections []catalog.SelectedVariation) decimal.Decimal {
	price := p.BasePrice
	for _, sel := range selections {
		opt, ok := p.Option(sel.VariationID, sel.OptionID)
		if !ok {
			continue
		}
		price = price.Add(opt.PriceModifier)
	}
	return price
}

// Totals is the derived money breakdown of a cart or order.
type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// FromLines computes subtotal, tax and total from the given line totals.
// Tax is subtotal times TaxRate, unrounded.
func FromLines(lineTotals []decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, lt := range lineTotals {
		subtotal = subtotal.Add(lt)
	}
	tax := subtotal.Mul(TaxRate)
	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal.Add(tax),
	}
}

// OrderTotal applies a discount to a computed breakdown:
// total = subtotal + tax - discount.
func OrderTotal(t Totals, discount decimal.Decimal) decimal.Decimal {
	return t.Subtotal.Add(t.Tax).Sub(discount)
}
