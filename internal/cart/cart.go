// Package cart implements the per-sales-rep shopping cart: line aggregation
// by product and variation signature, quantity edits and totals.
package cart

import (
	"sort"
	"strings"
	"time"

	"github.com/baigojahanzaib/ajj-sales/internal/catalog"
	"github.com/baigojahanzaib/ajj-sales/internal/pricing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Item is one cart line: a product snapshot with the chosen variations,
// quantity and derived prices. UnitPrice is frozen at first-add time, so
// later catalog price changes do not silently alter an open cart.
type Item struct {
	ID         uuid.UUID                   `json:"id"`
	Product    catalog.Product             `json:"product"`
	Selections []catalog.SelectedVariation `json:"selections,omitempty"`
	Quantity   int32                       `json:"quantity"`
	UnitPrice  decimal.Decimal             `json:"unit_price"`
	TotalPrice decimal.Decimal             `json:"total_price"`
	AddedAt    time.Time                   `json:"added_at"`

	signature string
}

// Signature derives the canonical line key from the variation selections:
// pairs sorted by (variationID, optionID) and joined. Selecting
// Color=Red,Size=M therefore merges with Size=M,Color=Red.
func Signature(selections []catalog.SelectedVariation) string {
	if len(selections) == 0 {
		return ""
	}
	keys := make([]string, len(selections))
	for i, sel := range selections {
		keys[i] = sel.VariationID + ":" + sel.OptionID
	}
	sort.Strings(keys)
	return strings.Join(keys, "|")
}

// Cart holds the lines of one sales rep. It is not safe for concurrent use;
// Manager serializes access.
type Cart struct {
	items []*Item
}

func New() *Cart {
	return &Cart{}
}

// AddItem merges the product and selections into an existing line with the
// same product id and signature, or appends a new line. The merged line keeps
// the unit price computed at first add.
func (c *Cart) AddItem(product *catalog.Product, selections []catalog.SelectedVariation, quantity int32) *Item {
	if quantity <= 0 {
		return nil
	}
	sig := Signature(selections)
	for _, item := range c.items {
		if item.Product.ID == product.ID && item.signature == sig {
			item.Quantity += quantity
			item.TotalPrice = item.UnitPrice.Mul(decimal.NewFromInt32(item.Quantity))
			return item
		}
	}

	unitPrice := pricing.PriceOf(product, selections)
	item := &Item{
		ID:         uuid.New(),
		Product:    *product,
		Selections: append([]catalog.SelectedVariation(nil), selections...),
		Quantity:   quantity,
		UnitPrice:  unitPrice,
		TotalPrice: unitPrice.Mul(decimal.NewFromInt32(quantity)),
		AddedAt:    time.Now(),
		signature:  sig,
	}
	c.items = append(c.items, item)
	return item
}

// UpdateQuantity overwrites the quantity of the identified line and
// recomputes its total. A quantity of zero or less removes the line.
// An unknown id is a no-op.
func (c *Cart) UpdateQuantity(itemID uuid.UUID, quantity int32) {
	if quantity <= 0 {
		c.RemoveItem(itemID)
		return
	}
	for _, item := range c.items {
		if item.ID == itemID {
			item.Quantity = quantity
			item.TotalPrice = item.UnitPrice.Mul(decimal.NewFromInt32(quantity))
			return
		}
	}
}

// RemoveItem deletes the identified line. An unknown id is a no-op.
func (c *Cart) RemoveItem(itemID uuid.UUID) {
	for i, item := range c.items {
		if item.ID == itemID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.items = nil
}

// ItemCount returns the number of lines in the cart.
func (c *Cart) ItemCount() int {
	return len(c.items)
}

// Items returns a copy of the cart lines in insertion order.
func (c *Cart) Items() []Item {
	out := make([]Item, len(c.items))
	for i, item := range c.items {
		out[i] = *item
	}
	return out
}

// Totals computes the subtotal, tax and total over the current lines.
func (c *Cart) Totals() pricing.Totals {
	lines := make([]decimal.Decimal, len(c.items))
	for i, item := range c.items {
		lines[i] = item.TotalPrice
	}
	return pricing.FromLines(lines)
}
