// Package order holds the order domain model and the service managing the
// order lifecycle.
package order

import (
	"time"

	"github.com/baigojahanzaib/ajj-sales/internal/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CustomerSnapshot is the customer's contact data copied onto the order at
// creation time. Later customer edits never alter historical orders.
type CustomerSnapshot struct {
	Name    string `json:"name"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
	Address string `json:"address,omitempty"`
}

// Item is a frozen snapshot of a cart line at order creation.
// SelectionNames carry the human-readable variation labels resolved at
// creation time, so exports stay readable if the product changes later.
type Item struct {
	ProductID      uuid.UUID                   `json:"product_id"`
	ProductName    string                      `json:"product_name"`
	SKU            string                      `json:"sku"`
	Selections     []catalog.SelectedVariation `json:"selections,omitempty"`
	SelectionNames []string                    `json:"selection_names,omitempty"`
	Quantity       int32                       `json:"quantity"`
	UnitPrice      decimal.Decimal             `json:"unit_price"`
	TotalPrice     decimal.Decimal             `json:"total_price"`
}

// EditEntry is one audit record of a post-submission edit.
type EditEntry struct {
	EditedBy uuid.UUID `json:"edited_by"`
	EditedAt time.Time `json:"edited_at"`
	Note     string    `json:"note,omitempty"`
}

// Snapshot is the order's item and money state before an edit, kept for
// the audit trail.
type Snapshot struct {
	Items    []Item          `json:"items"`
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Discount decimal.Decimal `json:"discount"`
	Total    decimal.Decimal `json:"total"`
}

// Order is a submitted order. OrderNumber is immutable; totals are frozen
// once submitted and change only through the explicit edit operation, which
// records the previous version and appends to the edit log.
// Invariant: Total = Subtotal + Tax - Discount.
type Order struct {
	ID              uuid.UUID        `json:"id"`
	OrderNumber     string           `json:"order_number"`
	SalesRepID      uuid.UUID        `json:"sales_rep_id"`
	CustomerID      uuid.UUID        `json:"customer_id"`
	Customer        CustomerSnapshot `json:"customer"`
	Items           []Item           `json:"items"`
	Subtotal        decimal.Decimal  `json:"subtotal"`
	Tax             decimal.Decimal  `json:"tax"`
	Discount        decimal.Decimal  `json:"discount"`
	Total           decimal.Decimal  `json:"total"`
	Status          Status           `json:"status"`
	PreviousVersion *Snapshot        `json:"previous_version,omitempty"`
	EditLog         []EditEntry      `json:"edit_log,omitempty"`
	Version         int32            `json:"version"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}
