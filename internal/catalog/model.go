// Package catalog holds the product and category domain model and the
// services that manage them.
package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a catalog entry. Nested variations are stored as a document
// alongside the scalar columns. SKU is unique within the store.
type Product struct {
	ID          uuid.UUID       `json:"id"`
	ExternalID  int64           `json:"external_id,omitempty"`
	Name        string          `json:"name"`
	SKU         string          `json:"sku"`
	Description string          `json:"description,omitempty"`
	BasePrice   decimal.Decimal `json:"base_price"`
	Stock       int32           `json:"stock"`
	MOQ         int32           `json:"moq"`
	Ribbon      string          `json:"ribbon,omitempty"`
	IsActive    bool            `json:"is_active"`
	CategoryID  *uuid.UUID      `json:"category_id,omitempty"`
	Variations  []Variation     `json:"variations,omitempty"`
	Version     int32           `json:"version"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// Variation is a named axis of customization (e.g. Color) with an ordered
// list of concrete options.
type Variation struct {
	ID      string            `json:"id"`
	Name    string            `json:"name"`
	Options []VariationOption `json:"options"`
}

// VariationOption is one choice along a variation axis. Each option carries
// its own price delta, stock, SKU and minimum order quantity.
type VariationOption struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	PriceModifier decimal.Decimal `json:"price_modifier"`
	SKU           string          `json:"sku,omitempty"`
	Stock         int32           `json:"stock"`
	MOQ           int32           `json:"moq,omitempty"`
}

// SelectedVariation is a (variation, option) pair chosen for a single
// cart or order line.
type SelectedVariation struct {
	VariationID string `json:"variation_id" validate:"required"`
	OptionID    string `json:"option_id" validate:"required"`
}

// Option resolves a selected (variation, option) pair against the product's
// variation list. Returns false if either id is unknown.
func (p *Product) Option(variationID, optionID string) (*VariationOption, bool) {
	for i := range p.Variations {
		if p.Variations[i].ID != variationID {
			continue
		}
		for j := range p.Variations[i].Options {
			if p.Variations[i].Options[j].ID == optionID {
				return &p.Variations[i].Options[j], true
			}
		}
	}
	return nil, false
}

// Category groups products. Categories imported from the storefront keep
// their source numeric id in ExternalID.
type Category struct {
	ID         uuid.UUID  `json:"id"`
	ExternalID int64      `json:"external_id,omitempty"`
	Name       string     `json:"name"`
	ParentID   *uuid.UUID `json:"parent_id,omitempty"`
	Enabled    bool       `json:"enabled"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}
