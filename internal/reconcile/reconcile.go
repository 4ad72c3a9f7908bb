// Package reconcile applies batches of externally-sourced update records
// against locally held products and orders. Matching is by stable key, each
// patch touches only the fields it names, every update is idempotent, and a
// failing record never aborts the batch.
package reconcile

import (
	"github.com/baigojahanzaib/ajj-sales/internal/catalog"
)

// MatchLevel tags which level of the two-tier lookup matched a record.
type MatchLevel string

const (
	// MatchProduct means the record matched a top-level product.
	MatchProduct MatchLevel = "product"
	// MatchOption means the record matched one variation option, one level
	// into a composite product.
	MatchOption MatchLevel = "option"
	// MatchOrder means the record matched an order by number.
	MatchOrder MatchLevel = "order"
)

// StockUpdate is one externally-sourced stock/MOQ record. Nil fields are
// left untouched on the target (partial update semantics).
type StockUpdate struct {
	ExternalID int64  `json:"external_id,omitempty"`
	SKU        string `json:"sku" validate:"required"`
	Stock      *int32 `json:"stock" validate:"omitempty,min=0"`
	MOQ        *int32 `json:"moq" validate:"omitempty,min=0"`
}

// OrderUpdate is one externally-sourced order status record.
type OrderUpdate struct {
	OrderNumber string `json:"order_number" validate:"required"`
	Status      string `json:"status" validate:"required"`
}

// Outcome is the per-record result of a batch application.
type Outcome struct {
	Key     string     `json:"key"`
	Matched MatchLevel `json:"matched,omitempty"`
	OK      bool       `json:"ok"`
	Reason  string     `json:"reason,omitempty"`
}

// Report collects one Outcome per input record, in input order.
type Report struct {
	Outcomes []Outcome `json:"outcomes"`
}

// Succeeded returns the number of applied records.
func (r *Report) Succeeded() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.OK {
			n++
		}
	}
	return n
}

// Failed returns the number of records that could not be applied.
func (r *Report) Failed() int {
	return len(r.Outcomes) - r.Succeeded()
}

// ApplyStockUpdates patches the given products in place. Lookup is two-tier:
// the product's own SKU (or external id) first, then one level into the
// variation options by SKU. Returns the report and the set of products that
// were actually modified. Re-applying the same batch leaves the products
// unchanged.
func ApplyStockUpdates(products []*catalog.Product, updates []StockUpdate) (Report, []*catalog.Product) {
	report := Report{Outcomes: make([]Outcome, 0, len(updates))}
	changed := make(map[*catalog.Product]bool)

	for _, u := range updates {
		outcome := Outcome{Key: u.SKU}
		target, opt := match(products, u)
		switch {
		case opt != nil:
			outcome.Matched = MatchOption
			outcome.OK = true
			if patchOption(opt, u) {
				changed[target] = true
			}
		case target != nil:
			outcome.Matched = MatchProduct
			outcome.OK = true
			if patchProduct(target, u) {
				changed[target] = true
			}
		default:
			outcome.Reason = "not found"
		}
		report.Outcomes = append(report.Outcomes, outcome)
	}

	modified := make([]*catalog.Product, 0, len(changed))
	for _, p := range products {
		if changed[p] {
			modified = append(modified, p)
		}
	}
	return report, modified
}

// match resolves one update record against the product set. A product-level
// match wins over an option-level one; an external id only matches products.
func match(products []*catalog.Product, u StockUpdate) (*catalog.Product, *catalog.VariationOption) {
	for _, p := range products {
		if u.SKU != "" && p.SKU == u.SKU {
			return p, nil
		}
		if u.ExternalID != 0 && p.ExternalID == u.ExternalID {
			return p, nil
		}
	}
	if u.SKU == "" {
		return nil, nil
	}
	for _, p := range products {
		for i := range p.Variations {
			for j := range p.Variations[i].Options {
				if p.Variations[i].Options[j].SKU == u.SKU {
					return p, &p.Variations[i].Options[j]
				}
			}
		}
	}
	return nil, nil
}

func patchProduct(p *catalog.Product, u StockUpdate) bool {
	modified := false
	if u.Stock != nil && p.Stock != *u.Stock {
		p.Stock = *u.Stock
		modified = true
	}
	if u.MOQ != nil && p.MOQ != *u.MOQ {
		p.MOQ = *u.MOQ
		modified = true
	}
	return modified
}

func patchOption(o *catalog.VariationOption, u StockUpdate) bool {
	modified := false
	if u.Stock != nil && o.Stock != *u.Stock {
		o.Stock = *u.Stock
		modified = true
	}
	if u.MOQ != nil && o.MOQ != *u.MOQ {
		o.MOQ = *u.MOQ
		modified = true
	}
	return modified
}
