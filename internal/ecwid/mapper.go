package ecwid

import (
	"fmt"
	"html"
	"strings"

	"github.com/baigojahanzaib/ajj-sales/internal/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// namespace seeds the deterministic ids synthesized from Ecwid's numeric ids,
// so repeated imports map the same source record to the same local row.
var namespace = uuid.MustParse("7b9c1a34-52de-4f08-9b1e-c6a8f0d2e415")

// ProductID derives the stable local id for an Ecwid product id.
func ProductID(externalID int64) uuid.UUID {
	return uuid.NewSHA1(namespace, []byte(fmt.Sprintf("product:%d", externalID)))
}

// CategoryID derives the stable local id for an Ecwid category id.
func CategoryID(externalID int64) uuid.UUID {
	return uuid.NewSHA1(namespace, []byte(fmt.Sprintf("category:%d", externalID)))
}

// MapCategories converts Ecwid categories to the local shape.
func MapCategories(items []CategoryItem) []*catalog.Category {
	out := make([]*catalog.Category, 0, len(items))
	for _, it := range items {
		c := &catalog.Category{
			ID:         CategoryID(it.ID),
			ExternalID: it.ID,
			Name:       it.Name,
			Enabled:    it.Enabled,
		}
		if it.ParentID != 0 {
			parent := CategoryID(it.ParentID)
			c.ParentID = &parent
		}
		out = append(out, c)
	}
	return out
}

// MapProducts converts Ecwid products to the local shape. Descriptions are
// stripped of HTML, percentage price modifiers are converted to absolute
// deltas off the base price, and combination SKUs/stock are attached to the
// matching option choices.
func MapProducts(items []ProductItem) []*catalog.Product {
	out := make([]*catalog.Product, 0, len(items))
	for i := range items {
		out = append(out, mapProduct(&items[i]))
	}
	return out
}

func mapProduct(it *ProductItem) *catalog.Product {
	p := &catalog.Product{
		ID:          ProductID(it.ID),
		ExternalID:  it.ID,
		Name:        it.Name,
		SKU:         it.SKU,
		Description: StripHTML(it.Description),
		BasePrice:   it.Price,
		Stock:       it.Quantity,
		IsActive:    it.Enabled,
		Variations:  mapVariations(it),
	}
	if it.Ribbon != nil {
		p.Ribbon = it.Ribbon.Text
	}
	if len(it.CategoryIDs) > 0 {
		id := CategoryID(it.CategoryIDs[0])
		p.CategoryID = &id
	}
	return p
}

func mapVariations(it *ProductItem) []catalog.Variation {
	if len(it.Options) == 0 {
		return nil
	}
	variations := make([]catalog.Variation, 0, len(it.Options))
	for _, opt := range it.Options {
		v := catalog.Variation{
			ID:      variationID(it.ID, opt.Name),
			Name:    opt.Name,
			Options: make([]catalog.VariationOption, 0, len(opt.Choices)),
		}
		for _, choice := range opt.Choices {
			vo := catalog.VariationOption{
				ID:            optionID(it.ID, opt.Name, choice.Text),
				Name:          choice.Text,
				PriceModifier: absoluteModifier(it.Price, choice),
			}
			if combo, ok := findCombination(it.Combinations, opt.Name, choice.Text); ok {
				vo.SKU = combo.SKU
				vo.Stock = combo.Quantity
			}
			v.Options = append(v.Options, vo)
		}
		variations = append(variations, v)
	}
	return variations
}

// absoluteModifier resolves a choice's price delta. Ecwid reports either an
// absolute amount or a percentage of the base price.
func absoluteModifier(base decimal.Decimal, choice ChoiceItem) decimal.Decimal {
	if strings.EqualFold(choice.ModifierType, "PERCENT") {
		return base.Mul(choice.Modifier).Div(decimal.NewFromInt(100)).Round(2)
	}
	return choice.Modifier
}

func findCombination(combos []Combination, optionName, value string) (*Combination, bool) {
	for i := range combos {
		for _, co := range combos[i].Options {
			if co.Name == optionName && co.Value == value {
				return &combos[i], true
			}
		}
	}
	return nil, false
}

func variationID(productID int64, optionName string) string {
	return uuid.NewSHA1(namespace, []byte(fmt.Sprintf("variation:%d:%s", productID, optionName))).String()
}

func optionID(productID int64, optionName, choice string) string {
	return uuid.NewSHA1(namespace, []byte(fmt.Sprintf("option:%d:%s:%s", productID, optionName, choice))).String()
}

// StripHTML removes markup from a description, decoding entities and
// collapsing runs of whitespace left behind by block tags.
func StripHTML(s string) string {
	if s == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(s))
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
			b.WriteByte(' ')
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(html.UnescapeString(b.String())), " ")
}
