package ecwid

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_StripHTML(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "Empty string", input: "", expected: ""},
		{name: "Plain text untouched", input: "Pure wool, dry clean only", expected: "Pure wool, dry clean only"},
		{name: "Tags removed", input: "<p>Wool <b>jacket</b></p>", expected: "Wool jacket"},
		{name: "Block tags become word breaks", input: "<p>First</p><p>Second</p>", expected: "First Second"},
		{name: "Entities decoded", input: "Fit &amp; finish &lt;premium&gt;", expected: "Fit & finish <premium>"},
		{name: "Whitespace collapsed", input: "  Wool\n\n jacket\t ", expected: "Wool jacket"},
		{name: "Attributes stripped with the tag", input: `<a href="https://x.example">link</a>`, expected: "link"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, StripHTML(tc.input))
		})
	}
}

func Test_ProductID_Deterministic(t *testing.T) {
	// the same external id always yields the same local id
	assert.Equal(t, ProductID(42), ProductID(42))
	assert.NotEqual(t, ProductID(42), ProductID(43))
	assert.NotEqual(t, ProductID(42), CategoryID(42), "product and category id spaces do not collide")
}

func Test_MapCategories(t *testing.T) {
	// given
	items := []CategoryItem{
		{ID: 1, Name: "Winter", Enabled: true},
		{ID: 2, ParentID: 1, Name: "Jackets", Enabled: true},
	}

	// when
	categories := MapCategories(items)

	// then
	require.Len(t, categories, 2)
	assert.Equal(t, CategoryID(1), categories[0].ID)
	assert.Nil(t, categories[0].ParentID, "root category has no parent")
	require.NotNil(t, categories[1].ParentID)
	assert.Equal(t, CategoryID(1), *categories[1].ParentID, "parent resolves to the mapped local id")
}

func Test_MapProducts(t *testing.T) {
	// given
	ribbon := &RibbonItem{Text: "New"}
	items := []ProductItem{{
		ID:          42,
		SKU:         "JACKET-1",
		Name:        "Wool Jacket",
		Price:       decimal.RequireFromString("149.99"),
		Description: "<p>Pure &amp; warm</p>",
		Enabled:     true,
		Quantity:    10,
		CategoryIDs: []int64{7, 8},
		Ribbon:      ribbon,
		Options: []OptionItem{{
			Name: "Size",
			Type: "SIZE",
			Choices: []ChoiceItem{
				{Text: "M"},
				{Text: "XL", Modifier: decimal.RequireFromString("10.00"), ModifierType: "ABSOLUTE"},
			},
		}},
		Combinations: []Combination{{
			SKU:      "JACKET-1-XL",
			Quantity: 4,
			Options:  []CombinationOption{{Name: "Size", Value: "XL"}},
		}},
	}}

	// when
	products := MapProducts(items)

	// then
	require.Len(t, products, 1)
	p := products[0]
	assert.Equal(t, ProductID(42), p.ID)
	assert.Equal(t, int64(42), p.ExternalID)
	assert.Equal(t, "Pure & warm", p.Description)
	assert.Equal(t, "New", p.Ribbon)
	assert.True(t, p.IsActive)
	require.NotNil(t, p.CategoryID)
	assert.Equal(t, CategoryID(7), *p.CategoryID, "first listed category wins")

	require.Len(t, p.Variations, 1)
	v := p.Variations[0]
	assert.Equal(t, "Size", v.Name)
	require.Len(t, v.Options, 2)
	assert.Equal(t, "M", v.Options[0].Name)
	assert.Empty(t, v.Options[0].SKU, "no combination for the base choice")
	assert.Equal(t, "XL", v.Options[1].Name)
	assert.Equal(t, "JACKET-1-XL", v.Options[1].SKU, "combination SKU attached to the matching choice")
	assert.Equal(t, int32(4), v.Options[1].Stock)
	assert.True(t, decimal.RequireFromString("10.00").Equal(v.Options[1].PriceModifier))
}

func Test_MapProducts_PercentModifier(t *testing.T) {
	// given: a 10% surcharge on a 149.99 base
	items := []ProductItem{{
		ID:    42,
		Price: decimal.RequireFromString("149.99"),
		Options: []OptionItem{{
			Name: "Finish",
			Choices: []ChoiceItem{
				{Text: "Premium", Modifier: decimal.RequireFromString("10"), ModifierType: "PERCENT"},
			},
		}},
	}}

	// when
	products := MapProducts(items)

	// then: the percentage is converted to an absolute delta
	modifier := products[0].Variations[0].Options[0].PriceModifier
	assert.True(t, decimal.RequireFromString("15.00").Equal(modifier), "got %s", modifier)
}

func Test_MapProducts_Repeatable(t *testing.T) {
	// given
	items := []ProductItem{{
		ID:   42,
		Name: "Wool Jacket",
		Options: []OptionItem{{
			Name:    "Size",
			Choices: []ChoiceItem{{Text: "M"}},
		}},
	}}

	// when: the same source record is mapped twice
	first := MapProducts(items)[0]
	second := MapProducts(items)[0]

	// then: every synthesized id is stable across imports
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.Variations[0].ID, second.Variations[0].ID)
	assert.Equal(t, first.Variations[0].Options[0].ID, second.Variations[0].Options[0].ID)
}
