package cart

import (
	"testing"

	"github.com/baigojahanzaib/ajj-sales/internal/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jacket() *catalog.Product {
	return &catalog.Product{
		ID:        uuid.MustParse("123e4567-e89b-12d3-a456-426614174000"),
		Name:      "Leather Jacket",
		BasePrice: decimal.RequireFromString("149.99"),
		Variations: []catalog.Variation{
			{
				ID:   "size",
				Name: "Size",
				Options: []catalog.VariationOption{
					{ID: "m", Name: "M", PriceModifier: decimal.Zero},
					{ID: "xl", Name: "XL", PriceModifier: decimal.RequireFromString("10")},
				},
			},
			{
				ID:   "color",
				Name: "Color",
				Options: []catalog.VariationOption{
					{ID: "black", Name: "Black", PriceModifier: decimal.Zero},
				},
			},
		},
	}
}

func Test_Signature(t *testing.T) {
	testCases := []struct {
		name       string
		selections []catalog.SelectedVariation
		expected   string
	}{
		{name: "Empty", selections: nil, expected: ""},
		{
			name: "Single pair",
			selections: []catalog.SelectedVariation{
				{VariationID: "size", OptionID: "xl"},
			},
			expected: "size:xl",
		},
		{
			name: "Pairs are sorted",
			selections: []catalog.SelectedVariation{
				{VariationID: "size", OptionID: "xl"},
				{VariationID: "color", OptionID: "black"},
			},
			expected: "color:black|size:xl",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Signature(tc.selections))
		})
	}
}

func Test_Cart_AddItem_MergesAcrossSelectionOrder(t *testing.T) {
	// given
	c := New()
	product := jacket()

	// when: same product and selections, different selection order
	c.AddItem(product, []catalog.SelectedVariation{
		{VariationID: "size", OptionID: "xl"},
		{VariationID: "color", OptionID: "black"},
	}, 1)
	c.AddItem(product, []catalog.SelectedVariation{
		{VariationID: "color", OptionID: "black"},
		{VariationID: "size", OptionID: "xl"},
	}, 2)

	// then: one line with the combined quantity
	items := c.Items()
	require.Len(t, items, 1, "lines with the same signature must merge")
	assert.Equal(t, int32(3), items[0].Quantity)
	assert.True(t, items[0].UnitPrice.Equal(decimal.RequireFromString("159.99")))
	assert.True(t, items[0].TotalPrice.Equal(decimal.RequireFromString("479.97")))
}

func Test_Cart_AddItem_DifferentSelectionsStaySeparate(t *testing.T) {
	c := New()
	product := jacket()

	c.AddItem(product, []catalog.SelectedVariation{{VariationID: "size", OptionID: "m"}}, 1)
	c.AddItem(product, []catalog.SelectedVariation{{VariationID: "size", OptionID: "xl"}}, 1)

	assert.Equal(t, 2, c.ItemCount())
}

func Test_Cart_AddItem_NonPositiveQuantityIgnored(t *testing.T) {
	c := New()
	item := c.AddItem(jacket(), nil, 0)
	assert.Nil(t, item)
	assert.Equal(t, 0, c.ItemCount())
}

func Test_Cart_UpdateQuantity(t *testing.T) {
	// given
	c := New()
	added := c.AddItem(jacket(), nil, 2)
	require.NotNil(t, added)

	// when: overwrite quantity
	c.UpdateQuantity(added.ID, 5)

	// then
	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, int32(5), items[0].Quantity)
	assert.True(t, items[0].TotalPrice.Equal(decimal.RequireFromString("749.95")))

	// when: zero removes the line
	c.UpdateQuantity(added.ID, 0)

	// then
	assert.Equal(t, 0, c.ItemCount())
}

func Test_Cart_UpdateQuantity_UnknownIDIsNoOp(t *testing.T) {
	c := New()
	c.AddItem(jacket(), nil, 1)
	c.UpdateQuantity(uuid.New(), 10)
	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, int32(1), items[0].Quantity)
}

func Test_Cart_RemoveItem(t *testing.T) {
	c := New()
	first := c.AddItem(jacket(), nil, 1)
	second := c.AddItem(jacket(), []catalog.SelectedVariation{{VariationID: "size", OptionID: "xl"}}, 1)

	c.RemoveItem(first.ID)

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, second.ID, items[0].ID)
}

func Test_Cart_Totals(t *testing.T) {
	// given: 3 x 159.99
	c := New()
	c.AddItem(jacket(), []catalog.SelectedVariation{{VariationID: "size", OptionID: "xl"}}, 3)

	// when
	totals := c.Totals()

	// then
	assert.True(t, totals.Subtotal.Equal(decimal.RequireFromString("479.97")), "subtotal %s", totals.Subtotal)
	assert.True(t, totals.Tax.Equal(decimal.RequireFromString("43.1973")), "tax %s", totals.Tax)
	assert.True(t, totals.Total.Equal(decimal.RequireFromString("523.1673")), "total %s", totals.Total)
}

func Test_Cart_UnitPriceFrozenAtFirstAdd(t *testing.T) {
	// given
	c := New()
	product := jacket()
	c.AddItem(product, nil, 1)

	// when: the catalog price changes and the same line is added again
	product.BasePrice = decimal.RequireFromString("999.99")
	c.AddItem(product, nil, 1)

	// then: the line keeps the price computed at first add
	items := c.Items()
	require.Len(t, items, 1)
	assert.True(t, items[0].UnitPrice.Equal(decimal.RequireFromString("149.99")))
}
