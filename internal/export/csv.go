// Package export renders orders into shareable documents.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/baigojahanzaib/ajj-sales/internal/order"
)

var itemHeader = []string{"#", "Product", "SKU", "Variations", "Quantity", "Unit Price", "Line Total"}

// OrderCSV renders an order as a CSV document: order header, one row per
// line item, then the money summary.
func OrderCSV(o *order.Order) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	rows := [][]string{
		{"Order", o.OrderNumber},
		{"Date", o.CreatedAt.Format("2006-01-02 15:04")},
		{"Status", string(o.Status)},
		{"Customer", o.Customer.Name},
		{"Phone", o.Customer.Phone},
		{"Address", o.Customer.Address},
		{},
		itemHeader,
	}
	for i, item := range o.Items {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			item.ProductName,
			item.SKU,
			selectionSummary(item),
			fmt.Sprintf("%d", item.Quantity),
			item.UnitPrice.StringFixed(2),
			item.TotalPrice.StringFixed(2),
		})
	}
	rows = append(rows,
		[]string{},
		[]string{"", "", "", "", "", "Subtotal", o.Subtotal.StringFixed(2)},
		[]string{"", "", "", "", "", "Tax", o.Tax.StringFixed(2)},
	)
	if !o.Discount.IsZero() {
		rows = append(rows, []string{"", "", "", "", "", "Discount", o.Discount.Neg().StringFixed(2)})
	}
	rows = append(rows, []string{"", "", "", "", "", "Total", o.Total.StringFixed(2)})

	if err := w.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("failed to write csv: %w", err)
	}
	return buf.Bytes(), nil
}

// FileName returns the suggested attachment name for an order export.
func FileName(o *order.Order) string {
	return fmt.Sprintf("order_%s.csv", o.OrderNumber)
}

func selectionSummary(item order.Item) string {
	return strings.Join(item.SelectionNames, "; ")
}
