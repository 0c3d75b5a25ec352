// internal/cart/merge.go
package cart

import "storefront/internal/catalog"

// MergeCart joins each line with its product. The result has one item per
// line, in line order. A line whose product is not in the catalog yields an
// item carrying only the line's fields.
func MergeCart(lines []Line, products []catalog.Product) []Item {
	items := make([]Item, 0, len(lines))
	if len(lines) == 0 {
		return items
	}

	index := make(map[string]int, len(products))
	for i := range products {
		if _, ok := index[products[i].ID]; !ok {
			index[products[i].ID] = i
		}
	}

	for _, l := range lines {
		item := Item{ProductID: l.ProductID, Qty: l.Qty}
		if i, ok := index[l.ProductID]; ok {
			item.Product = products[i]
		}
		items = append(items, item)
	}
	return items
}

// Total is the sum of cost × qty over items.
func Total(items []Item) float64 {
	var total float64
	for _, item := range items {
		total += item.Cost * float64(item.Qty)
	}
	return total
}

// Count is the sum of quantities over items.
func Count(items []Item) int {
	var count int
	for _, item := range items {
		count += item.Qty
	}
	return count
}

// InCart reports whether productID has an item in items.
func InCart(items []Item, productID string) bool {
	for _, item := range items {
		if item.ProductID == productID {
			return true
		}
	}
	return false
}

// Summarize computes the order details for items. Shipping is free.
func Summarize(items []Item) Summary {
	subtotal := Total(items)
	return Summary{
		Items:    len(items),
		Count:    Count(items),
		Subtotal: subtotal,
		Shipping: 0,
		Total:    subtotal,
	}
}
