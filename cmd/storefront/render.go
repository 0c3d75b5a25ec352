// cmd/storefront/render.go
package main

import (
	"errors"
	"fmt"
	"io"
	"storefront/internal/apierr"
	"storefront/internal/cart"
	"storefront/internal/catalog"
	"strings"
	"text/tabwriter"
)

func renderProducts(w io.Writer, products []catalog.Product) {
	if len(products) == 0 {
		fmt.Fprintln(w, "No products found")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tCOST\tRATING")
	for _, p := range products {
		fmt.Fprintf(tw, "%s\t%s\t%s\t$%.2f\t%s\n", p.ID, p.Name, p.Category, p.Cost, stars(p.Rating))
	}
	tw.Flush()
}

func renderCart(w io.Writer, items []cart.Item) {
	if len(items) == 0 {
		fmt.Fprintln(w, "Cart is empty. Add more items to the cart to checkout")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tQTY\tCOST")
	for _, item := range items {
		name := item.Name
		if name == "" {
			name = "(unavailable)"
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t$%.2f\n", item.ProductID, name, item.Qty, item.Cost*float64(item.Qty))
	}
	tw.Flush()
}

func renderSummary(w io.Writer, s cart.Summary) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Order Details")
	fmt.Fprintf(tw, "Products\t%d\n", s.Count)
	fmt.Fprintf(tw, "Subtotal\t$%.2f\n", s.Subtotal)
	fmt.Fprintf(tw, "Shipping Charges\t$%.2f\n", s.Shipping)
	fmt.Fprintf(tw, "Total\t$%.2f\n", s.Total)
	tw.Flush()
}

func stars(rating int) string {
	return strings.Repeat("*", rating) + strings.Repeat(".", 5-rating)
}

// describe turns an error into the message shown to the user.
func describe(err error) string {
	switch {
	case errors.Is(err, cart.ErrAuthRequired), errors.Is(err, cart.ErrDuplicateItem):
		return capitalize(err.Error())
	default:
		return apierr.Message(err)
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
