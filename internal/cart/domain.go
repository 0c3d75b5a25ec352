// internal/cart/domain.go
package cart

import (
	"errors"
	"fmt"
	"storefront/internal/catalog"
)

var ErrInvalidLine = errors.New("invalid cart line")

// Line is the server-held record of a product in the cart. The client never
// edits lines; it sends the quantity it wants and adopts what comes back.
type Line struct {
	ProductID string `json:"productId"`
	Qty       int    `json:"qty"`
}

// Item is a Line enriched with the display fields of its product. Items exist
// only for rendering.
type Item struct {
	catalog.Product
	ProductID string `json:"productId"`
	Qty       int    `json:"qty"`
}

// Options tunes a quantity change. PreventDuplicate is for "add to cart"
// actions; +/- adjustments on an existing line leave it false.
type Options struct {
	PreventDuplicate bool
}

// Summary is the order details block shown under a read-only cart.
type Summary struct {
	Items    int     `json:"items"`
	Count    int     `json:"count"`
	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shipping"`
	Total    float64 `json:"total"`
}

// Normalize checks lines received from the service and drops zero-quantity
// entries, which count as absent. It rejects empty ids, negative quantities
// and repeated product ids.
func Normalize(lines []Line) ([]Line, error) {
	out := make([]Line, 0, len(lines))
	seen := make(map[string]struct{}, len(lines))
	for _, l := range lines {
		if l.ProductID == "" {
			return nil, fmt.Errorf("%w: missing productId", ErrInvalidLine)
		}
		if l.Qty < 0 {
			return nil, fmt.Errorf("%w: product %s has negative qty %d", ErrInvalidLine, l.ProductID, l.Qty)
		}
		if _, dup := seen[l.ProductID]; dup {
			return nil, fmt.Errorf("%w: product %s listed twice", ErrInvalidLine, l.ProductID)
		}
		seen[l.ProductID] = struct{}{}
		if l.Qty == 0 {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}
