// internal/cart/errors.go
package cart

import "errors"

var (
	// ErrAuthRequired is returned for cart actions attempted without a token.
	ErrAuthRequired = errors.New("login to add an item to the cart")
	// ErrDuplicateItem is returned when an add-to-cart targets a product that
	// already has a line.
	ErrDuplicateItem = errors.New("item already in cart, use the cart sidebar to update quantity or remove item")

	// ErrUnknownProduct is returned by the cart service for an upsert naming a
	// product outside the catalog.
	ErrUnknownProduct = errors.New("product doesn't exist")
	// ErrInvalidQuantity is returned for a negative quantity.
	ErrInvalidQuantity = errors.New("qty must be greater than or equal to 0")
)
