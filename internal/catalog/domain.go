// internal/catalog/domain.go
package catalog

import (
	"errors"
	"fmt"
	"net/url"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidProduct  = errors.New("invalid product")
)

// Product is an item available to buy. Products are never mutated after they
// are fetched; a new fetch replaces the whole catalog.
type Product struct {
	ID       string  `json:"_id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Cost     float64 `json:"cost"`
	Rating   int     `json:"rating"`
	Image    string  `json:"image"`
}

// Validate checks the invariants a product must hold before it is trusted.
func (p Product) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidProduct)
	}
	if p.Cost < 0 {
		return fmt.Errorf("%w: product %s has negative cost %v", ErrInvalidProduct, p.ID, p.Cost)
	}
	if p.Rating < 0 || p.Rating > 5 {
		return fmt.Errorf("%w: product %s has rating %d outside 0-5", ErrInvalidProduct, p.ID, p.Rating)
	}
	if p.Image != "" {
		if _, err := url.Parse(p.Image); err != nil {
			return fmt.Errorf("%w: product %s image: %v", ErrInvalidProduct, p.ID, err)
		}
	}
	return nil
}

// ValidateAll validates every product, stopping at the first failure.
func ValidateAll(products []Product) error {
	for i := range products {
		if err := products[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}
