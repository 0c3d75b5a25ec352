// internal/cart/service.go
package cart

import (
	"context"
	"errors"
	"fmt"
	"storefront/internal/catalog"

	"github.com/google/uuid"
)

// Service applies the service-side cart rules before touching the store.
type Service struct {
	store    Store
	products catalog.Service
}

// NewService creates a cart service that checks products against products.
func NewService(store Store, products catalog.Service) *Service {
	return &Service{store: store, products: products}
}

// Lines returns the user's cart.
func (s *Service) Lines(ctx context.Context, userID uuid.UUID) ([]Line, error) {
	return s.store.Lines(ctx, userID)
}

// Upsert validates line and stores it, returning the complete cart.
func (s *Service) Upsert(ctx context.Context, userID uuid.UUID, line Line) ([]Line, error) {
	if line.ProductID == "" {
		return nil, fmt.Errorf("%w: missing productId", ErrUnknownProduct)
	}
	if line.Qty < 0 {
		return nil, ErrInvalidQuantity
	}
	if _, err := s.products.Get(ctx, line.ProductID); err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			return nil, ErrUnknownProduct
		}
		return nil, fmt.Errorf("look up product: %w", err)
	}
	return s.store.Upsert(ctx, userID, line)
}
