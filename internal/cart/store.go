// internal/cart/store.go
package cart

import (
	"context"

	"github.com/google/uuid"
)

// Store holds each user's lines on the service side. Upsert sets a line's
// quantity, removing it at 0, and returns the complete cart in the order
// products were first added.
type Store interface {
	Lines(ctx context.Context, userID uuid.UUID) ([]Line, error)
	Upsert(ctx context.Context, userID uuid.UUID, line Line) ([]Line, error)
}
