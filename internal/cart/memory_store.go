// internal/cart/memory_store.go
package cart

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

type memoryStore struct {
	mu    sync.Mutex
	carts map[uuid.UUID][]Line
}

// NewMemoryStore creates a Store that lives in process memory.
func NewMemoryStore() Store {
	return &memoryStore{carts: make(map[uuid.UUID][]Line)}
}

func (s *memoryStore) Lines(ctx context.Context, userID uuid.UUID) ([]Line, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyLines(s.carts[userID]), nil
}

func (s *memoryStore) Upsert(ctx context.Context, userID uuid.UUID, line Line) ([]Line, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[userID]
	pos := -1
	for i := range lines {
		if lines[i].ProductID == line.ProductID {
			pos = i
			break
		}
	}

	switch {
	case pos >= 0 && line.Qty == 0:
		lines = append(lines[:pos:pos], lines[pos+1:]...)
	case pos >= 0:
		lines[pos].Qty = line.Qty
	case line.Qty > 0:
		lines = append(lines, line)
	}
	s.carts[userID] = lines
	return copyLines(lines), nil
}

func copyLines(lines []Line) []Line {
	out := make([]Line, len(lines))
	copy(out, lines)
	return out
}
