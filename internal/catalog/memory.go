// internal/catalog/memory.go
package catalog

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// memoryService keeps the catalog in insertion order. Used by the reference
// server when no database is configured, and by tests.
type memoryService struct {
	mu       sync.RWMutex
	products []Product
	index    map[string]int
}

// NewMemoryService creates an empty in-memory catalog.
func NewMemoryService() Service {
	return &memoryService{index: make(map[string]int)}
}

func (s *memoryService) List(ctx context.Context) ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Product, len(s.products))
	copy(out, s.products)
	return out, nil
}

func (s *memoryService) Search(ctx context.Context, query string) ([]Product, error) {
	q := strings.ToLower(strings.TrimSpace(query))

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Product, 0)
	for _, p := range s.products {
		if matches(p, q) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *memoryService) Get(ctx context.Context, id string) (*Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.index[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrProductNotFound, id)
	}
	p := s.products[i]
	return &p, nil
}

func (s *memoryService) Add(ctx context.Context, p Product) (*Product, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if i, ok := s.index[p.ID]; ok {
		s.products[i] = p
		return &p, nil
	}
	s.index[p.ID] = len(s.products)
	s.products = append(s.products, p)
	return &p, nil
}

// matches reports whether p's name or category contains q. q must already be
// lower-cased; an empty q matches everything.
func matches(p Product, q string) bool {
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.Category), q)
}
