// internal/catalog/service.go
package catalog

import "context"

// Service defines the interface for the catalog service.
type Service interface {
	List(ctx context.Context) ([]Product, error)
	Search(ctx context.Context, query string) ([]Product, error)
	Get(ctx context.Context, id string) (*Product, error)
	Add(ctx context.Context, p Product) (*Product, error)
}
