// internal/catalog/seed.go
package catalog

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
)

//go:embed seed.json
var seedJSON []byte

// SeedProducts returns the demo catalog shipped with the reference server.
func SeedProducts() ([]Product, error) {
	var products []Product
	if err := json.Unmarshal(seedJSON, &products); err != nil {
		return nil, fmt.Errorf("decode seed catalog: %w", err)
	}
	if err := ValidateAll(products); err != nil {
		return nil, err
	}
	return products, nil
}

// Seed loads the demo catalog into svc when it is empty and reports how many
// products were added.
func Seed(ctx context.Context, svc Service) (int, error) {
	existing, err := svc.List(ctx)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}

	products, err := SeedProducts()
	if err != nil {
		return 0, err
	}
	for _, p := range products {
		if _, err := svc.Add(ctx, p); err != nil {
			return 0, fmt.Errorf("seed product %s: %w", p.ID, err)
		}
	}
	return len(products), nil
}
