// internal/clients/catalog_client.go
package clients

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"storefront/internal/apierr"
	"storefront/internal/catalog"
	"strings"
)

// CatalogClient loads products from the storefront service.
type CatalogClient struct {
	base
}

func NewCatalogClient(baseURL string, opts Options) *CatalogClient {
	return &CatalogClient{base: newBase(baseURL, "catalog", opts)}
}

// FetchAll returns every product. An empty catalog is not an error.
func (c *CatalogClient) FetchAll(ctx context.Context) ([]catalog.Product, error) {
	var products []catalog.Product
	if err := c.do(ctx, http.MethodGet, "/products", "", nil, &products); err != nil {
		return nil, fmt.Errorf("fetch products: %w", err)
	}
	return checked(products)
}

// Search returns the products matching query. A blank query returns the full
// catalog, and "no products" answers are returned as an empty slice.
func (c *CatalogClient) Search(ctx context.Context, query string) ([]catalog.Product, error) {
	if strings.TrimSpace(query) == "" {
		return c.FetchAll(ctx)
	}

	var products []catalog.Product
	path := "/products/search?value=" + url.QueryEscape(query)
	if err := c.do(ctx, http.MethodGet, path, "", nil, &products); err != nil {
		if isStatus(err, http.StatusNotFound) {
			return []catalog.Product{}, nil
		}
		return nil, fmt.Errorf("search products: %w", err)
	}
	return checked(products)
}

func checked(products []catalog.Product) ([]catalog.Product, error) {
	if products == nil {
		products = []catalog.Product{}
	}
	if err := catalog.ValidateAll(products); err != nil {
		return nil, fmt.Errorf("%w: %w", apierr.ErrNetworkFailure, err)
	}
	return products, nil
}
