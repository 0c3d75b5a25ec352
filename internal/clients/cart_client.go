// internal/clients/cart_client.go
package clients

import (
	"context"
	"fmt"
	"net/http"
	"storefront/internal/apierr"
	"storefront/internal/cart"
)

// CartClient talks to the cart endpoints of the storefront service. It
// satisfies cart.Transport.
type CartClient struct {
	base
}

var _ cart.Transport = (*CartClient)(nil)

func NewCartClient(baseURL string, opts Options) *CartClient {
	return &CartClient{base: newBase(baseURL, "cart", opts)}
}

// FetchCart returns the lines of the cart owned by token.
func (c *CartClient) FetchCart(ctx context.Context, token string) ([]cart.Line, error) {
	var lines []cart.Line
	if err := c.do(ctx, http.MethodGet, "/cart", token, nil, &lines); err != nil {
		return nil, fmt.Errorf("get cart: %w", err)
	}
	return normalize(lines)
}

// UpsertLine sets one line's quantity and returns the whole cart.
func (c *CartClient) UpsertLine(ctx context.Context, token string, line cart.Line) ([]cart.Line, error) {
	var lines []cart.Line
	if err := c.do(ctx, http.MethodPost, "/cart", token, line, &lines); err != nil {
		return nil, fmt.Errorf("post cart: %w", err)
	}
	return normalize(lines)
}

func normalize(lines []cart.Line) ([]cart.Line, error) {
	lines, err := cart.Normalize(lines)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apierr.ErrNetworkFailure, err)
	}
	return lines, nil
}
