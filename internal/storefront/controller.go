// internal/storefront/controller.go

// Package storefront is the page-level controller: it owns the catalog and
// cart snapshots and turns user actions into calls on the core components.
package storefront

import (
	"context"
	"errors"
	"fmt"
	"storefront/internal/cart"
	"storefront/internal/catalog"
	"storefront/internal/search"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// CatalogLoader fetches products from the storefront service.
type CatalogLoader interface {
	FetchAll(ctx context.Context) ([]catalog.Product, error)
	Search(ctx context.Context, query string) ([]catalog.Product, error)
}

// Config wires a Controller to its collaborators. Token may be empty, in
// which case the cart stays empty and cart actions fail with
// cart.ErrAuthRequired.
type Config struct {
	Catalog     CatalogLoader
	Cart        cart.Transport
	Token       string
	SearchDelay time.Duration
	Logger      *zap.Logger
	// OnCatalog is called after search results replace the displayed
	// catalog.
	OnCatalog func([]catalog.Product)
	// OnSearchError is called when a debounced search fails. Stale responses
	// are dropped without a call.
	OnSearchError func(query string, err error)
}

// Controller holds the page state. Snapshots are replaced whole, so readers
// never observe a partial update.
type Controller struct {
	loader    CatalogLoader
	sync      *cart.Synchronizer
	debouncer *search.Debouncer
	token     string
	logger    *zap.Logger

	onCatalog     func([]catalog.Product)
	onSearchError func(string, error)

	// products is the full catalog used to enrich cart lines; displayed is
	// what the latest search returned.
	products  atomic.Pointer[[]catalog.Product]
	displayed atomic.Pointer[[]catalog.Product]
	items     atomic.Pointer[[]cart.Item]
}

// New creates a Controller with empty snapshots. Call Load to fill them and
// Close to stop the search debouncer.
func New(cfg Config) *Controller {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	c := &Controller{
		loader:        cfg.Catalog,
		sync:          cart.NewSynchronizer(cfg.Cart, logger),
		token:         cfg.Token,
		logger:        logger,
		onCatalog:     cfg.OnCatalog,
		onSearchError: cfg.OnSearchError,
	}
	empty := []catalog.Product{}
	c.products.Store(&empty)
	c.displayed.Store(&empty)
	noItems := []cart.Item{}
	c.items.Store(&noItems)

	c.debouncer = search.New(cfg.Catalog, search.Config{
		Delay:   cfg.SearchDelay,
		Apply:   c.applySearch,
		OnError: c.searchFailed,
		Logger:  logger,
	})
	return c
}

// Load fetches the catalog and the cart concurrently, then merges them. A
// failed catalog fetch leaves the catalog empty; a failed cart fetch leaves
// the cart as it was. The first error is returned.
func (c *Controller) Load(ctx context.Context) error {
	var (
		products []catalog.Product
		lines    []cart.Line
		cartErr  error
	)

	var g errgroup.Group
	g.Go(func() error {
		var err error
		products, err = c.loader.FetchAll(ctx)
		if err != nil {
			products = []catalog.Product{}
			return fmt.Errorf("load products: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		lines, cartErr = c.sync.FetchLines(ctx, c.token)
		return cartErr
	})
	err := g.Wait()

	c.products.Store(&products)
	c.displayed.Store(&products)
	if cartErr == nil {
		items := cart.MergeCart(lines, products)
		c.items.Store(&items)
	}
	c.logger.Debug("storefront loaded",
		zap.Int("products", len(products)),
		zap.Int("cart_lines", len(lines)),
		zap.Error(err),
	)
	return err
}

// OnSearchInput schedules a debounced search for text.
func (c *Controller) OnSearchInput(text string) uint64 {
	return c.debouncer.Schedule(text)
}

// FlushSearch runs a pending search now.
func (c *Controller) FlushSearch() bool {
	return c.debouncer.Flush()
}

// AddToCart adds one of productID. A product already in the cart is refused
// with cart.ErrDuplicateItem.
func (c *Controller) AddToCart(ctx context.Context, productID string) error {
	return c.change(ctx, productID, 1, cart.Options{PreventDuplicate: true})
}

// Increment raises productID's quantity by one.
func (c *Controller) Increment(ctx context.Context, productID string) error {
	return c.change(ctx, productID, c.quantity(productID)+1, cart.Options{})
}

// Decrement lowers productID's quantity by one, removing the line at zero.
func (c *Controller) Decrement(ctx context.Context, productID string) error {
	return c.change(ctx, productID, max(c.quantity(productID)-1, 0), cart.Options{})
}

// SetQuantity sets productID's quantity to qty. Zero removes the line.
func (c *Controller) SetQuantity(ctx context.Context, productID string, qty int) error {
	if qty < 0 {
		return cart.ErrInvalidQuantity
	}
	return c.change(ctx, productID, qty, cart.Options{})
}

// Remove deletes productID's line.
func (c *Controller) Remove(ctx context.Context, productID string) error {
	return c.change(ctx, productID, 0, cart.Options{})
}

// Catalog returns the products currently displayed.
func (c *Controller) Catalog() []catalog.Product {
	return *c.displayed.Load()
}

// Cart returns the current cart items.
func (c *Controller) Cart() []cart.Item {
	return *c.items.Load()
}

// Summary returns the order details of the current cart.
func (c *Controller) Summary() cart.Summary {
	return cart.Summarize(c.Cart())
}

// LoggedIn reports whether the controller has a token to act with.
func (c *Controller) LoggedIn() bool {
	return c.token != ""
}

// Close stops the search debouncer, waiting for a search in flight.
func (c *Controller) Close() {
	c.debouncer.Close()
}

// change sends a quantity change. Responses are not ordered: whichever
// arrives last becomes the cart.
func (c *Controller) change(ctx context.Context, productID string, qty int, opts cart.Options) error {
	items, err := c.sync.RequestQuantityChange(ctx, c.token, c.Cart(), *c.products.Load(), productID, qty, opts)
	if err != nil {
		return err
	}
	c.items.Store(&items)
	return nil
}

func (c *Controller) quantity(productID string) int {
	for _, item := range c.Cart() {
		if item.ProductID == productID {
			return item.Qty
		}
	}
	return 0
}

func (c *Controller) applySearch(seq uint64, products []catalog.Product) {
	c.displayed.Store(&products)
	if c.onCatalog != nil {
		c.onCatalog(products)
	}
}

func (c *Controller) searchFailed(seq uint64, query string, err error) {
	if errors.Is(err, search.ErrStale) {
		return
	}
	if c.onSearchError != nil {
		c.onSearchError(query, err)
	}
}
