// internal/cart/synchronizer.go
package cart

import (
	"context"
	"errors"
	"fmt"
	"storefront/internal/apierr"
	"storefront/internal/catalog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Transport reaches the remote cart service. Implementations return
// apierr.ErrNetworkFailure or *apierr.ServerError on failure.
type Transport interface {
	FetchCart(ctx context.Context, token string) ([]Line, error)
	UpsertLine(ctx context.Context, token string, line Line) ([]Line, error)
}

// Synchronizer drives cart changes against the remote service and merges
// every confirmed cart with the catalog. It holds no cart state of its own.
type Synchronizer struct {
	transport Transport
	logger    *zap.Logger
	tracer    trace.Tracer
	changes   metric.Int64Counter
}

// NewSynchronizer creates a Synchronizer on transport.
func NewSynchronizer(transport Transport, logger *zap.Logger) *Synchronizer {
	if logger == nil {
		logger = zap.NewNop()
	}

	changes, err := otel.Meter("storefront/cart").Int64Counter(
		"cart.quantity_changes",
		metric.WithDescription("Quantity change requests by outcome"),
	)
	if err != nil {
		logger.Warn("cart metrics disabled", zap.Error(err))
		changes = noop.Int64Counter{}
	}

	return &Synchronizer{
		transport: transport,
		logger:    logger,
		tracer:    otel.Tracer("storefront/cart"),
		changes:   changes,
	}
}

// FetchLines returns the server cart. Without a token the cart is empty and no
// request is made.
func (s *Synchronizer) FetchLines(ctx context.Context, token string) ([]Line, error) {
	if token == "" {
		return []Line{}, nil
	}

	ctx, span := s.tracer.Start(ctx, "cart.fetch")
	defer span.End()

	lines, err := s.transport.FetchCart(ctx, token)
	if err != nil {
		err = classify(err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "fetch failed")
		s.logger.Warn("fetch cart failed", zap.Error(err))
		return nil, fmt.Errorf("fetch cart: %w", err)
	}
	span.SetAttributes(attribute.Int("cart.lines", len(lines)))
	return lines, nil
}

// Fetch returns the server cart merged with products.
func (s *Synchronizer) Fetch(ctx context.Context, token string, products []catalog.Product) ([]Item, error) {
	lines, err := s.FetchLines(ctx, token)
	if err != nil {
		return nil, err
	}
	return MergeCart(lines, products), nil
}

// RequestQuantityChange asks the service to set productID's quantity to qty
// (0 removes the line) and returns the service's cart merged with products.
//
// Checks run in order: a missing token fails with ErrAuthRequired, then
// opts.PreventDuplicate with productID already in current fails with
// ErrDuplicateItem. Neither makes a request. current is never modified; on
// any error the caller keeps what it had.
func (s *Synchronizer) RequestQuantityChange(ctx context.Context, token string, current []Item, products []catalog.Product, productID string, qty int, opts Options) ([]Item, error) {
	ctx, span := s.tracer.Start(ctx, "cart.request_quantity_change",
		trace.WithAttributes(
			attribute.String("product.id", productID),
			attribute.Int("cart.qty", qty),
			attribute.Bool("cart.prevent_duplicate", opts.PreventDuplicate),
		),
	)
	defer span.End()

	if token == "" {
		s.record(ctx, "auth_required")
		return nil, ErrAuthRequired
	}
	if opts.PreventDuplicate && InCart(current, productID) {
		s.record(ctx, "duplicate")
		return nil, ErrDuplicateItem
	}

	lines, err := s.transport.UpsertLine(ctx, token, Line{ProductID: productID, Qty: qty})
	if err != nil {
		err = classify(err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "upsert failed")
		if _, ok := apierr.AsServerError(err); ok {
			s.record(ctx, "server_error")
		} else {
			s.record(ctx, "network_failure")
		}
		s.logger.Warn("cart update rejected",
			zap.String("product_id", productID),
			zap.Int("qty", qty),
			zap.Error(err),
		)
		return nil, fmt.Errorf("update cart: %w", err)
	}

	s.record(ctx, "ok")
	items := MergeCart(lines, products)
	s.logger.Debug("cart updated",
		zap.String("product_id", productID),
		zap.Int("qty", qty),
		zap.Int("lines", len(lines)),
	)
	return items, nil
}

func (s *Synchronizer) record(ctx context.Context, outcome string) {
	s.changes.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

// classify keeps declared server errors and network failures as they are and
// treats anything else from the transport as a network failure.
func classify(err error) error {
	if _, ok := apierr.AsServerError(err); ok {
		return err
	}
	if errors.Is(err, apierr.ErrNetworkFailure) {
		return err
	}
	return fmt.Errorf("%w: %w", apierr.ErrNetworkFailure, err)
}
