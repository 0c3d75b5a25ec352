// internal/search/debouncer.go

// Package search turns a stream of keystrokes into a bounded stream of
// catalog queries.
package search

import (
	"context"
	"errors"
	"storefront/internal/catalog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// DefaultDelay is the quiet period after the last keystroke before a query
// is sent.
const DefaultDelay = 500 * time.Millisecond

// ErrStale is reported for a response that arrived after a newer one was
// already applied. Stale responses are never applied.
var ErrStale = errors.New("search: stale response discarded")

// Searcher runs a catalog query.
type Searcher interface {
	Search(ctx context.Context, query string) ([]catalog.Product, error)
}

// Timer is the part of *time.Timer the debouncer uses.
type Timer interface {
	Stop() bool
}

// Config configures a Debouncer. Apply and OnError are called one at a time,
// in the order responses are accepted, and must not call back into the
// Debouncer.
type Config struct {
	Delay   time.Duration
	Apply   func(seq uint64, products []catalog.Product)
	OnError func(seq uint64, query string, err error)
	Logger  *zap.Logger
	// AfterFunc defaults to time.AfterFunc.
	AfterFunc func(d time.Duration, f func()) Timer
}

// Debouncer delays each scheduled query and runs only the latest one. Every
// scheduled query gets a sequence number, and a response older than the last
// applied one is discarded.
type Debouncer struct {
	searcher  Searcher
	delay     time.Duration
	apply     func(uint64, []catalog.Product)
	onError   func(uint64, string, error)
	afterFunc func(time.Duration, func()) Timer
	logger    *zap.Logger
	tracer    trace.Tracer

	wg sync.WaitGroup

	mu      sync.Mutex
	pending Timer
	query   string
	seq     uint64
	closed  bool

	applyMu sync.Mutex
	applied uint64
}

// New creates a Debouncer running queries on searcher.
func New(searcher Searcher, cfg Config) *Debouncer {
	if cfg.Delay <= 0 {
		cfg.Delay = DefaultDelay
	}
	if cfg.Apply == nil {
		cfg.Apply = func(uint64, []catalog.Product) {}
	}
	if cfg.OnError == nil {
		cfg.OnError = func(uint64, string, error) {}
	}
	if cfg.AfterFunc == nil {
		cfg.AfterFunc = func(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	return &Debouncer{
		searcher:  searcher,
		delay:     cfg.Delay,
		apply:     cfg.Apply,
		onError:   cfg.OnError,
		afterFunc: cfg.AfterFunc,
		logger:    cfg.Logger,
		tracer:    otel.Tracer("storefront/search"),
	}
}

// Schedule cancels any pending query and schedules query to run after the
// delay. It returns the sequence number assigned to query, or 0 once the
// Debouncer is closed.
func (d *Debouncer) Schedule(query string) uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return 0
	}
	if d.pending != nil {
		d.pending.Stop()
	}
	d.seq++
	seq := d.seq
	d.query = query
	d.pending = d.afterFunc(d.delay, func() { d.fire(seq) })
	return seq
}

// Cancel drops the pending query, if any. It is safe to call at any time.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.pending != nil {
		d.pending.Stop()
		d.pending = nil
	}
}

// Pending reports whether a query is waiting for its delay to pass.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending != nil
}

// Flush runs the pending query now and waits for it to finish. It reports
// whether there was a query to run.
func (d *Debouncer) Flush() bool {
	d.mu.Lock()
	if d.closed || d.pending == nil {
		d.mu.Unlock()
		return false
	}
	d.pending.Stop()
	seq, query := d.take()
	d.mu.Unlock()

	defer d.wg.Done()
	d.run(seq, query)
	return true
}

// Close drops the pending query and waits for queries in flight to return.
// Their responses are dropped without reaching Apply or OnError.
func (d *Debouncer) Close() {
	d.mu.Lock()
	d.closed = true
	if d.pending != nil {
		d.pending.Stop()
		d.pending = nil
	}
	d.mu.Unlock()

	d.wg.Wait()
}

func (d *Debouncer) fire(seq uint64) {
	d.mu.Lock()
	// A timer that fired while being replaced or cancelled must not run.
	if d.closed || d.pending == nil || seq != d.seq {
		d.mu.Unlock()
		return
	}
	seq, query := d.take()
	d.mu.Unlock()

	defer d.wg.Done()
	d.run(seq, query)
}

// take clears the pending query and registers the run. d.mu must be held.
func (d *Debouncer) take() (uint64, string) {
	d.pending = nil
	d.wg.Add(1)
	return d.seq, d.query
}

func (d *Debouncer) run(seq uint64, query string) {
	ctx, span := d.tracer.Start(context.Background(), "search.query",
		trace.WithAttributes(
			attribute.Int64("search.seq", int64(seq)),
			attribute.String("search.query", query),
		),
	)
	defer span.End()

	products, err := d.searcher.Search(ctx, query)

	d.applyMu.Lock()
	defer d.applyMu.Unlock()

	if d.isClosed() {
		span.SetAttributes(attribute.Bool("search.dropped", true))
		return
	}
	if seq <= d.applied {
		d.logger.Debug("discarding stale search response",
			zap.Uint64("seq", seq),
			zap.Uint64("applied", d.applied),
			zap.String("query", query),
		)
		span.SetAttributes(attribute.Bool("search.stale", true))
		d.onError(seq, query, ErrStale)
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "search failed")
		d.logger.Warn("search failed", zap.String("query", query), zap.Error(err))
		// A failed newer query still supersedes older ones in flight.
		d.applied = seq
		d.onError(seq, query, err)
		return
	}

	d.applied = seq
	span.SetAttributes(attribute.Int("search.results", len(products)))
	d.apply(seq, products)
}

func (d *Debouncer) isClosed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.closed
}
