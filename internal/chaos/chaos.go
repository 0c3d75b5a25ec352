// internal/chaos/chaos.go
package chaos

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// ErrInjectedFailure is returned for requests a Fault chose to fail.
var ErrInjectedFailure = errors.New("chaos: injected failure")

// Fault describes what to inject into matching requests.
type Fault struct {
	Latency     time.Duration
	Jitter      time.Duration
	FailureRate float64 // 0.0 to 1.0
	// Match limits the fault to some requests. Nil matches every request.
	Match func(*http.Request) bool
}

// Stats counts what a Transport has done.
type Stats struct {
	Requests int64
	Delayed  int64
	Failed   int64
}

// Transport is an http.RoundTripper that delays or fails requests before
// handing them to the wrapped transport.
type Transport struct {
	next   http.RoundTripper
	tracer trace.Tracer

	mu    sync.Mutex
	fault Fault
	rng   *rand.Rand
	sleep func(context.Context, time.Duration) error

	requests atomic.Int64
	delayed  atomic.Int64
	failed   atomic.Int64
}

// NewTransport wraps next (http.DefaultTransport when nil) with fault.
func NewTransport(next http.RoundTripper, fault Fault) *Transport {
	if next == nil {
		next = http.DefaultTransport
	}
	return &Transport{
		next:   next,
		tracer: otel.Tracer("storefront/chaos"),
		fault:  fault,
		rng:    rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0)),
		sleep:  sleepContext,
	}
}

// SetFault replaces the injected fault. The zero Fault turns injection off.
func (t *Transport) SetFault(fault Fault) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.fault = fault
}

// Stats returns the counters accumulated so far.
func (t *Transport) Stats() Stats {
	return Stats{
		Requests: t.requests.Load(),
		Delayed:  t.delayed.Load(),
		Failed:   t.failed.Load(),
	}
}

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	t.requests.Add(1)

	t.mu.Lock()
	fault := t.fault
	var delay time.Duration
	var fail bool
	if fault.Match == nil || fault.Match(req) {
		delay = fault.Latency
		if fault.Jitter > 0 {
			delay += time.Duration(t.rng.Int64N(int64(fault.Jitter)))
		}
		fail = fault.FailureRate > 0 && t.rng.Float64() < fault.FailureRate
	}
	t.mu.Unlock()

	if delay == 0 && !fail {
		return t.next.RoundTrip(req)
	}

	ctx, span := t.tracer.Start(req.Context(), "chaos.inject",
		trace.WithAttributes(
			attribute.String("http.url", req.URL.String()),
			attribute.Int64("chaos.latency_ms", delay.Milliseconds()),
			attribute.Bool("chaos.fail", fail),
		),
	)
	defer span.End()

	if delay > 0 {
		t.delayed.Add(1)
		if err := t.sleep(ctx, delay); err != nil {
			return nil, err
		}
	}
	if fail {
		t.failed.Add(1)
		span.RecordError(ErrInjectedFailure)
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, ErrInjectedFailure)
	}
	return t.next.RoundTrip(req)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
