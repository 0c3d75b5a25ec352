package cart

import (
	"context"
	"errors"
	"storefront/internal/apierr"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTransport struct {
	mu      sync.Mutex
	lines   []Line
	err     error
	fetches int
	upserts []Line
}

func (f *fakeTransport) FetchCart(ctx context.Context, token string) ([]Line, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetches++
	if f.err != nil {
		return nil, f.err
	}
	return append([]Line(nil), f.lines...), nil
}

// UpsertLine answers with its configured lines rather than applying the
// change, so tests can check the client adopts the server's cart.
func (f *fakeTransport) UpsertLine(ctx context.Context, token string, line Line) ([]Line, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.upserts = append(f.upserts, line)
	if f.err != nil {
		return nil, f.err
	}
	return append([]Line(nil), f.lines...), nil
}

func (f *fakeTransport) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fetches + len(f.upserts)
}

func TestRequestQuantityChangeRequiresToken(t *testing.T) {
	transport := &fakeTransport{}
	syncer := NewSynchronizer(transport, nil)

	items, err := syncer.RequestQuantityChange(context.Background(), "", nil, testProducts, "p1", 1, Options{PreventDuplicate: true})

	assert.ErrorIs(t, err, ErrAuthRequired)
	assert.Nil(t, items)
	assert.Zero(t, transport.calls())
}

func TestRequestQuantityChangeAuthCheckedBeforeDuplicate(t *testing.T) {
	transport := &fakeTransport{}
	syncer := NewSynchronizer(transport, nil)
	current := MergeCart([]Line{{ProductID: "p1", Qty: 1}}, testProducts)

	_, err := syncer.RequestQuantityChange(context.Background(), "", current, testProducts, "p1", 2, Options{PreventDuplicate: true})

	assert.ErrorIs(t, err, ErrAuthRequired)
	assert.Zero(t, transport.calls())
}

func TestRequestQuantityChangePreventsDuplicate(t *testing.T) {
	transport := &fakeTransport{}
	syncer := NewSynchronizer(transport, nil)
	current := MergeCart([]Line{{ProductID: "p1", Qty: 1}}, testProducts)

	_, err := syncer.RequestQuantityChange(context.Background(), "tok", current, testProducts, "p1", 1, Options{PreventDuplicate: true})

	assert.ErrorIs(t, err, ErrDuplicateItem)
	assert.Zero(t, transport.calls())
}

func TestRequestQuantityChangeAdjustsExistingLine(t *testing.T) {
	transport := &fakeTransport{lines: []Line{{ProductID: "p1", Qty: 2}}}
	syncer := NewSynchronizer(transport, nil)
	current := MergeCart([]Line{{ProductID: "p1", Qty: 1}}, testProducts)

	items, err := syncer.RequestQuantityChange(context.Background(), "tok", current, testProducts, "p1", 2, Options{})

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Qty)
	assert.Equal(t, []Line{{ProductID: "p1", Qty: 2}}, transport.upserts)
	assert.Equal(t, 1, current[0].Qty, "current is left untouched")
}

func TestRequestQuantityChangeAdoptsServerCart(t *testing.T) {
	// The server answers with a cart that differs from what was asked for.
	transport := &fakeTransport{lines: []Line{{ProductID: "p3", Qty: 1}, {ProductID: "p2", Qty: 5}}}
	syncer := NewSynchronizer(transport, nil)

	items, err := syncer.RequestQuantityChange(context.Background(), "tok", nil, testProducts, "p2", 1, Options{PreventDuplicate: true})

	require.NoError(t, err)
	assert.Equal(t, MergeCart(transport.lines, testProducts), items)
}

func TestRequestQuantityChangeZeroRemoves(t *testing.T) {
	transport := &fakeTransport{lines: []Line{}}
	syncer := NewSynchronizer(transport, nil)
	current := MergeCart([]Line{{ProductID: "p1", Qty: 1}}, testProducts)

	items, err := syncer.RequestQuantityChange(context.Background(), "tok", current, testProducts, "p1", 0, Options{})

	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
	assert.Equal(t, []Line{{ProductID: "p1", Qty: 0}}, transport.upserts)
}

func TestRequestQuantityChangeNetworkFailure(t *testing.T) {
	refused := errors.New("connection refused")
	transport := &fakeTransport{err: refused}
	syncer := NewSynchronizer(transport, nil)
	current := MergeCart([]Line{{ProductID: "p1", Qty: 1}}, testProducts)
	before := append([]Item(nil), current...)

	items, err := syncer.RequestQuantityChange(context.Background(), "tok", current, testProducts, "p2", 1, Options{PreventDuplicate: true})

	assert.ErrorIs(t, err, apierr.ErrNetworkFailure)
	assert.ErrorIs(t, err, refused, "cause stays in the chain")
	assert.Nil(t, items)
	assert.Equal(t, before, current)
}

func TestRequestQuantityChangeServerError(t *testing.T) {
	transport := &fakeTransport{err: &apierr.ServerError{Status: 400, Message: "Product doesn't exist"}}
	syncer := NewSynchronizer(transport, nil)

	_, err := syncer.RequestQuantityChange(context.Background(), "tok", nil, testProducts, "nope", 1, Options{})

	se, ok := apierr.AsServerError(err)
	require.True(t, ok)
	assert.Equal(t, "Product doesn't exist", se.Message)
	assert.False(t, errors.Is(err, apierr.ErrNetworkFailure))
}

func TestFetchWithoutTokenIsEmpty(t *testing.T) {
	transport := &fakeTransport{lines: []Line{{ProductID: "p1", Qty: 1}}}
	syncer := NewSynchronizer(transport, nil)

	items, err := syncer.Fetch(context.Background(), "", testProducts)

	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
	assert.Zero(t, transport.calls())
}

func TestFetchMergesServerCart(t *testing.T) {
	transport := &fakeTransport{lines: []Line{{ProductID: "p1", Qty: 2}, {ProductID: "p2", Qty: 1}}}
	syncer := NewSynchronizer(transport, nil)

	items, err := syncer.Fetch(context.Background(), "tok", testProducts)

	require.NoError(t, err)
	assert.Equal(t, 250.0, Total(items))
	assert.Equal(t, 1, transport.fetches)
}

func TestFetchFailure(t *testing.T) {
	transport := &fakeTransport{err: &apierr.ServerError{Status: 401, Message: "Protected route, Oauth2 Bearer token not found"}}
	syncer := NewSynchronizer(transport, nil)

	_, err := syncer.Fetch(context.Background(), "tok", testProducts)

	assert.Equal(t, "Protected route, Oauth2 Bearer token not found", apierr.Message(err))
}
