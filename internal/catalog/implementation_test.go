package catalog

import (
	"context"
	"storefront/internal/storage/storagetest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresServiceRoundTrip(t *testing.T) {
	db := storagetest.Open(t)
	svc := NewPostgresService(db)
	ctx := context.Background()

	n, err := Seed(ctx, svc)
	require.NoError(t, err)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, n)

	seed, err := SeedProducts()
	require.NoError(t, err)
	assert.Equal(t, seed, all, "list keeps insertion order")

	found, err := svc.Search(ctx, "sports")
	require.NoError(t, err)
	assert.Len(t, found, 2)

	p, err := svc.Get(ctx, "v4sLtEcMpzabRyfx")
	require.NoError(t, err)
	assert.Equal(t, "iPhone XR", p.Name)

	_, err = svc.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrProductNotFound)

	again, err := Seed(ctx, svc)
	require.NoError(t, err)
	assert.Zero(t, again, "seeding a populated catalog is a no-op")
}
