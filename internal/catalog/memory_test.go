package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededMemory(t *testing.T) Service {
	t.Helper()
	svc := NewMemoryService()
	n, err := Seed(context.Background(), svc)
	require.NoError(t, err)
	require.Greater(t, n, 0)
	return svc
}

func TestMemorySearchMatchesNameOrCategory(t *testing.T) {
	svc := seededMemory(t)
	ctx := context.Background()

	byName, err := svc.Search(ctx, "basket")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "upLK9JbQ4rMhTwt4", byName[0].ID)

	byCategory, err := svc.Search(ctx, "SPORTS")
	require.NoError(t, err)
	assert.Len(t, byCategory, 2)

	none, err := svc.Search(ctx, "no such thing")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestMemoryEmptySearchReturnsAll(t *testing.T) {
	svc := seededMemory(t)
	ctx := context.Background()

	all, err := svc.List(ctx)
	require.NoError(t, err)
	found, err := svc.Search(ctx, "  ")
	require.NoError(t, err)
	assert.Equal(t, all, found)
}

func TestMemoryAddReplacesExisting(t *testing.T) {
	svc := NewMemoryService()
	ctx := context.Background()

	_, err := svc.Add(ctx, Product{ID: "p1", Name: "Old", Cost: 10})
	require.NoError(t, err)
	_, err = svc.Add(ctx, Product{ID: "p2", Name: "Other", Cost: 20})
	require.NoError(t, err)
	_, err = svc.Add(ctx, Product{ID: "p1", Name: "New", Cost: 15})
	require.NoError(t, err)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "New", all[0].Name)
	assert.Equal(t, "p2", all[1].ID)

	_, err = svc.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestMemoryAddRejectsInvalidAndAssignsID(t *testing.T) {
	svc := NewMemoryService()
	ctx := context.Background()

	_, err := svc.Add(ctx, Product{ID: "p1", Cost: -3})
	assert.ErrorIs(t, err, ErrInvalidProduct)

	p, err := svc.Add(ctx, Product{Name: "Generated"})
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
}

func TestListReturnsCopy(t *testing.T) {
	svc := seededMemory(t)
	ctx := context.Background()

	first, err := svc.List(ctx)
	require.NoError(t, err)
	first[0].Name = "mutated"

	second, err := svc.List(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, "mutated", second[0].Name)
}
