package membership

import (
	"context"
	"storefront/internal/eventstore"
	"storefront/internal/storage/storagetest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func testRegisterAndAuthenticate(t *testing.T, repo Repository) {
	t.Helper()
	svc := NewService(repo, nil)
	ctx := context.Background()

	user, err := svc.Register(ctx, "crio.do", "learnbydoing")
	require.NoError(t, err)
	assert.Equal(t, "crio.do", user.Username)

	_, err = svc.Register(ctx, "crio.do", "another-password")
	assert.ErrorIs(t, err, ErrUsernameTaken)

	authed, err := svc.Authenticate(ctx, "crio.do", "learnbydoing")
	require.NoError(t, err)
	assert.Equal(t, user.ID, authed.ID)

	_, err = svc.Authenticate(ctx, "crio.do", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate(ctx, "nobody-here", "learnbydoing")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestMemoryService(t *testing.T) {
	testRegisterAndAuthenticate(t, NewMemoryRepository())
}

func TestPostgresService(t *testing.T) {
	db := storagetest.Open(t)
	es := eventstore.NewEventStore(db)
	repo := NewPostgresRepository(db, es)

	testRegisterAndAuthenticate(t, repo)

	user, _, err := repo.ByUsername(context.Background(), "crio.do")
	require.NoError(t, err)
	events, err := es.Load(context.Background(), user.ID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "UserRegistered", events[0].EventType)
}

func TestRegisterValidation(t *testing.T) {
	svc := NewService(NewMemoryRepository(), nil)
	ctx := context.Background()

	_, err := svc.Register(ctx, "short", "longenough")
	assert.ErrorIs(t, err, ErrInvalidSignup)

	_, err = svc.Register(ctx, "longenough", "short")
	assert.ErrorIs(t, err, ErrInvalidSignup)
}

func TestRateLimiting(t *testing.T) {
	svc := NewService(NewMemoryRepository(), rate.NewLimiter(rate.Limit(0), 1))
	ctx := context.Background()

	_, err := svc.Register(ctx, "first-user", "password")
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, "first-user", "password")
	assert.ErrorIs(t, err, ErrRateLimited)
}
