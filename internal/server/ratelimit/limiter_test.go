package ratelimit

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLimiter(limits map[string]int64, defaultLimit int64) (*Limiter, *MemoryStore) {
	store := NewMemoryStore()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	return New(store, DefaultWindow, defaultLimit, limits), store
}

func TestLimiter_CeilingEnforced(t *testing.T) {
	t.Parallel()

	l, _ := newTestLimiter(map[string]int64{"register": 5}, 100)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		ok, err := l.Allow(ctx, "register", "10.0.0.1")
		require.NoError(t, err)
		require.True(t, ok, "request %d should be allowed", i+1)
	}

	ok, err := l.Allow(ctx, "register", "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, ok, "request over the ceiling must be rejected")
}

func TestLimiter_NextWindowAdmits(t *testing.T) {
	t.Parallel()

	l, store := newTestLimiter(map[string]int64{"login": 2}, 100)
	ctx := context.Background()

	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	current := base
	store.now = func() time.Time { return current }

	for i := 0; i < 2; i++ {
		ok, err := l.Allow(ctx, "login", "c1")
		require.NoError(t, err)
		require.True(t, ok)
	}
	ok, err := l.Allow(ctx, "login", "c1")
	require.NoError(t, err)
	require.False(t, ok)

	current = base.Add(DefaultWindow)

	ok, err = l.Allow(ctx, "login", "c1")
	require.NoError(t, err)
	assert.True(t, ok, "first request of the next window must be admitted")
}

func TestLimiter_ClientsAndRoutesIsolated(t *testing.T) {
	t.Parallel()

	l, _ := newTestLimiter(map[string]int64{"register": 1}, 100)
	ctx := context.Background()

	ok, err := l.Allow(ctx, "register", "c1")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = l.Allow(ctx, "register", "c1")
	require.NoError(t, err)
	require.False(t, ok, "second hit from the same client exceeds ceiling 1")

	ok, err = l.Allow(ctx, "register", "c2")
	require.NoError(t, err)
	assert.True(t, ok, "another client is counted separately")

	ok, err = l.Allow(ctx, "tasks:read", "c1")
	require.NoError(t, err)
	assert.True(t, ok, "another route is counted separately")
}

func TestLimiter_DefaultCeilingForUnlistedRoute(t *testing.T) {
	t.Parallel()

	l, _ := newTestLimiter(map[string]int64{"register": 5}, 2)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		ok, err := l.Allow(ctx, "unlisted", "c1")
		require.NoError(t, err)
		require.True(t, ok)
	}
	ok, err := l.Allow(ctx, "unlisted", "c1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStore_ConcurrentIncrements(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	ctx := context.Background()

	const goroutines = 50
	const hitsEach = 20

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < hitsEach; j++ {
				_, err := store.Incr(ctx, "k", DefaultWindow)
				if err != nil {
					t.Error(err)
					return
				}
			}
		}()
	}
	wg.Wait()

	count, err := store.Incr(ctx, "k", DefaultWindow)
	require.NoError(t, err)
	assert.Equal(t, int64(goroutines*hitsEach+1), count, "no hit may be lost under concurrency")
}

type failingStore struct{}

func (failingStore) Incr(context.Context, string, time.Duration) (int64, error) {
	return 0, errors.New("store down")
}

func TestLimiter_StoreErrorSurfaced(t *testing.T) {
	t.Parallel()

	l := New(failingStore{}, DefaultWindow, 100, nil)

	_, err := l.Allow(context.Background(), "register", "c1")
	assert.Error(t, err, "the caller decides whether to fail open")
}
