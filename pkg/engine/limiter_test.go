package engine

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiterStore_Defaults(t *testing.T) {
	store := NewRateLimiterStore(1, 2)

	limiter := store.GetLimiter("tank-1")
	require.NotNil(t, limiter)
	assert.EqualValues(t, 1, limiter.Limit())
	assert.Equal(t, 2, limiter.Burst())
}

func TestRateLimiterStore_CustomLimit(t *testing.T) {
	store := NewRateLimiterStore(1, 2)

	store.SetLimiter("tank-2", 5, 10)
	limiter := store.GetLimiter("tank-2")

	assert.EqualValues(t, 5, limiter.Limit())
	assert.Equal(t, 10, limiter.Burst())

	store.Forget("tank-2")
	assert.EqualValues(t, 1, store.GetLimiter("tank-2").Limit())
}

func TestRateLimiterStore_Concurrency(t *testing.T) {
	store := NewRateLimiterStore(10, 5)
	tankID := uuid.NewString()

	var wg sync.WaitGroup
	seen := make(chan any, 100)
	for range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			seen <- store.GetLimiter(tankID)
		}()
	}
	wg.Wait()
	close(seen)

	first := store.GetLimiter(tankID)
	for l := range seen {
		assert.Same(t, first, l)
	}
}

func TestRateLimiterStore_Enforcement(t *testing.T) {
	store := NewRateLimiterStore(2, 2)
	limiter := store.GetLimiter(uuid.NewString())

	require.True(t, limiter.Allow())
	require.True(t, limiter.Allow())
	assert.False(t, limiter.Allow(), "third call within the burst window is limited")

	time.Sleep(600 * time.Millisecond)
	assert.True(t, limiter.Allow(), "one token refilled")
}

func TestRateLimiterStore_IdleLimitersExpire(t *testing.T) {
	store := NewRateLimiterStoreWithIdleTTL(1, 1, 50*time.Millisecond)

	store.SetLimiter("tuned", 5, 10)
	idle := store.GetLimiter("idle")
	require.False(t, idle.Allow() && idle.Allow(), "burst of one is spent")

	time.Sleep(120 * time.Millisecond)

	assert.NotSame(t, idle, store.GetLimiter("idle"), "idle default limiter starts over")
	assert.EqualValues(t, 5, store.GetLimiter("tuned").Limit(), "overrides do not expire")
}
