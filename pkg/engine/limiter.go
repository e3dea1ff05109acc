package engine

import (
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

const DefaultLimiterIdleTTL = 30 * time.Minute

type tankLimiter struct {
	limiter *rate.Limiter
	pinned  bool
}

// RateLimiterStore manages per-tank ingestion limiters: tank_id -> rate limiter.
// Default limiters expire after sitting idle, overrides set for a tank are kept until
// the tank is forgotten.
type RateLimiterStore struct {
	limiters     *cache.Cache
	mu           sync.Mutex
	defaultRate  rate.Limit
	defaultBurst int
}

func NewRateLimiterStore(defaultRate rate.Limit, defaultBurst int) *RateLimiterStore {
	return NewRateLimiterStoreWithIdleTTL(defaultRate, defaultBurst, DefaultLimiterIdleTTL)
}

func NewRateLimiterStoreWithIdleTTL(defaultRate rate.Limit, defaultBurst int, idle time.Duration) *RateLimiterStore {
	return &RateLimiterStore{
		limiters:     cache.New(idle, 2*idle),
		defaultRate:  defaultRate,
		defaultBurst: defaultBurst,
	}
}

func (s *RateLimiterStore) GetLimiter(tankID string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cached, found := s.limiters.Get(tankID); found {
		tl := cached.(tankLimiter)
		if !tl.pinned {
			// touch
			s.limiters.Set(tankID, tl, cache.DefaultExpiration)
		}
		return tl.limiter
	}

	limiter := rate.NewLimiter(s.defaultRate, s.defaultBurst)
	s.limiters.Set(tankID, tankLimiter{limiter: limiter}, cache.DefaultExpiration)
	return limiter
}

func (s *RateLimiterStore) SetLimiter(tankID string, tankRate rate.Limit, tankBurst int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.limiters.Set(tankID, tankLimiter{limiter: rate.NewLimiter(tankRate, tankBurst), pinned: true}, cache.NoExpiration)
}

// Forget drops a tank's limiter so the next request starts from the defaults.
func (s *RateLimiterStore) Forget(tankID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.limiters.Delete(tankID)
}

func (s *RateLimiterStore) Len() int {
	return s.limiters.ItemCount()
}
