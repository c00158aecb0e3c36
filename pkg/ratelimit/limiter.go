package ratelimit

import (
	"sync"

	"golang.org/x/time/rate"
)

// LimiterStore hands out one rate.Limiter per key, creating limiters lazily.
// Keys are never evicted; the key space here is chat ids, which stays small.
type LimiterStore struct {
	mu       sync.Mutex
	r        rate.Limit
	burst    int
	limiters map[string]*rate.Limiter
}

func NewLimiterStore(r rate.Limit, burst int) *LimiterStore {
	return &LimiterStore{
		r:        r,
		burst:    burst,
		limiters: make(map[string]*rate.Limiter),
	}
}

// For returns the limiter for key, creating it on first use.
func (s *LimiterStore) For(key string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	limiter, ok := s.limiters[key]
	if !ok {
		limiter = rate.NewLimiter(s.r, s.burst)
		s.limiters[key] = limiter
	}
	return limiter
}

// Len reports how many keys currently hold a limiter.
func (s *LimiterStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.limiters)
}
