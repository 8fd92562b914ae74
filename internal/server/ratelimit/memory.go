package ratelimit

import (
	"context"
	"sync"
	"time"
)

// sweepThreshold bounds the window map: once it grows past this size, expired
// windows are dropped on the next Incr.
const sweepThreshold = 10000

type window struct {
	start time.Time
	count int64
}

// MemoryStore keeps fixed-window counters in process memory. Counters are not
// shared across processes, which is acceptable for a single-instance
// deployment; use RedisStore otherwise.
type MemoryStore struct {
	mu      sync.Mutex
	windows map[string]*window
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		windows: make(map[string]*window),
		now:     time.Now,
	}
}

// Incr counts a hit for key, resetting the window when windowDur has elapsed
// since its start. The increment-and-compare is done under the store lock so
// concurrent hits from the same client cannot undercount.
func (s *MemoryStore) Incr(_ context.Context, key string, windowDur time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()

	if len(s.windows) > sweepThreshold {
		s.sweep(now, windowDur)
	}

	w, ok := s.windows[key]
	if !ok || now.Sub(w.start) >= windowDur {
		w = &window{start: now}
		s.windows[key] = w
	}

	w.count++
	return w.count, nil
}

// sweep drops windows that ended before now. Caller must hold the lock.
func (s *MemoryStore) sweep(now time.Time, windowDur time.Duration) {
	for key, w := range s.windows {
		if now.Sub(w.start) >= windowDur {
			delete(s.windows, key)
		}
	}
}
