// Package ratelimit bounds request counts per (route, client) pair within a
// trailing fixed window. The counter store is pluggable: process-local memory
// for single-instance deployments, Redis when counters must be shared.
package ratelimit

import (
	"context"
	"fmt"
	"time"
)

// DefaultWindow is the interval over which route ceilings apply.
const DefaultWindow = time.Minute

// Store counts hits for a key within a fixed window. Incr returns the number
// of hits recorded for the key's current window, including this one.
type Store interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
}

// Limiter applies per-route ceilings to clients. A route not present in the
// limits table gets the default ceiling.
type Limiter struct {
	store        Store
	window       time.Duration
	defaultLimit int64
	limits       map[string]int64
}

// New builds a Limiter over the given store. limits maps route keys to their
// ceilings per window; nil means every route uses defaultLimit.
func New(store Store, window time.Duration, defaultLimit int64, limits map[string]int64) *Limiter {
	return &Limiter{
		store:        store,
		window:       window,
		defaultLimit: defaultLimit,
		limits:       limits,
	}
}

// Allow records a hit for the (routeKey, clientKey) pair and reports whether
// it is still within the route's ceiling. A store failure is returned to the
// caller; the caller decides whether to fail open.
func (l *Limiter) Allow(ctx context.Context, routeKey, clientKey string) (bool, error) {
	limit := l.defaultLimit
	if v, ok := l.limits[routeKey]; ok {
		limit = v
	}

	count, err := l.store.Incr(ctx, fmt.Sprintf("ratelimit:%s:%s", routeKey, clientKey), l.window)
	if err != nil {
		return false, err
	}

	return count <= limit, nil
}
