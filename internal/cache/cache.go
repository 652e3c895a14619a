// Package cache mirrors upstream reads into an in-process request cache.
// The gateway owns no state: entries are throwaway copies of platform API
// responses, keyed by resource + filter parameters, expired by TTL and
// invalidated explicitly when a mutation succeeds.
package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	hitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gateway_cache_hits_total",
		Help: "Request cache hits.",
	})
	missesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gateway_cache_misses_total",
		Help: "Request cache misses.",
	})
)

// Store is a TTL'd LRU of upstream responses. Concurrent reads of the same
// key collapse into a single upstream call.
type Store struct {
	lru   *expirable.LRU[string, interface{}]
	group singleflight.Group
}

func NewStore(maxEntries int, ttl time.Duration) *Store {
	return &Store{
		lru: expirable.NewLRU[string, interface{}](maxEntries, nil, ttl),
	}
}

// GetOrFetch returns the cached value for key, or runs fetch and caches its
// result. A fetch error caches nothing and leaves any prior entry untouched.
func (s *Store) GetOrFetch(ctx context.Context, key string, fetch func(ctx context.Context) (interface{}, error)) (interface{}, error) {
	if val, ok := s.lru.Get(key); ok {
		hitsTotal.Inc()
		return val, nil
	}
	missesTotal.Inc()

	val, err, _ := s.group.Do(key, func() (interface{}, error) {
		// re-check after winning the flight; a concurrent caller may have
		// populated the entry already
		if val, ok := s.lru.Get(key); ok {
			return val, nil
		}
		val, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		s.lru.Add(key, val)
		return val, nil
	})
	return val, err
}

// Put stores a value directly, subject to the same TTL and eviction as
// fetched entries.
func (s *Store) Put(key string, val interface{}) {
	s.lru.Add(key, val)
}

// Get returns the cached value without fetching.
func (s *Store) Get(key string) (interface{}, bool) {
	return s.lru.Get(key)
}

// Invalidate removes exact keys.
func (s *Store) Invalidate(keys ...string) {
	for _, key := range keys {
		s.lru.Remove(key)
	}
}

// InvalidatePrefix removes every entry whose key starts with prefix. List
// keys embed their filter parameters, so a mutation that affects "the role
// list" drops all filtered variants at once.
func (s *Store) InvalidatePrefix(prefix string) {
	for _, key := range s.lru.Keys() {
		if strings.HasPrefix(key, prefix) {
			s.lru.Remove(key)
		}
	}
}

// Fetch is the typed convenience over Store.GetOrFetch.
func Fetch[T any](ctx context.Context, s *Store, key string, fetch func(ctx context.Context) (T, error)) (T, error) {
	val, err := s.GetOrFetch(ctx, key, func(ctx context.Context) (interface{}, error) {
		return fetch(ctx)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	typed, ok := val.(T)
	if !ok {
		// two callers fetched different types under the same key; drop the
		// entry so the bad value cannot be served again
		s.Invalidate(key)
		var zero T
		return zero, fmt.Errorf("cache: entry %q holds %T, not %T", key, val, zero)
	}
	return typed, nil
}
