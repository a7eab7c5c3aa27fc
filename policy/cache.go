package policy

import (
	"reflect"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"
)

// Cache maps specification types to their error tolerance decision.
//
// Contract:
// - Concurrency: safe for concurrent use.
// - Stability: once a type is resolved its decision never changes.
// - Growth: at most one entry per distinct type; entries are never removed.
type Cache struct {
	mu       sync.RWMutex
	entries  map[reflect.Type]bool
	resolve  Resolver
	sfGroup  singleflight.Group // collapses concurrent first lookups
	explicit map[reflect.Type]struct{}

	hits        atomic.Int64
	misses      atomic.Int64
	resolutions atomic.Int64
}

// Option configures a Cache.
type Option func(*Cache)

// WithResolver replaces the default marker inspection.
func WithResolver(r Resolver) Option {
	return func(c *Cache) {
		if r != nil {
			c.resolve = r
		}
	}
}

// WithTolerant registers types as tolerant regardless of their markers.
// Registered types still go through resolution once, so Stats stays
// comparable across types.
func WithTolerant(types ...reflect.Type) Option {
	return func(c *Cache) {
		for _, t := range types {
			if t != nil {
				c.explicit[t] = struct{}{}
			}
		}
	}
}

// New creates an empty Cache.
func New(opts ...Option) *Cache {
	c := &Cache{
		entries:  make(map[reflect.Type]bool),
		resolve:  HasMarker,
		explicit: make(map[reflect.Type]struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ShouldTolerate reports whether errors raised by specifications of type t
// are swallowed. The first call for t resolves and caches the decision.
// A panicking Resolver propagates to the caller.
func (c *Cache) ShouldTolerate(t reflect.Type) bool {
	if v, ok := c.Lookup(t); ok {
		c.hits.Add(1)
		return v
	}
	c.misses.Add(1)

	// Waiters for the same type share one resolution; the result is read
	// back from the map so that key collisions never leak across types.
	_, _, _ = c.sfGroup.Do(typeKey(t), func() (any, error) {
		return c.resolveLocked(t), nil
	})

	if v, ok := c.Lookup(t); ok {
		return v
	}
	return c.resolveLocked(t)
}

// Lookup returns the cached decision for t without resolving it.
func (c *Cache) Lookup(t reflect.Type) (tolerant, ok bool) {
	c.mu.RLock()
	tolerant, ok = c.entries[t]
	c.mu.RUnlock()
	return tolerant, ok
}

// resolveLocked takes the write lock, re-checks for a concurrent commit and
// otherwise computes and stores the decision for t.
func (c *Cache) resolveLocked(t reflect.Type) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if v, ok := c.entries[t]; ok {
		return v
	}

	c.resolutions.Add(1)
	_, registered := c.explicit[t]
	v := registered || c.resolve(t)
	c.entries[t] = v
	return v
}

// Len returns the number of resolved types.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Stats reports cache counters.
func (c *Cache) Stats() Stats {
	return Stats{
		Hits:        c.hits.Load(),
		Misses:      c.misses.Load(),
		Resolutions: c.resolutions.Load(),
	}
}

// Stats contains cache statistics.
type Stats struct {
	Hits        int64
	Misses      int64
	Resolutions int64
}

func typeKey(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.PkgPath() + "|" + t.String()
}
