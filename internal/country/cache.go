package country

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize is the number of distinct origin spellings kept.
const DefaultCacheSize = 1024

type cached struct {
	code string
	ok   bool
}

// Cached memoizes lookups of another Resolver, including misses.
type Cached struct {
	next  Resolver
	cache *lru.Cache[string, cached]
}

// NewCached wraps next with an LRU of the given size.
func NewCached(next Resolver, size int) (*Cached, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[string, cached](size)
	if err != nil {
		return nil, fmt.Errorf("country cache: %w", err)
	}
	return &Cached{next: next, cache: cache}, nil
}

// Resolve implements Resolver.
func (c *Cached) Resolve(name string) (string, bool) {
	if v, ok := c.cache.Get(name); ok {
		return v.code, v.ok
	}
	code, ok := c.next.Resolve(name)
	c.cache.Add(name, cached{code: code, ok: ok})
	return code, ok
}

// Len returns the number of cached spellings.
func (c *Cached) Len() int {
	return c.cache.Len()
}
