package match

import (
	"sync"

	"github.com/edwingeng/deque"
	"github.com/zeebo/xxh3"

	"github.com/ardnew/acalc/grammar"
)

// DefaultCacheSize is the capacity used by [NewCache] when given a size less
// than 1.
const DefaultCacheSize = 256

// Cache memoizes successful matches of whole inputs.
//
// Entries are keyed by grammar, start rule and an xxh3 hash of the input;
// the input itself is kept to rule out hash collisions. When full, the
// oldest entry is evicted. A Cache is safe for concurrent use.
type Cache[R grammar.Tag] struct {
	entries map[cacheKey[R]]cacheEntry[R]
	order   deque.Deque
	size    int
	hits    uint64
	misses  uint64
	mu      sync.Mutex
}

type cacheKey[R grammar.Tag] struct {
	spec  *grammar.Spec[R]
	start R
	hash  uint64
}

type cacheEntry[R grammar.Tag] struct {
	node  *grammar.Node[R]
	input string
}

// NewCache returns an empty cache holding at most size matches.
func NewCache[R grammar.Tag](size int) *Cache[R] {
	if size < 1 {
		size = DefaultCacheSize
	}

	return &Cache[R]{
		entries: make(map[cacheKey[R]]cacheEntry[R], size),
		order:   deque.NewDeque(),
		size:    size,
	}
}

// Match is like the package-level [Match] but returns a cached CST when the
// same input was matched before. Failures are not cached.
func (c *Cache[R]) Match(
	spec *grammar.Spec[R],
	input string,
	start R,
	opts ...Option,
) (*grammar.Node[R], error) {
	key := cacheKey[R]{spec: spec, start: start, hash: xxh3.HashString(input)}

	c.mu.Lock()
	if e, ok := c.entries[key]; ok && e.input == input {
		c.hits++
		c.mu.Unlock()

		return e.node, nil
	}
	c.misses++
	c.mu.Unlock()

	node, err := Match(spec, input, start, opts...)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[key]; !ok {
		for c.order.Len() >= c.size {
			delete(c.entries, c.order.PopFront().(cacheKey[R]))
		}

		c.order.PushBack(key)
	}

	c.entries[key] = cacheEntry[R]{node: node, input: input}

	return node, nil
}

// Len returns the number of cached matches.
func (c *Cache[R]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}

// Stats returns the number of lookups answered from and missed by the cache.
func (c *Cache[R]) Stats() (hits, misses uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.hits, c.misses
}

// Reset removes all cached matches and clears the statistics.
func (c *Cache[R]) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	clear(c.entries)
	c.order = deque.NewDeque()
	c.hits, c.misses = 0, 0
}
