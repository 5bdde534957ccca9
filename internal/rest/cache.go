package rest

import (
	"container/list"
	"sync"
	"sync/atomic"
	"time"
)

// ResponseCache is an LRU cache for GET responses with per-entry expiry.
type ResponseCache struct {
	mu         sync.Mutex
	maxEntries int
	ttl        time.Duration
	items      map[string]*list.Element
	evictList  *list.List

	// now is replaceable in tests.
	now func() time.Time

	hits   atomic.Int64
	misses atomic.Int64
}

type cacheEntry struct {
	key       string
	value     []byte
	expiresAt time.Time
}

// NewResponseCache creates a cache holding at most maxEntries responses,
// each valid for ttl after insertion.
func NewResponseCache(maxEntries int, ttl time.Duration) *ResponseCache {
	return &ResponseCache{
		maxEntries: maxEntries,
		ttl:        ttl,
		items:      make(map[string]*list.Element),
		evictList:  list.New(),
		now:        time.Now,
	}
}

// Get returns a cached response. Expired entries are dropped on access.
func (c *ResponseCache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ent, ok := c.items[key]
	if !ok {
		c.misses.Add(1)
		return nil, false
	}

	if c.now().After(ent.Value.(*cacheEntry).expiresAt) {
		c.removeElement(ent)
		c.misses.Add(1)
		return nil, false
	}

	c.hits.Add(1)
	c.evictList.MoveToFront(ent)

	return ent.Value.(*cacheEntry).value, true
}

// Set caches a response, evicting the least recently used entries when the
// cache is full. Setting an existing key refreshes its expiry.
func (c *ResponseCache) Set(key string, value []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	expiresAt := c.now().Add(c.ttl)

	if ent, ok := c.items[key]; ok {
		c.evictList.MoveToFront(ent)
		ent.Value.(*cacheEntry).value = value
		ent.Value.(*cacheEntry).expiresAt = expiresAt
		return
	}

	element := c.evictList.PushFront(&cacheEntry{
		key:       key,
		value:     value,
		expiresAt: expiresAt,
	})
	c.items[key] = element

	for c.evictList.Len() > c.maxEntries {
		if back := c.evictList.Back(); back != nil {
			c.removeElement(back)
		}
	}
}

// Len returns the number of cached entries, expired ones included.
func (c *ResponseCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.evictList.Len()
}

// Stats returns lifetime hit and miss counts.
func (c *ResponseCache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

func (c *ResponseCache) removeElement(e *list.Element) {
	c.evictList.Remove(e)
	delete(c.items, e.Value.(*cacheEntry).key)
}
