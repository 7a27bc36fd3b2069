package geocode

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/primex/opportunity-dashboard/internal/domain"
	"github.com/primex/opportunity-dashboard/internal/observability"
)

// CachedResolver wraps an AddressResolver with an in-memory LRU cache keyed
// by address. Every outcome is cached, including "not resolved", so a
// repeated address never reaches the network again within the process.
type CachedResolver struct {
	inner   domain.AddressResolver
	cache   *lruCache
	group   singleflight.Group
	metrics *observability.Metrics
}

// NewCachedResolver creates a cache decorator around a resolver. A
// non-positive maxEntries disables eviction.
func NewCachedResolver(inner domain.AddressResolver, maxEntries int, metrics *observability.Metrics) *CachedResolver {
	return &CachedResolver{
		inner:   inner,
		cache:   newLRUCache(maxEntries),
		metrics: metrics,
	}
}

func (c *CachedResolver) Resolve(ctx context.Context, address string, n domain.Notifier) (domain.Geo, bool) {
	if res, ok := c.cache.get(address); ok {
		c.metrics.GeocodeCache.WithLabelValues("hit").Inc()
		return res.geo, res.ok
	}
	c.metrics.GeocodeCache.WithLabelValues("miss").Inc()

	// Concurrent misses for one address share a single resolution; only the
	// caller that runs it receives the resolver's notices.
	for {
		leader := false
		v, _, _ := c.group.Do(address, func() (any, error) {
			leader = true
			if res, ok := c.cache.get(address); ok {
				return res, nil
			}
			geo, ok := c.inner.Resolve(ctx, address, n)
			res := resolution{geo: geo, ok: ok}
			// A cancelled caller says nothing about the address itself.
			if ctx.Err() != nil {
				res.cancelled = true
				return res, nil
			}
			c.cache.put(address, res)
			return res, nil
		})
		res := v.(resolution)
		if leader {
			return res.geo, res.ok
		}
		if res.cancelled && ctx.Err() == nil {
			continue
		}
		if !res.ok {
			domain.Notifyf(n, domain.NoticeWarning, "Could not resolve coordinates for '%s'.", address)
		}
		return res.geo, res.ok
	}
}

// Len returns the number of cached addresses.
func (c *CachedResolver) Len() int {
	return c.cache.len()
}

type resolution struct {
	geo       domain.Geo
	ok        bool
	cancelled bool
}

// lruCache is a simple thread-safe LRU cache for resolutions.
type lruCache struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*entry
	head       *entry // most recently used
	tail       *entry // least recently used
}

type entry struct {
	key   string
	value resolution
	prev  *entry
	next  *entry
}

func newLRUCache(maxEntries int) *lruCache {
	return &lruCache{
		maxEntries: maxEntries,
		entries:    make(map[string]*entry),
	}
}

func (c *lruCache) get(key string) (resolution, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return resolution{}, false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *lruCache) put(key string, value resolution) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.value = value
		c.moveToFront(e)
		return
	}

	e := &entry{key: key, value: value}
	c.entries[key] = e
	c.addToFront(e)

	if c.maxEntries > 0 && len(c.entries) > c.maxEntries {
		c.evictTail()
	}
}

func (c *lruCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *lruCache) moveToFront(e *entry) {
	if e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *lruCache) addToFront(e *entry) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *lruCache) remove(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}

func (c *lruCache) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.key)
	c.remove(c.tail)
}
