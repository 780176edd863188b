package cache

import (
	"sync"

	"github.com/Siddarth2230/base62/pkg/metrics"
)

// entry is a node of the recency list.
type entry struct {
	code  string
	value string
	prev  *entry
	next  *entry
}

// LRUCache memoizes decoded values (as decimal strings) keyed by their
// cleaned base62 code. It is safe for concurrent use.
type LRUCache struct {
	mu       sync.Mutex
	capacity int
	entries  map[string]*entry
	head     *entry // sentinel; head.next is most recently used
	tail     *entry // sentinel; tail.prev is least recently used
}

// NewLRUCache creates an LRU cache with given capacity
func NewLRUCache(capacity int) *LRUCache {
	if capacity <= 0 {
		capacity = 1000 // default
	}

	c := &LRUCache{
		capacity: capacity,
		entries:  make(map[string]*entry, capacity),
		head:     &entry{},
		tail:     &entry{},
	}
	c.head.next = c.tail
	c.tail.prev = c.head

	return c
}

// Get retrieves value and marks as recently used
func (c *LRUCache) Get(code string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[code]
	if !ok {
		metrics.CacheMisses.WithLabelValues("l1").Inc()
		return "", false
	}
	metrics.CacheHits.WithLabelValues("l1").Inc()
	c.moveToFront(e)
	return e.value, true
}

// Put adds or updates a code, evicting the least recently used one when full.
func (c *LRUCache) Put(code, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	defer c.reportSize()

	if e, ok := c.entries[code]; ok {
		e.value = value
		c.moveToFront(e)
		return
	}
	if len(c.entries) >= c.capacity {
		c.evictTail()
	}
	e := &entry{code: code, value: value}
	c.addToFront(e)
	c.entries[code] = e
}

// Peek retrieves a value without touching eviction order.
func (c *LRUCache) Peek(code string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[code]
	if !ok {
		return "", false
	}
	return e.value, true
}

// Delete removes code and reports whether it was present.
func (c *LRUCache) Delete(code string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	defer c.reportSize()

	e, ok := c.entries[code]
	if !ok {
		return false
	}
	c.unlink(e)
	delete(c.entries, code)
	return true
}

// Clear empties the cache
func (c *LRUCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	defer c.reportSize()

	c.entries = make(map[string]*entry, c.capacity)
	c.head.next = c.tail
	c.tail.prev = c.head
}

func (c *LRUCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *LRUCache) moveToFront(e *entry) {
	c.unlink(e)
	c.addToFront(e)
}

func (c *LRUCache) unlink(e *entry) {
	e.prev.next = e.next
	e.next.prev = e.prev
}

func (c *LRUCache) addToFront(e *entry) {
	first := c.head.next
	e.next = first
	e.prev = c.head
	c.head.next = e
	first.prev = e
}

func (c *LRUCache) evictTail() {
	lru := c.tail.prev
	if lru == c.head {
		return
	}
	c.unlink(lru)
	delete(c.entries, lru.code)
}

func (c *LRUCache) reportSize() {
	metrics.CacheSize.WithLabelValues("l1").Set(float64(len(c.entries)))
}
