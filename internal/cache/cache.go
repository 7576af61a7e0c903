// Package cache provides an in-memory LRU cache with per-entry TTL, used to
// keep provider responses hot between requests.
package cache

import (
	"container/list"
	"sync"
	"time"
)

// Cache is the interface consumed by the provider adapters.
type Cache interface {
	Get(key string) (interface{}, bool)
	Set(key string, value interface{})
	Delete(key string)
	Clear()
}

type entry struct {
	key        string
	value      interface{}
	expiration time.Time
}

// LRUCache evicts the least recently used entry once capacity is exceeded.
// Expired entries are dropped lazily on Get and in bulk by CleanExpired.
type LRUCache struct {
	capacity  int
	items     map[string]*list.Element
	evictList *list.List
	ttl       time.Duration
	mu        sync.Mutex
}

// New creates a cache holding at most capacity entries for at most ttl each.
func New(capacity int, ttl time.Duration) *LRUCache {
	if capacity <= 0 {
		capacity = 1
	}
	return &LRUCache{
		capacity:  capacity,
		items:     make(map[string]*list.Element),
		evictList: list.New(),
		ttl:       ttl,
	}
}

// Get returns the cached value for key, if present and not expired.
func (c *LRUCache) Get(key string) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[key]
	if !ok {
		return nil, false
	}

	e := elem.Value.(*entry)
	if time.Now().After(e.expiration) {
		c.removeElement(elem)
		return nil, false
	}

	c.evictList.MoveToFront(elem)
	return e.value, true
}

// Set stores value under key, refreshing the TTL on overwrite.
func (c *LRUCache) Set(key string, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()

	expiration := time.Now().Add(c.ttl)

	if elem, ok := c.items[key]; ok {
		e := elem.Value.(*entry)
		e.value = value
		e.expiration = expiration
		c.evictList.MoveToFront(elem)
		return
	}

	elem := c.evictList.PushFront(&entry{key: key, value: value, expiration: expiration})
	c.items[key] = elem

	if c.evictList.Len() > c.capacity {
		if oldest := c.evictList.Back(); oldest != nil {
			c.removeElement(oldest)
		}
	}
}

// Delete removes key from the cache.
func (c *LRUCache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		c.removeElement(elem)
	}
}

// Clear removes all entries.
func (c *LRUCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]*list.Element)
	c.evictList.Init()
}

// Len returns the number of entries currently stored, expired or not.
func (c *LRUCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.evictList.Len()
}

// CleanExpired removes every expired entry. Intended to run periodically from
// a background goroutine.
func (c *LRUCache) CleanExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for elem := c.evictList.Back(); elem != nil; {
		prev := elem.Prev()
		if now.After(elem.Value.(*entry).expiration) {
			c.removeElement(elem)
		}
		elem = prev
	}
}

// removeElement must be called with the lock held.
func (c *LRUCache) removeElement(elem *list.Element) {
	c.evictList.Remove(elem)
	delete(c.items, elem.Value.(*entry).key)
}
