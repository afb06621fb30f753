package cache

import "sync"

// Cache is a write-once key/value store with hit/miss accounting.
type Cache[K comparable, V any] struct {
	mu      sync.RWMutex
	entries map[K]V
	hits    int
	misses  int
}

// New creates an empty Cache.
func New[K comparable, V any]() *Cache[K, V] {
	return &Cache[K, V]{entries: make(map[K]V)}
}

// Get retrieves the value for key and records a hit or miss.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return v, ok
}

// Contains reports whether key has a value without touching the counters.
func (c *Cache[K, V]) Contains(key K) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.entries[key]
	return ok
}

// PutIfAbsent stores value under key unless a value is already present, and
// returns whichever value the cache holds afterwards.
func (c *Cache[K, V]) PutIfAbsent(key K, value V) V {
	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.entries[key]; ok {
		return existing
	}
	c.entries[key] = value
	return value
}

// Len returns the number of stored entries.
func (c *Cache[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Stats describes cache usage.
type Stats struct {
	Entries int     `json:"entries" yaml:"entries"`
	Hits    int     `json:"hits" yaml:"hits"`
	Misses  int     `json:"misses" yaml:"misses"`
	HitRate float64 `json:"hitRate" yaml:"hitRate"`
}

// Stats returns a snapshot of the cache counters. HitRate is a percentage.
func (c *Cache[K, V]) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s := Stats{
		Entries: len(c.entries),
		Hits:    c.hits,
		Misses:  c.misses,
	}
	if total := c.hits + c.misses; total > 0 {
		s.HitRate = float64(c.hits) / float64(total) * 100
	}
	return s
}
