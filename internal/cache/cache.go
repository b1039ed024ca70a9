package cache

import (
	"math/bits"
	"sync"
	"sync/atomic"
)

// maxShards bounds the number of shards of a cache.
const maxShards = 16

// Hasher computes the hash of a key for shard selection.
type Hasher[K any] func(K) uint64

// Uint64Hasher mixes a uint64 key so that shard selection does not depend
// on the low bits of the key alone.
func Uint64Hasher(u uint64) uint64 {
	u ^= u >> 33
	u *= 0xff51afd7ed558ccd
	u ^= u >> 33
	return u
}

// Stats is a snapshot of cache statistics.
type Stats struct {
	Len       int
	Capacity  int
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

// HitRate returns Hits / (Hits + Misses), or 0 before the first lookup.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// Cache is a sharded LRU cache with a bound on the total number of entries.
//
// The number of shards is the largest power of two not above the capacity
// (at most 16), so small caches keep exact LRU order while larger ones
// spread lock contention.
//
// Thread safety: Cache is safe for concurrent use.
type Cache[K comparable, V any] struct {
	shards   []*shard[K, V]
	mask     uint64
	hasher   Hasher[K]
	capacity int

	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

type shard[K comparable, V any] struct {
	mu       sync.Mutex
	capacity int
	entries  map[K]*lruNode[K, V]
	lru      lruList[K, V]
}

// New creates a cache holding at most capacity entries.
// A capacity below 1 is treated as 1.
func New[K comparable, V any](capacity int, hasher Hasher[K]) *Cache[K, V] {
	capacity = max(capacity, 1)
	n := 1 << (bits.Len(uint(min(capacity, maxShards))) - 1)

	c := &Cache[K, V]{
		shards:   make([]*shard[K, V], n),
		mask:     uint64(n - 1),
		hasher:   hasher,
		capacity: capacity,
	}

	// Distribute the capacity so the shard sizes add up exactly.
	for i := range c.shards {
		size := capacity / n
		if i < capacity%n {
			size++
		}
		c.shards[i] = &shard[K, V]{
			capacity: size,
			entries:  make(map[K]*lruNode[K, V]),
		}
	}
	return c
}

func (c *Cache[K, V]) shardFor(key K) *shard[K, V] {
	return c.shards[c.hasher(key)&c.mask]
}

// Get returns the value for key and marks it as recently used.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	s := c.shardFor(key)

	s.mu.Lock()
	node, ok := s.entries[key]
	var value V
	if ok {
		s.lru.MoveToFront(node)
		value = node.value
	}
	s.mu.Unlock()

	if !ok {
		c.misses.Add(1)
		return value, false
	}
	c.hits.Add(1)
	return value, true
}

// Set stores value under key, evicting the least recently used entries of
// the shard when it is full. The value is stored as-is.
func (c *Cache[K, V]) Set(key K, value V) {
	s := c.shardFor(key)

	s.mu.Lock()
	defer s.mu.Unlock()

	if node, ok := s.entries[key]; ok {
		node.value = value
		s.lru.MoveToFront(node)
		return
	}

	for s.lru.Len() >= s.capacity {
		oldest := s.lru.RemoveOldest()
		if oldest == nil {
			break
		}
		delete(s.entries, oldest.key)
		c.evictions.Add(1)
	}
	s.entries[key] = s.lru.PushFront(key, value)
}

// Delete removes key and reports whether it was present.
func (c *Cache[K, V]) Delete(key K) bool {
	s := c.shardFor(key)

	s.mu.Lock()
	defer s.mu.Unlock()

	node, ok := s.entries[key]
	if !ok {
		return false
	}
	s.lru.Remove(node)
	delete(s.entries, key)
	return true
}

// Clear removes all entries. Statistics are kept.
func (c *Cache[K, V]) Clear() {
	for _, s := range c.shards {
		s.mu.Lock()
		clear(s.entries)
		s.lru.Clear()
		s.mu.Unlock()
	}
}

// Len returns the number of cached entries.
func (c *Cache[K, V]) Len() int {
	total := 0
	for _, s := range c.shards {
		s.mu.Lock()
		total += len(s.entries)
		s.mu.Unlock()
	}
	return total
}

// Capacity returns the maximum number of entries.
func (c *Cache[K, V]) Capacity() int {
	return c.capacity
}

// Stats returns current cache statistics.
func (c *Cache[K, V]) Stats() Stats {
	return Stats{
		Len:       c.Len(),
		Capacity:  c.capacity,
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
	}
}
