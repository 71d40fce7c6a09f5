package document

import (
	"encoding/binary"
	"hash/fnv"
	"math"
	"sync"
	"sync/atomic"
)

// DefaultCacheSize is the number of documents a Cache holds by default.
const DefaultCacheSize = 16

// Cache memoizes documents keyed by text and layout parameters, with LRU
// eviction. Cached documents are immutable and may be shared.
type Cache struct {
	mu        sync.Mutex
	entries   map[uint64]*cacheEntry
	maxSize   int
	tick      uint64
	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

type cacheEntry struct {
	doc        *Document
	lastAccess uint64
}

// NewCache creates a cache holding at most maxSize documents.
// A maxSize of zero or less disables caching.
func NewCache(maxSize int) *Cache {
	if maxSize < 0 {
		maxSize = 0
	}
	return &Cache{
		entries: make(map[uint64]*cacheEntry),
		maxSize: maxSize,
	}
}

// Get returns the cached document for text and p.
func (c *Cache) Get(text string, p Params) (*Document, bool) {
	key := hashKey(text, p)

	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok || e.doc.text != text || !e.doc.params.Equal(p) {
		c.misses.Add(1)
		return nil, false
	}
	c.tick++
	e.lastAccess = c.tick
	c.hits.Add(1)
	return e.doc, true
}

// Put stores a document. It returns the number of entries evicted.
func (c *Cache) Put(doc *Document) int {
	if doc == nil || c.maxSize == 0 {
		return 0
	}
	key := hashKey(doc.text, doc.params)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.tick++
	c.entries[key] = &cacheEntry{doc: doc, lastAccess: c.tick}
	return c.evict()
}

// Invalidate removes the document for text and p.
func (c *Cache) Invalidate(text string, p Params) {
	key := hashKey(text, p)
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Clear removes every entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[uint64]*cacheEntry)
}

// Len returns the number of cached documents.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// evict removes least recently used entries until under maxSize.
// Must be called with the lock held.
func (c *Cache) evict() int {
	removed := 0
	for len(c.entries) > c.maxSize {
		var oldest uint64
		first := true
		var at uint64
		for k, e := range c.entries {
			if first || e.lastAccess < at {
				oldest, at, first = k, e.lastAccess, false
			}
		}
		delete(c.entries, oldest)
		removed++
	}
	if removed > 0 {
		c.evictions.Add(uint64(removed))
	}
	return removed
}

// Stats returns cache statistics.
func (c *Cache) Stats() CacheStats {
	size := c.Len()
	hits := c.hits.Load()
	misses := c.misses.Load()

	var hitRate float64
	if total := hits + misses; total > 0 {
		hitRate = float64(hits) / float64(total)
	}
	return CacheStats{
		Size:      size,
		MaxSize:   c.maxSize,
		Hits:      hits,
		Misses:    misses,
		Evictions: c.evictions.Load(),
		HitRate:   hitRate,
	}
}

// ResetStats resets the statistics counters.
func (c *Cache) ResetStats() {
	c.hits.Store(0)
	c.misses.Store(0)
	c.evictions.Store(0)
}

// CacheStats holds cache statistics.
type CacheStats struct {
	Size      int     // Current number of entries
	MaxSize   int     // Maximum entries allowed
	Hits      uint64  // Number of cache hits
	Misses    uint64  // Number of cache misses
	Evictions uint64  // Number of evicted entries
	HitRate   float64 // Hit rate (0.0 - 1.0)
}

// hashKey hashes text and the layout parameters with FNV-1a.
func hashKey(text string, p Params) uint64 {
	h := fnv.New64a()
	var buf [8]byte
	put := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		h.Write(buf[:])
	}
	put(uint64(len(text)))
	h.Write([]byte(text))
	put(math.Float64bits(p.FontSize))
	put(math.Float64bits(p.LineHeight))
	if p.Wrapped() {
		put(math.Float64bits(p.MaxWidth))
	} else {
		put(0)
	}
	h.Write([]byte(p.FontFamily))
	if p.Style != nil {
		put(uint64(p.Style.Weight))
		put(uint64(p.Style.Slant)<<8 | uint64(p.Style.Stretch))
	}
	return h.Sum64()
}
