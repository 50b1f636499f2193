package engine

import (
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/hailam/chesscore/internal/board"
)

// Bound tells how a cached score relates to the true value of a subtree.
type Bound uint8

const (
	Exact Bound = iota // Score is the minimax value
	Lower              // Search failed high; value >= Score
	Upper              // Search failed low; value <= Score
)

// approxEntryBytes is the rough cost of one cache entry, list links included.
const approxEntryBytes = 128

// CacheEntry is a memoized subtree result.
type CacheEntry struct {
	Board board.Board // Verified with SamePosition on probe
	Depth int
	Score int
	Bound Bound
}

// Cache memoizes subtree scores, keyed by Zobrist hash. It holds a fixed
// number of entries and evicts the least recently used one when full.
// It is safe for concurrent use.
type Cache struct {
	entries *lru.Cache[uint64, CacheEntry]
	size    int

	hits   atomic.Uint64
	probes atomic.Uint64
}

// NewCache creates a cache holding at most size entries (at least one).
func NewCache(size int) *Cache {
	if size < 1 {
		size = 1
	}
	entries, err := lru.New[uint64, CacheEntry](size)
	if err != nil {
		panic(err)
	}
	return &Cache{entries: entries, size: size}
}

// CacheEntriesForMB converts a memory budget to an entry count.
func CacheEntriesForMB(mb int) int {
	return mb * 1024 * 1024 / approxEntryBytes
}

// Probe returns the entry stored for b at exactly depth. Boards that differ
// only in which slot holds a piece share an entry.
func (c *Cache) Probe(b *board.Board, depth int) (CacheEntry, bool) {
	c.probes.Add(1)
	e, ok := c.entries.Get(b.Hash())
	if !ok || e.Depth != depth || !e.Board.SamePosition(b) {
		return CacheEntry{}, false
	}
	c.hits.Add(1)
	return e, true
}

// Store records the result of searching b to depth.
func (c *Cache) Store(b *board.Board, depth, score int, bound Bound) {
	c.entries.Add(b.Hash(), CacheEntry{Board: *b, Depth: depth, Score: score, Bound: bound})
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	return c.entries.Len()
}

// Size returns the capacity in entries.
func (c *Cache) Size() int {
	return c.size
}

// Clear drops every entry and resets the statistics.
func (c *Cache) Clear() {
	c.entries.Purge()
	c.hits.Store(0)
	c.probes.Store(0)
}

// HashFull returns the permille of the cache in use.
func (c *Cache) HashFull() int {
	return c.entries.Len() * 1000 / c.size
}

// HitRate returns the probe hit rate as a percentage.
func (c *Cache) HitRate() float64 {
	probes := c.probes.Load()
	if probes == 0 {
		return 0
	}
	return float64(c.hits.Load()) / float64(probes) * 100
}
