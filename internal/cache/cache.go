// Package cache provides in-memory caching for analysis results. Entries are
// pure functions of their key, so concurrent writes of the same key are
// harmless (last writer wins).
package cache

import (
	"encoding/hex"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
	"github.com/zeebo/blake3"
)

// Memory is a process-lifetime key/value cache.
type Memory[V any] struct {
	mu      sync.RWMutex
	entries map[string]V
	hits    atomic.Uint64
	misses  atomic.Uint64
}

// NewMemory creates an empty cache.
func NewMemory[V any]() *Memory[V] {
	return &Memory[V]{entries: make(map[string]V)}
}

// Get retrieves a cached value.
func (c *Memory[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	v, ok := c.entries[key]
	c.mu.RUnlock()

	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return v, ok
}

// Set stores a value.
func (c *Memory[V]) Set(key string, v V) {
	c.mu.Lock()
	c.entries[key] = v
	c.mu.Unlock()
}

// Len returns the number of cached entries.
func (c *Memory[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Clear removes all entries.
func (c *Memory[V]) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]V)
	c.mu.Unlock()
}

// Stats reports hit/miss counts.
func (c *Memory[V]) Stats() (hits, misses uint64) {
	return c.hits.Load(), c.misses.Load()
}

// Key builds a cache key from its parts using xxhash. Parts are length
// prefixed so ("ab","c") and ("a","bc") do not collide.
func Key(parts ...string) string {
	h := xxhash.New()
	for _, p := range parts {
		_, _ = h.WriteString(strconv.Itoa(len(p)))
		_, _ = h.WriteString(":")
		_, _ = h.WriteString(p)
	}
	return strconv.FormatUint(h.Sum64(), 16)
}

// HashBytes computes a BLAKE3 content hash as a hex string. Used to key
// analyses by content rather than path.
func HashBytes(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// HashString computes a BLAKE3 content hash of a string.
func HashString(s string) string {
	return HashBytes([]byte(s))
}

// OptionsKey flattens option name/value pairs into a stable key fragment.
func OptionsKey(pairs ...string) string {
	return strings.Join(pairs, "|")
}
