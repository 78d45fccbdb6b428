package client

import (
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/coursebook/backend/internal/contract"
)

// queryKey identifies a cached read: the route path template followed by its parameters
type queryKey []string

func keyOf(route contract.Route, ids ...int) queryKey {
	key := queryKey{route.Path}
	for _, id := range ids {
		key = append(key, strconv.Itoa(id))
	}
	return key
}

func (k queryKey) String() string {
	return strings.Join(k, "\x00")
}

// hasPrefix reports whether the key starts with every element of prefix
func (k queryKey) hasPrefix(prefix queryKey) bool {
	return len(prefix) <= len(k) && slices.Equal(k[:len(prefix)], prefix)
}

type cacheEntry struct {
	key   queryKey
	value any
}

// queryCache stores read results until a write invalidates them.
// Every invalidation bumps the generation; results fetched under an older generation are dropped.
type queryCache struct {
	mu         sync.Mutex
	entries    map[string]cacheEntry
	generation uint64
}

func newQueryCache() *queryCache {
	return &queryCache{entries: make(map[string]cacheEntry)}
}

func (c *queryCache) get(key queryKey) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key.String()]
	return entry.value, ok
}

func (c *queryCache) currentGeneration() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation
}

// set stores value unless an invalidation happened after gen was read
func (c *queryCache) set(key queryKey, value any, gen uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		return false
	}
	c.entries[key.String()] = cacheEntry{key: key, value: value}
	return true
}

// invalidate drops every entry whose key starts with one of the prefixes and returns how many were dropped
func (c *queryCache) invalidate(prefixes ...queryKey) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.generation++
	removed := 0
	for s, entry := range c.entries {
		for _, prefix := range prefixes {
			if entry.key.hasPrefix(prefix) {
				delete(c.entries, s)
				removed++
				break
			}
		}
	}
	return removed
}

func (c *queryCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
