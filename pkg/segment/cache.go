package segment

import (
	"sync"

	"github.com/charmbracelet/log"
)

// Cache is a size-bounded, LRU-evicted store of segmentation results keyed by
// lowercase word text. It replaces an unbounded process-wide memo: idempotence
// is preserved (recomputing an evicted entry yields the same result since the
// catalog is immutable) while memory stays bounded and tests stay isolated.
type Cache struct {
	results     map[string]Result
	accessTime  map[string]int64
	accessCount int64
	maxEntries  int
	mu          sync.Mutex
}

// NewCache creates a cache holding at most maxEntries results.
// maxEntries < 1 disables caching entirely.
func NewCache(maxEntries int) *Cache {
	return &Cache{
		results:    make(map[string]Result, max(maxEntries, 0)),
		accessTime: make(map[string]int64, max(maxEntries, 0)),
		maxEntries: maxEntries,
	}
}

// Get returns the cached result for a word and marks it recently used.
func (c *Cache) Get(word string) (Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	res, ok := c.results[word]
	if ok {
		c.accessTime[word] = c.nextAccessTime()
	}
	return res, ok
}

// Put stores a result, evicting the least recently used entry when full.
func (c *Cache) Put(word string, res Result) {
	if c.maxEntries < 1 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.results[word]; !exists && len(c.results) >= c.maxEntries {
		c.evictLRU()
	}
	c.results[word] = res
	c.accessTime[word] = c.nextAccessTime()
}

// Len returns the number of cached results.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.results)
}

// Stats returns statistics about the cache state
func (c *Cache) Stats() map[string]int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return map[string]int{
		"cachedWords": len(c.results),
		"maxEntries":  c.maxEntries,
		"accesses":    int(c.accessCount),
	}
}

func (c *Cache) nextAccessTime() int64 {
	c.accessCount++
	return c.accessCount
}

func (c *Cache) evictLRU() {
	var oldestWord string
	var oldestTime int64 = 9223372036854775807

	for word, accessTime := range c.accessTime {
		if accessTime < oldestTime {
			oldestTime = accessTime
			oldestWord = word
		}
	}

	if oldestWord != "" {
		delete(c.results, oldestWord)
		delete(c.accessTime, oldestWord)
		log.Debugf("Evicted segmentation of '%s' from cache", oldestWord)
	}
}
