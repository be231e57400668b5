package report

import (
	"sync"
)

// FingerprintFunc identifies the state of the data behind a cached
// table. The cache re-validates the fingerprint on every read, so a
// changed source file invalidates the entry without an explicit call.
// A failed fingerprint is treated as a miss.
type FingerprintFunc func() (string, error)

// Cache memoizes the materialized table between pipeline runs.
// It is safe for concurrent use; the HTTP server shares one cache
// across requests.
type Cache struct {
	mu          sync.Mutex
	fingerprint FingerprintFunc
	key         string
	table       Table
	ok          bool
}

// NewCache creates a cache with the given fingerprint hook.
// Production code fingerprints the provisioned database file
// (path, size, mtime); tests inject constants or counters.
func NewCache(fingerprint FingerprintFunc) *Cache {
	return &Cache{fingerprint: fingerprint}
}

// Get returns the cached table when the fingerprint still matches the
// one recorded at Put time.
func (c *Cache) Get() (Table, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.ok {
		return Table{}, false
	}
	key, err := c.fingerprint()
	if err != nil || key != c.key {
		c.ok = false
		return Table{}, false
	}
	return c.table, true
}

// Put stores the table together with the current fingerprint.
// A failed fingerprint leaves the cache empty.
func (c *Cache) Put(t Table) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key, err := c.fingerprint()
	if err != nil {
		c.ok = false
		return
	}
	c.key = key
	c.table = t
	c.ok = true
}

// Invalidate drops the cached table.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ok = false
	c.table = Table{}
}
