package store

import (
	"sync"
	"time"

	"bidwise/internal/sim"
)

// ResultCache keeps simulation results per campaign so repeated metric and
// analytics reads do not replay the stream. Entries expire after a TTL and
// are invalidated whenever the campaign changes; caching policy stays out of
// the simulation core.
type ResultCache struct {
	mu    sync.RWMutex
	ttl   time.Duration
	store map[string]*resultEntry
}

type resultEntry struct {
	result    *sim.Result
	expiresAt time.Time
}

func NewResultCache(ttl time.Duration) *ResultCache {
	return &ResultCache{ttl: ttl, store: make(map[string]*resultEntry)}
}

// Get returns the cached result for a campaign, dropping expired entries
// lazily.
func (c *ResultCache) Get(campaignID string) (*sim.Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.store[campaignID]
	if !ok {
		return nil, false
	}
	if time.Now().After(entry.expiresAt) {
		delete(c.store, campaignID)
		return nil, false
	}
	return entry.result, true
}

func (c *ResultCache) Set(campaignID string, result *sim.Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store[campaignID] = &resultEntry{
		result:    result,
		expiresAt: time.Now().Add(c.ttl),
	}
}

// Invalidate drops the entry for one campaign, e.g. after a strategy change
// or deletion.
func (c *ResultCache) Invalidate(campaignID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.store, campaignID)
}

func (c *ResultCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store = make(map[string]*resultEntry)
}
