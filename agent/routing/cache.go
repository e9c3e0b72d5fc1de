package routing

import (
	"strings"
	"sync"
	"time"

	contractx "github.com/tanpawarit/Chative-Commerce-Assistant/agent/contract"
)

type cachedDecision struct {
	decision contractx.RoutingDecision
	cachedAt time.Time
}

// Cache memoizes routing decisions per normalized query for a TTL. Expired
// entries are swept by a background goroutine.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]cachedDecision
	ttl     time.Duration
}

func NewCache(ttl time.Duration) *Cache {
	c := &Cache{
		entries: make(map[string]cachedDecision),
		ttl:     ttl,
	}
	go c.sweep()
	return c
}

func (c *Cache) Get(query string) (contractx.RoutingDecision, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[normalizeQuery(query)]
	if !ok || time.Since(entry.cachedAt) >= c.ttl {
		return contractx.RoutingDecision{}, false
	}
	return entry.decision, true
}

func (c *Cache) Set(query string, decision contractx.RoutingDecision) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[normalizeQuery(query)] = cachedDecision{
		decision: decision,
		cachedAt: time.Now(),
	}
}

func (c *Cache) sweep() {
	ticker := time.NewTicker(c.ttl)
	defer ticker.Stop()

	for range ticker.C {
		c.mu.Lock()
		now := time.Now()
		for key, entry := range c.entries {
			if now.Sub(entry.cachedAt) > c.ttl {
				delete(c.entries, key)
			}
		}
		c.mu.Unlock()
	}
}

func normalizeQuery(q string) string {
	return strings.ToLower(strings.TrimSpace(q))
}
