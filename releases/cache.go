// ABOUTME: In-memory TTL cache in front of a release Fetcher.
// ABOUTME: Successful results are reused until they expire; errors are never cached.
package releases

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// DefaultCacheTTL is how long a fetched release is reused.
const DefaultCacheTTL = 5 * time.Minute

// Cache wraps a Fetcher so that page views share one upstream call per TTL.
type Cache struct {
	next Fetcher
	ttl  time.Duration
	now  func() time.Time

	mu        sync.RWMutex
	release   *Release
	fetchedAt time.Time

	// flight collapses concurrent misses into one upstream call.
	flight singleflight.Group
}

const flightKey = "latest"

// NewCache creates a Cache around next. A non-positive ttl uses DefaultCacheTTL.
func NewCache(next Fetcher, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Cache{
		next: next,
		ttl:  ttl,
		now:  time.Now,
	}
}

// Latest returns the cached release while it is fresh, otherwise asks the
// wrapped Fetcher and stores the result on success. Callers that miss at the
// same time share a single upstream request.
func (c *Cache) Latest(ctx context.Context) (*Release, error) {
	if rel, ok := c.fresh(); ok {
		return rel, nil
	}

	v, err, _ := c.flight.Do(flightKey, func() (any, error) {
		if rel, ok := c.fresh(); ok {
			return rel, nil
		}
		rel, err := c.next.Latest(ctx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.release = rel
		c.fetchedAt = c.now()
		c.mu.Unlock()
		return rel, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Release), nil
}

func (c *Cache) fresh() (*Release, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.release != nil && c.now().Sub(c.fetchedAt) < c.ttl {
		return c.release, true
	}
	return nil, false
}

// FetchedAt returns when the cached release was stored, or the zero time.
func (c *Cache) FetchedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.fetchedAt
}

// Clear drops the cached release so the next call goes upstream.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.release = nil
	c.fetchedAt = time.Time{}
}
