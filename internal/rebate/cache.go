package rebate

import (
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto/v2"

	"github.com/myfriendben/screener/internal/domain"
)

// Cache holds categorized results in process, keyed by encoded query.
// Each entry costs 1, so maxEntries bounds the number of results kept.
type Cache struct {
	c   *ristretto.Cache[string, []domain.RebateCategory]
	ttl time.Duration
}

// NewCache returns a Cache holding up to maxEntries results for ttl.
func NewCache(maxEntries int64, ttl time.Duration) (*Cache, error) {
	c, err := ristretto.NewCache(&ristretto.Config[string, []domain.RebateCategory]{
		NumCounters:        maxEntries * 10, // ~10x expected items
		MaxCost:            maxEntries,
		BufferItems:        64,
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, fmt.Errorf("rebate.NewCache: %w", err)
	}
	return &Cache{c: c, ttl: ttl}, nil
}

// Get returns the cached result for key.
func (c *Cache) Get(key string) ([]domain.RebateCategory, bool) {
	return c.c.Get(key)
}

// Set stores cats under key. Writes are buffered; Wait flushes them.
func (c *Cache) Set(key string, cats []domain.RebateCategory) {
	c.c.SetWithTTL(key, cats, 1, c.ttl)
}

// Wait blocks until buffered writes are visible to Get.
func (c *Cache) Wait() {
	c.c.Wait()
}

// Close releases the cache's goroutines.
func (c *Cache) Close() {
	c.c.Close()
}
