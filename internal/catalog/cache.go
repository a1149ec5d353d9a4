package catalog

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	cacheKey = "catalog:products"
	cacheTTL = 5 * time.Minute
)

// Cache keeps the full product list in Redis so the search box does not
// hit Postgres on every keystroke.
type Cache struct {
	client *redis.Client
}

// NewCache wraps a Redis client for product list caching.
func NewCache(client *redis.Client) *Cache {
	return &Cache{client: client}
}

// Get returns the cached product list, or ok=false on a miss.
func (c *Cache) Get(ctx context.Context) ([]Product, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, cacheKey).Bytes()
	if err != nil {
		return nil, false
	}
	var products []Product
	if err := json.Unmarshal(raw, &products); err != nil {
		return nil, false
	}
	return products, true
}

// Set stores the product list. Failures are ignored; the cache is an
// optimization only.
func (c *Cache) Set(ctx context.Context, products []Product) {
	if c == nil || c.client == nil {
		return
	}
	raw, err := json.Marshal(products)
	if err != nil {
		return
	}
	c.client.Set(ctx, cacheKey, raw, cacheTTL)
}

// Invalidate drops the cached list after any catalog write.
func (c *Cache) Invalidate(ctx context.Context) {
	if c == nil || c.client == nil {
		return
	}
	c.client.Del(ctx, cacheKey)
}
