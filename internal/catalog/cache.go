package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache stores catalog snapshots in Redis as JSON.
type Cache struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// NewCache constructs a cache helper. A nil client yields a cache that never hits.
func NewCache(client *redis.Client, key string, ttl time.Duration) *Cache {
	if key == "" {
		key = "checkout:catalog"
	}
	return &Cache{client: client, key: key, ttl: ttl}
}

// LoadProducts reads the cached snapshot. It reports whether the key existed.
func (c *Cache) LoadProducts(ctx context.Context) ([]Product, bool, error) {
	if c == nil || c.client == nil {
		return nil, false, nil
	}
	data, err := c.client.Get(ctx, c.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	var products []Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, false, fmt.Errorf("decode catalog snapshot: %w", err)
	}
	return products, true, nil
}

// SaveProducts serialises the products and stores them with the configured TTL.
func (c *Cache) SaveProducts(ctx context.Context, products []Product) error {
	if c == nil || c.client == nil {
		return nil
	}
	data, err := json.Marshal(products)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key, data, c.ttl).Err()
}

// ErrNoFallback is returned by LoadOrDefault when no fallback catalog is supplied.
var ErrNoFallback = errors.New("catalog cache: fallback catalog is required")

// LoadOrDefault returns the cached catalog when present, otherwise seeds the cache
// with fallback and returns it. fallback must be non-nil.
func (c *Cache) LoadOrDefault(ctx context.Context, fallback *Static) (*Static, error) {
	if fallback == nil {
		return nil, ErrNoFallback
	}
	products, ok, err := c.LoadProducts(ctx)
	if err != nil {
		return nil, err
	}
	if ok {
		return NewStatic(products...)
	}
	if err := c.SaveProducts(ctx, fallback.Products()); err != nil {
		return nil, fmt.Errorf("seed catalog snapshot: %w", err)
	}
	return fallback, nil
}
