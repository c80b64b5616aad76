// Package cache is an optional Redis read-through cache for the product
// catalog. Products change rarely and every page load needs them, so a short
// TTL takes most of the read load off the backend. Without a configured Redis
// address the cache is inert and every read goes upstream.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"

	"portableworkout-web/internal/catalog"
	"portableworkout-web/internal/observability"
)

const (
	keyAllProducts      = "products:all"
	keyFeaturedProducts = "products:featured"

	// TTL is short on purpose: the cache absorbs bursts, not staleness.
	TTL = 60 * time.Second
)

// ProductCache wraps a product fetcher with a Redis cache. A nil *ProductCache
// is valid and always fetches upstream.
type ProductCache struct {
	rdb *redis.Client
}

// NewProductCache returns a cache over the given Redis client, or nil when
// addr is empty.
func NewProductCache(addr string) *ProductCache {
	if addr == "" {
		return nil
	}
	return &ProductCache{rdb: redis.NewClient(&redis.Options{Addr: addr})}
}

// Ping verifies the Redis connection. Nil caches always succeed.
func (c *ProductCache) Ping(ctx context.Context) error {
	if c == nil {
		return nil
	}
	return c.rdb.Ping(ctx).Err()
}

// Products returns the full collection, from Redis when fresh, otherwise via
// fetch. Cache failures degrade to the fetch path; a broken Redis never
// breaks a page.
func (c *ProductCache) Products(ctx context.Context, fetch func(context.Context) ([]catalog.Product, error)) ([]catalog.Product, error) {
	return c.cached(ctx, keyAllProducts, fetch)
}

// FeaturedProducts returns the featured selection with the same policy.
func (c *ProductCache) FeaturedProducts(ctx context.Context, fetch func(context.Context) ([]catalog.Product, error)) ([]catalog.Product, error) {
	return c.cached(ctx, keyFeaturedProducts, fetch)
}

func (c *ProductCache) cached(ctx context.Context, key string, fetch func(context.Context) ([]catalog.Product, error)) ([]catalog.Product, error) {
	if c == nil {
		return fetch(ctx)
	}

	log := observability.FromContext(ctx)

	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err == nil {
		var products []catalog.Product
		if err := json.Unmarshal(raw, &products); err == nil {
			observability.ProductCacheHits.Inc()
			return products, nil
		}
		log.Warn("Discarding undecodable cache entry", "key", key)
	} else if !errors.Is(err, redis.Nil) {
		log.Warn("Product cache read failed", "key", key, "error", err)
	}
	observability.ProductCacheMisses.Inc()

	products, err := fetch(ctx)
	if err != nil {
		return nil, err
	}

	if encoded, err := json.Marshal(products); err == nil {
		if err := c.rdb.Set(ctx, key, encoded, TTL).Err(); err != nil {
			log.Warn("Product cache write failed", "key", key, "error", err)
		}
	}

	return products, nil
}
