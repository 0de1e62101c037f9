package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/aussiebroadwan/storefront/internal/storefront/domain"
	"github.com/redis/go-redis/v9"
)

const (
	defaultTTL = 15 * time.Minute
	maxJitter  = 5 * time.Minute
)

// RedisProductCache stores products as JSON under "product:<id>" with a
// jittered TTL so entries written together do not expire together.
type RedisProductCache struct {
	client  redis.UniversalClient
	baseTTL time.Duration
}

func NewRedisProductCache(client redis.UniversalClient, ttl time.Duration) *RedisProductCache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &RedisProductCache{client: client, baseTTL: ttl}
}

func (c *RedisProductCache) Get(ctx context.Context, id string) (domain.Product, error) {
	data, err := c.client.Get(ctx, productKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Product{}, ErrCacheMiss
	}
	if err != nil {
		return domain.Product{}, fmt.Errorf("cache: redis get: %w", err)
	}

	var p domain.Product
	if err := json.Unmarshal(data, &p); err != nil {
		return domain.Product{}, fmt.Errorf("cache: decode product: %w", err)
	}
	return p, nil
}

func (c *RedisProductCache) Set(ctx context.Context, p domain.Product) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("cache: encode product: %w", err)
	}

	ttl := c.baseTTL + rand.N(maxJitter)
	if err := c.client.Set(ctx, productKey(p.ID), data, ttl).Err(); err != nil {
		return fmt.Errorf("cache: redis set: %w", err)
	}
	return nil
}

func (c *RedisProductCache) Delete(ctx context.Context, id string) error {
	if err := c.client.Del(ctx, productKey(id)).Err(); err != nil {
		return fmt.Errorf("cache: redis del: %w", err)
	}
	return nil
}

func productKey(id string) string {
	return "product:" + id
}
