package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss is returned when a key is absent or expired.
var ErrCacheMiss = errors.New("cache: key not found")

// Cache stores JSON-serialisable upstream payloads for a short time.
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// Layered is an in-memory L1 cache optionally backed by Redis as L2.
type Layered struct {
	local  *gocache.Cache
	remote *redis.Client
	prefix string
}

// NewLayered creates a layered cache. remote may be nil to run memory-only.
func NewLayered(defaultTTL time.Duration, remote *redis.Client, prefix string) *Layered {
	return &Layered{
		local:  gocache.New(defaultTTL, 2*defaultTTL),
		remote: remote,
		prefix: prefix,
	}
}

func (c *Layered) key(k string) string {
	return c.prefix + k
}

// Get loads key into dest, checking memory first and Redis second.
func (c *Layered) Get(ctx context.Context, key string, dest interface{}) error {
	if raw, ok := c.local.Get(c.key(key)); ok {
		return json.Unmarshal(raw.([]byte), dest)
	}
	if c.remote == nil {
		return ErrCacheMiss
	}

	raw, err := c.remote.Get(ctx, c.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCacheMiss
		}
		return fmt.Errorf("cache: redis get: %w", err)
	}

	ttl, err := c.remote.TTL(ctx, c.key(key)).Result()
	if err == nil && ttl > 0 {
		c.local.Set(c.key(key), raw, ttl)
	}
	return json.Unmarshal(raw, dest)
}

// Set stores value in both layers.
func (c *Layered) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache: marshal: %w", err)
	}
	c.local.Set(c.key(key), raw, ttl)

	if c.remote == nil {
		return nil
	}
	if err := c.remote.Set(ctx, c.key(key), raw, ttl).Err(); err != nil {
		return fmt.Errorf("cache: redis set: %w", err)
	}
	return nil
}

// Nop never stores anything. Used when caching is disabled.
type Nop struct{}

func (Nop) Get(context.Context, string, interface{}) error { return ErrCacheMiss }

func (Nop) Set(context.Context, string, interface{}, time.Duration) error { return nil }

// Remember returns the cached value for key or calls load and caches its result.
// Errors from load are returned as-is and never cached.
func Remember[T any](ctx context.Context, c Cache, key string, ttl time.Duration, load func(ctx context.Context) (T, error)) (T, error) {
	var cached T
	if c != nil && ttl > 0 {
		if err := c.Get(ctx, key, &cached); err == nil {
			return cached, nil
		}
	}

	value, err := load(ctx)
	if err != nil {
		return value, err
	}

	if c != nil && ttl > 0 {
		_ = c.Set(ctx, key, value, ttl)
	}
	return value, nil
}
