package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/patpet21/prdxprew-sub000/internal/domain"
)

const keyPrefix = "propertydex:chart:"

// RedisCache implements domain.ChartCache on top of Redis
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache connects to the Redis server at addr and verifies it answers
func NewRedisCache(ctx context.Context, addr string) (*RedisCache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", addr, err)
	}
	return &RedisCache{client: rdb}, nil
}

var _ domain.ChartCache = (*RedisCache)(nil)

// Get returns the cached image; any Redis error is treated as a miss
func (r *RedisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := r.client.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		return nil, false
	}
	return val, true
}

// Set stores the image with the given ttl (0 keeps it until evicted)
func (r *RedisCache) Set(ctx context.Context, key string, image []byte, ttl time.Duration) error {
	if err := r.client.Set(ctx, keyPrefix+key, image, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache chart: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool
func (r *RedisCache) Close() error {
	if err := r.client.Close(); err != nil && !errors.Is(err, redis.ErrClosed) {
		return err
	}
	return nil
}
