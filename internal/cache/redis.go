package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrMiss is returned when a key is not cached
var ErrMiss = errors.New("cache miss")

// EntityCache stores JSON encoded records under "<collection>:<id>" keys.
// A nil *EntityCache is valid and behaves as an always-missing cache.
type EntityCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewRedisClient dials redis and verifies the connection
func NewRedisClient(addr, password string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return rdb, nil
}

func NewEntityCache(client *redis.Client, ttl time.Duration, logger *slog.Logger) *EntityCache {
	if logger == nil {
		logger = slog.Default()
	}
	return &EntityCache{client: client, ttl: ttl, logger: logger}
}

func key(collection, id string) string {
	return fmt.Sprintf("skillhub:%s:%s", collection, id)
}

// Get decodes the cached record into dst, or returns ErrMiss
func (c *EntityCache) Get(ctx context.Context, collection, id string, dst any) error {
	if c == nil || c.client == nil {
		return ErrMiss
	}
	raw, err := c.client.Get(ctx, key(collection, id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrMiss
	}
	if err != nil {
		return fmt.Errorf("cache get: %w", err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		// corrupt entry, drop it so the next read repopulates
		c.Invalidate(ctx, collection, id)
		return ErrMiss
	}
	return nil
}

// Set stores the record; failures are logged, never returned
func (c *EntityCache) Set(ctx context.Context, collection, id string, value any) {
	if c == nil || c.client == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("cache_encode_failed", "collection", collection, "id", id, "error", err.Error())
		return
	}
	if err := c.client.Set(ctx, key(collection, id), raw, c.ttl).Err(); err != nil {
		c.logger.Warn("cache_set_failed", "collection", collection, "id", id, "error", err.Error())
	}
}

func (c *EntityCache) Invalidate(ctx context.Context, collection, id string) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Del(ctx, key(collection, id)).Err(); err != nil {
		c.logger.Warn("cache_invalidate_failed", "collection", collection, "id", id, "error", err.Error())
	}
}

func (c *EntityCache) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}
