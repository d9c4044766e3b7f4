package enricher

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/Astemirdum/curator-library/library/internal/model"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

type Cache interface {
	Get(ctx context.Context, isbn string) (model.Metadata, bool, error)
	Set(ctx context.Context, isbn string, md model.Metadata) error
}

// MemoryCache keeps entries for the life of the process.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]model.Metadata
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]model.Metadata)}
}

func (c *MemoryCache) Get(_ context.Context, isbn string) (model.Metadata, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	md, ok := c.entries[isbn]
	return md, ok, nil
}

func (c *MemoryCache) Set(_ context.Context, isbn string, md model.Metadata) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[isbn] = md
	return nil
}

const redisKeyPrefix = "library:isbn:"

// RedisCache shares lookups between instances. A zero ttl never expires.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, errors.Wrap(err, "parse redis URL")
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.Wrap(err, "redis ping")
	}
	return client, nil
}

func (c *RedisCache) Get(ctx context.Context, isbn string) (model.Metadata, bool, error) {
	data, err := c.client.Get(ctx, redisKeyPrefix+isbn).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return model.Metadata{}, false, nil
		}
		return model.Metadata{}, false, err
	}
	var md model.Metadata
	if err := json.Unmarshal(data, &md); err != nil {
		return model.Metadata{}, false, err
	}
	return md, true, nil
}

func (c *RedisCache) Set(ctx context.Context, isbn string, md model.Metadata) error {
	data, err := json.Marshal(md)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, redisKeyPrefix+isbn, data, c.ttl).Err()
}
