package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	lgerrors "github.com/matzehuels/lootgrid/pkg/errors"
)

// RedisConfig configures [NewRedisCache].
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	// ConnectAttempts is how many times the initial PING is tried before
	// giving up, doubling ConnectDelay between tries. Zero means once.
	ConnectAttempts int
	ConnectDelay    time.Duration
}

const defaultConnectDelay = 500 * time.Millisecond

// RedisCache stores entries in Redis with native key expiry.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache connects to Redis and verifies the connection with PING,
// retrying while the server is unreachable.
func NewRedisCache(ctx context.Context, cfg RedisConfig) (Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	delay := cfg.ConnectDelay
	if delay <= 0 {
		delay = defaultConnectDelay
	}
	err := retry(ctx, cfg.ConnectAttempts, delay, func() error {
		if err := client.Ping(ctx).Err(); err != nil {
			return &retryableError{err: err}
		}
		return nil
	})
	if err != nil {
		client.Close()
		return nil, lgerrors.Wrap(lgerrors.ErrCodeNetwork, err, "connect to redis at %s", cfg.Addr)
	}
	return &RedisCache{client: client}, nil
}

// Get retrieves a value from Redis.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Set stores a value in Redis. A zero ttl keeps the key forever.
func (c *RedisCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return c.client.Set(ctx, key, data, ttl).Err()
}

// Delete removes a key from Redis.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}

// Close closes the Redis client.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

var _ Cache = (*RedisCache)(nil)
