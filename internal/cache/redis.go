package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/iwvelando/calcsuite/pkg/constants"
	"github.com/redis/go-redis/v9"
)

// RedisOptions configures the Redis backend.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// Redis caches results in a shared Redis instance so several API replicas
// reuse each other's schedules.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis connects to Redis and verifies the connection with PING.
func NewRedis(ctx context.Context, opts RedisOptions) (*Redis, error) {
	if opts.Addr == "" {
		return nil, errors.New("redis address is required")
	}
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", opts.Addr, err)
	}
	return &Redis{client: client, ttl: opts.TTL}, nil
}

// Get returns a cached value; a missing key is a miss, not an error.
func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return val, true, nil
}

// Set stores a value with the configured TTL (zero means no expiry).
func (r *Redis) Set(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, key, value, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Backend returns "redis".
func (r *Redis) Backend() string { return constants.CacheBackendRedis }

// Close closes the Redis connection pool.
func (r *Redis) Close() error {
	return r.client.Close()
}
