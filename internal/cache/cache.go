// Package cache stores computed results keyed by their inputs. Every
// calculator is pure, so a cached value never goes stale; the TTL only
// bounds memory.
package cache

import (
	"context"
	"fmt"
	"strings"

	"github.com/iwvelando/calcsuite/internal/config"
	"github.com/iwvelando/calcsuite/pkg/constants"
	"go.uber.org/zap"
)

// Cache is a byte-oriented result cache. Implementations are safe for
// concurrent use.
type Cache interface {
	// Get returns the value stored under key and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value under key.
	Set(ctx context.Context, key string, value []byte) error

	// Backend names the implementation for metrics labels.
	Backend() string

	// Close releases any connections held by the cache.
	Close() error
}

// New builds the cache selected by cfg.Backend.
func New(ctx context.Context, cfg config.CacheConfig, logger *zap.Logger) (Cache, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	switch cfg.Backend {
	case "", constants.CacheBackendNone:
		return Nop{}, nil
	case constants.CacheBackendMemory:
		size := cfg.Size
		if size <= 0 {
			size = constants.DefaultCacheSize
		}
		logger.Debug("using in-memory result cache",
			zap.String("op", "cache.New"),
			zap.Int("size", size),
			zap.Duration("ttl", cfg.TTL),
		)
		return NewMemory(size, cfg.TTL), nil
	case constants.CacheBackendRedis:
		c, err := NewRedis(ctx, RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			TTL:      cfg.TTL,
		})
		if err != nil {
			return nil, err
		}
		logger.Debug("using redis result cache",
			zap.String("op", "cache.New"),
			zap.String("addr", cfg.RedisAddr),
		)
		return c, nil
	default:
		return nil, fmt.Errorf("unknown cache backend: %s", cfg.Backend)
	}
}

// Key joins a namespace and the inputs of a calculation into a cache key.
// Floats are formatted with %v, which round-trips float64 exactly.
func Key(namespace string, parts ...interface{}) string {
	var b strings.Builder
	b.WriteString("calcsuite:")
	b.WriteString(namespace)
	for _, p := range parts {
		b.WriteByte(':')
		fmt.Fprintf(&b, "%v", p)
	}
	return b.String()
}

// Nop is a cache that stores nothing.
type Nop struct{}

// Get always misses.
func (Nop) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

// Set discards the value.
func (Nop) Set(context.Context, string, []byte) error { return nil }

// Backend returns "none".
func (Nop) Backend() string { return constants.CacheBackendNone }

// Close does nothing.
func (Nop) Close() error { return nil }
