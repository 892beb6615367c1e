package cache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/iwvelando/calcsuite/pkg/constants"
)

// Memory is an in-process LRU cache with per-entry expiry.
type Memory struct {
	lru *expirable.LRU[string, []byte]
}

// NewMemory creates a cache holding at most size entries. A ttl of zero
// keeps entries until they are evicted by size.
func NewMemory(size int, ttl time.Duration) *Memory {
	return &Memory{lru: expirable.NewLRU[string, []byte](size, nil, ttl)}
}

// Get returns a cached value.
func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := m.lru.Get(key)
	return v, ok, nil
}

// Set stores a value, evicting the least recently used entry when full.
func (m *Memory) Set(_ context.Context, key string, value []byte) error {
	m.lru.Add(key, value)
	return nil
}

// Len returns the number of cached entries.
func (m *Memory) Len() int {
	return m.lru.Len()
}

// Backend returns "memory".
func (m *Memory) Backend() string { return constants.CacheBackendMemory }

// Close purges the cache.
func (m *Memory) Close() error {
	m.lru.Purge()
	return nil
}
