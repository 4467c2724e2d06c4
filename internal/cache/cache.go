// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package cache provides the caching infrastructure: a byte-oriented Cacher
// interface with in-memory and Redis implementations, plus a typed cache for
// site settings on top of it.
package cache

import (
	"context"
	"time"
)

// Cacher is the interface all cache implementations satisfy.
// Implementations must be safe for concurrent use.
type Cacher interface {
	// Get retrieves a value. Returns ErrCacheMiss if absent or expired.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with the specified TTL. A TTL of 0 uses the default.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a key from the cache.
	Delete(ctx context.Context, key string) error

	// Clear removes all entries from the cache.
	Clear(ctx context.Context) error

	// Has checks if a key exists in the cache (and is not expired).
	Has(ctx context.Context, key string) (bool, error)

	// Close releases any resources held by the cache.
	Close() error
}

// Stats holds cache hit/miss counters.
type Stats struct {
	Hits    int64   `json:"hits"`
	Misses  int64   `json:"misses"`
	Sets    int64   `json:"sets"`
	Items   int     `json:"items"`
	HitRate float64 `json:"hit_rate"`
}

// StatsProvider is an optional interface for caches that track statistics.
type StatsProvider interface {
	Stats() Stats
}

// Error represents an error type for cache operations.
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	// ErrCacheMiss indicates the key was not found in cache or has expired.
	ErrCacheMiss Error = "cache miss"

	// ErrCacheClosed indicates the cache has been closed.
	ErrCacheClosed Error = "cache closed"
)

// Options selects and configures the cache backend.
type Options struct {
	// RedisURL selects the Redis backend when non-empty.
	RedisURL string
	// Prefix is prepended to all Redis keys.
	Prefix string
	// DefaultTTL is the expiration applied when Set receives a zero TTL.
	DefaultTTL time.Duration
	// MaxSize caps the number of in-memory entries (0 = unlimited).
	MaxSize int
}

// New returns a Redis-backed cache when a URL is configured, otherwise an
// in-memory cache.
func New(opts Options) (Cacher, error) {
	if opts.RedisURL != "" {
		return NewRedisCache(opts)
	}
	return NewMemoryCache(opts), nil
}
