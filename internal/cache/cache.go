// Copyright (c) 2026 vspaze
// SPDX-License-Identifier: GPL-3.0-or-later

// Package cache holds the console's short-lived read caches: the sidebar
// pending-count badges and the dashboard aggregates. Backed by Redis when
// configured, otherwise by an in-process map.
package cache

import (
	"context"
	"time"
)

// Cache is the byte-level backend contract. All implementations must be
// thread-safe.
type Cache interface {
	// Get retrieves a value. Returns ErrCacheMiss if not found or expired.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with the specified TTL. A zero TTL uses the
	// backend's default.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a key.
	Delete(ctx context.Context, key string) error

	// Clear removes all entries.
	Clear(ctx context.Context) error

	// Close releases any resources held by the cache.
	Close() error
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
