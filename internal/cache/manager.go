// Copyright (c) 2026 vspaze
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/vspaze/console/internal/model"
)

// Cache keys
const (
	keyPendingCounts  = "pending_counts"
	keyDashboardStats = "dashboard_stats"
)

// Options configures the Manager's backend.
type Options struct {
	// RedisURL selects the Redis backend when non-empty. The manager falls
	// back to memory if the connection fails.
	RedisURL string
	Prefix   string
	TTL      time.Duration
	MaxSize  int
}

// Manager provides the typed caches the console reads on every shell
// render: pending-count badges and dashboard aggregates.
type Manager struct {
	backend Cache
	ttl     time.Duration
}

// NewManager creates a Manager with the configured backend.
func NewManager(opts Options) *Manager {
	ttl := opts.TTL
	if ttl == 0 {
		ttl = time.Minute
	}

	if opts.RedisURL != "" {
		rc, err := NewRedisCache(RedisCacheOptions{
			URL:            opts.RedisURL,
			Prefix:         opts.Prefix,
			DefaultTTL:     ttl,
			ConnectTimeout: 5 * time.Second,
		})
		if err == nil {
			slog.Info("cache backend: redis", "prefix", opts.Prefix)
			return &Manager{backend: rc, ttl: ttl}
		}
		slog.Warn("redis unavailable, falling back to memory cache", "error", err)
	}

	mc := NewMemoryCache(MemoryCacheOptions{
		DefaultTTL:      ttl,
		MaxSize:         opts.MaxSize,
		CleanupInterval: time.Minute,
	})
	return &Manager{backend: mc, ttl: ttl}
}

// NewMemoryManager creates a memory-backed Manager. Used by tests.
func NewMemoryManager(ttl time.Duration) *Manager {
	return NewManager(Options{TTL: ttl})
}

// PendingCounts returns the cached badge counts. ok is false on a miss.
func (m *Manager) PendingCounts(ctx context.Context) (model.PendingCounts, bool) {
	var c model.PendingCounts
	return c, m.get(ctx, keyPendingCounts, &c)
}

// SetPendingCounts stores fresh badge counts.
func (m *Manager) SetPendingCounts(ctx context.Context, c model.PendingCounts) {
	m.set(ctx, keyPendingCounts, c)
}

// DashboardStats returns the cached dashboard aggregates. ok is false on a miss.
func (m *Manager) DashboardStats(ctx context.Context) (model.DashboardStats, bool) {
	var s model.DashboardStats
	return s, m.get(ctx, keyDashboardStats, &s)
}

// SetDashboardStats stores fresh dashboard aggregates.
func (m *Manager) SetDashboardStats(ctx context.Context, s model.DashboardStats) {
	m.set(ctx, keyDashboardStats, s)
}

// ClearAll drops all cached entries.
func (m *Manager) ClearAll(ctx context.Context) {
	if err := m.backend.Clear(ctx); err != nil {
		slog.Warn("clearing cache", "error", err)
	}
}

// Close releases the backend.
func (m *Manager) Close() error {
	return m.backend.Close()
}

func (m *Manager) get(ctx context.Context, key string, out any) bool {
	raw, err := m.backend.Get(ctx, key)
	if err != nil {
		if err != ErrCacheMiss {
			slog.Warn("cache read failed", "key", key, "error", err)
		}
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		slog.Warn("cache entry corrupt", "key", key, "error", err)
		return false
	}
	return true
}

func (m *Manager) set(ctx context.Context, key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		slog.Warn("cache encode failed", "key", key, "error", err)
		return
	}
	if err := m.backend.Set(ctx, key, raw, m.ttl); err != nil {
		slog.Warn("cache write failed", "key", key, "error", err)
	}
}
