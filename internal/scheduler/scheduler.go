// Copyright (c) 2026 vspaze
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs the console's periodic jobs: the pending-count
// badge refresh on a short tick and a daily audit-log trim.
package scheduler

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/vspaze/console/internal/cache"
	"github.com/vspaze/console/internal/model"
	"github.com/vspaze/console/internal/store"
)

// activityRetention is how long audit entries are kept.
const activityRetention = 90 * 24 * time.Hour

// CountSource fetches the current pending registration counts.
type CountSource interface {
	PendingCounts(ctx context.Context) (model.PendingCounts, error)
}

// Scheduler drives the badge refresh and maintenance jobs.
type Scheduler struct {
	db     *sql.DB
	source CountSource
	caches *cache.Manager
	cron   *cron.Cron
	logger *slog.Logger

	interval time.Duration
}

// New creates a scheduler refreshing badges every interval. Sub-minute
// intervals are supported; the badge poll defaults to one second.
func New(db *sql.DB, source CountSource, caches *cache.Manager, interval time.Duration, logger *slog.Logger) *Scheduler {
	if interval < time.Second {
		interval = time.Second
	}
	return &Scheduler{
		db:       db,
		source:   source,
		caches:   caches,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger,
		interval: interval,
	}
}

// Start registers and starts all jobs.
func (s *Scheduler) Start() error {
	spec := fmt.Sprintf("@every %s", s.interval)
	if _, err := s.cron.AddFunc(spec, s.refreshPendingCounts); err != nil {
		return fmt.Errorf("adding badge refresh job: %w", err)
	}

	// Trim old audit entries at 03:10 every day.
	if _, err := s.cron.AddFunc("0 10 3 * * *", s.trimActivities); err != nil {
		return fmt.Errorf("adding activity trim job: %w", err)
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()), "badge_interval", s.interval)
	return nil
}

// Stop gracefully stops the scheduler, waiting for running jobs.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

// refreshPendingCounts polls the platform API and updates the cache and the
// local snapshot. Failures leave the previous values in place; the badge is
// allowed to go stale rather than flicker to zero.
func (s *Scheduler) refreshPendingCounts() {
	ctx, cancel := context.WithTimeout(context.Background(), s.interval)
	defer cancel()

	counts, err := s.source.PendingCounts(ctx)
	if err != nil {
		s.logger.Debug("badge refresh failed", "error", err)
		return
	}

	s.caches.SetPendingCounts(ctx, counts)

	if err := store.New(s.db).UpsertPendingCounts(ctx, counts, time.Now()); err != nil {
		s.logger.Warn("persisting badge snapshot", "error", err)
	}
}

// trimActivities removes audit entries older than the retention window.
func (s *Scheduler) trimActivities() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	n, err := store.New(s.db).PurgeActivitiesBefore(ctx, time.Now().Add(-activityRetention))
	if err != nil {
		s.logger.Error("trimming activities", "error", err)
		return
	}
	if n > 0 {
		s.logger.Info("trimmed old activities", "removed", n)
	}
}
