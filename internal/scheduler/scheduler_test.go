// Copyright (c) 2026 vspaze
// SPDX-License-Identifier: GPL-3.0-or-later

package scheduler

import (
	"context"
	"database/sql"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/vspaze/console/internal/cache"
	"github.com/vspaze/console/internal/model"
)

type fakeSource struct {
	calls  atomic.Int64
	counts model.PendingCounts
	err    error
}

func (f *fakeSource) PendingCounts(context.Context) (model.PendingCounts, error) {
	f.calls.Add(1)
	return f.counts, f.err
}

func testSnapshotDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	_, err = db.Exec(`CREATE TABLE pending_counts (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		students INTEGER NOT NULL DEFAULT 0,
		faculty INTEGER NOT NULL DEFAULT 0,
		refreshed_at TIMESTAMP NOT NULL
	)`)
	if err != nil {
		t.Fatalf("creating snapshot table: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestNew(t *testing.T) {
	caches := cache.NewMemoryManager(time.Minute)
	defer func() { _ = caches.Close() }()

	s := New(nil, &fakeSource{}, caches, 0, slog.Default())
	if s == nil {
		t.Fatal("New() returned nil")
	}
	if s.interval != time.Second {
		t.Errorf("interval clamped to %v, want 1s", s.interval)
	}
}

func TestScheduler_StartStop(t *testing.T) {
	caches := cache.NewMemoryManager(time.Minute)
	defer func() { _ = caches.Close() }()

	s := New(testSnapshotDB(t), &fakeSource{}, caches, time.Second, slog.Default())
	if err := s.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	s.Stop()
}

func TestRefreshPendingCounts(t *testing.T) {
	caches := cache.NewMemoryManager(time.Minute)
	defer func() { _ = caches.Close() }()
	db := testSnapshotDB(t)

	src := &fakeSource{counts: model.PendingCounts{Students: 5, Faculty: 2}}
	s := New(db, src, caches, time.Second, slog.Default())

	s.refreshPendingCounts()

	got, ok := caches.PendingCounts(context.Background())
	if !ok {
		t.Fatal("expected counts in cache after refresh")
	}
	if got.Students != 5 || got.Faculty != 2 {
		t.Errorf("cached counts = %+v, want {5 2}", got)
	}

	var students, faculty int
	if err := db.QueryRow("SELECT students, faculty FROM pending_counts WHERE id = 1").Scan(&students, &faculty); err != nil {
		t.Fatalf("reading snapshot: %v", err)
	}
	if students != 5 || faculty != 2 {
		t.Errorf("snapshot = {%d %d}, want {5 2}", students, faculty)
	}
}

func TestRefreshKeepsLastGoodValueOnFailure(t *testing.T) {
	caches := cache.NewMemoryManager(time.Minute)
	defer func() { _ = caches.Close() }()
	db := testSnapshotDB(t)

	src := &fakeSource{counts: model.PendingCounts{Students: 3}}
	s := New(db, src, caches, time.Second, slog.Default())
	s.refreshPendingCounts()

	src.err = context.DeadlineExceeded
	s.refreshPendingCounts()

	got, ok := caches.PendingCounts(context.Background())
	if !ok || got.Students != 3 {
		t.Errorf("stale value lost after failed refresh: %+v ok=%v", got, ok)
	}
}
