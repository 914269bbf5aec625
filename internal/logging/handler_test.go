// Copyright (c) 2026 vspaze
// SPDX-License-Identifier: GPL-3.0-or-later

package logging

import (
	"database/sql"
	"io"
	"log/slog"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/vspaze/console/internal/model"
)

func testActivityDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	_, err = db.Exec(`CREATE TABLE activities (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		level TEXT NOT NULL,
		category TEXT NOT NULL,
		message TEXT NOT NULL,
		admin_id INTEGER,
		ip TEXT NOT NULL DEFAULT '',
		user_agent TEXT NOT NULL DEFAULT '',
		country TEXT NOT NULL DEFAULT '',
		metadata TEXT NOT NULL DEFAULT '{}',
		created_at TIMESTAMP NOT NULL
	)`)
	if err != nil {
		t.Fatalf("creating activities table: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func testLogger(db *sql.DB) *slog.Logger {
	inner := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(NewActivityLogHandler(inner, db))
}

func countActivities(t *testing.T, db *sql.DB) int {
	t.Helper()
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM activities").Scan(&n); err != nil {
		t.Fatalf("counting activities: %v", err)
	}
	return n
}

func TestWarnAndErrorAreMirrored(t *testing.T) {
	db := testActivityDB(t)
	logger := testLogger(db)

	logger.Warn("something odd", "detail", "x")
	logger.Error("something broke")

	if got := countActivities(t, db); got != 2 {
		t.Errorf("activities = %d, want 2", got)
	}

	var level string
	if err := db.QueryRow("SELECT level FROM activities ORDER BY id LIMIT 1").Scan(&level); err != nil {
		t.Fatal(err)
	}
	if level != model.ActivityLevelWarning {
		t.Errorf("level = %q, want warning", level)
	}
}

func TestInfoAndDebugAreNotMirrored(t *testing.T) {
	db := testActivityDB(t)
	logger := testLogger(db)

	logger.Info("routine")
	logger.Debug("noise")

	if got := countActivities(t, db); got != 0 {
		t.Errorf("activities = %d, want 0", got)
	}
}

func TestCategoryExtraction(t *testing.T) {
	db := testActivityDB(t)
	logger := testLogger(db)

	logger.Warn("whatever", "category", model.ActivityCategoryApproval)
	logger.Warn("failed login attempt")
	logger.Warn("disk almost full")

	rows, err := db.Query("SELECT category FROM activities ORDER BY id")
	if err != nil {
		t.Fatal(err)
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			t.Fatal(err)
		}
		categories = append(categories, c)
	}

	want := []string{model.ActivityCategoryApproval, model.ActivityCategoryAuth, model.ActivityCategorySystem}
	for i, w := range want {
		if categories[i] != w {
			t.Errorf("category[%d] = %q, want %q", i, categories[i], w)
		}
	}
}

func TestMetadataSkipsCategoryAttr(t *testing.T) {
	db := testActivityDB(t)
	logger := testLogger(db)

	logger.Warn("msg", "category", "auth", "email", "admin@vspaze.com")

	var metadata string
	if err := db.QueryRow("SELECT metadata FROM activities").Scan(&metadata); err != nil {
		t.Fatal(err)
	}
	if metadata != `{"email":"admin@vspaze.com"}` {
		t.Errorf("metadata = %s", metadata)
	}
}
