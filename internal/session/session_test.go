// Copyright (c) 2026 vspaze
// SPDX-License-Identifier: GPL-3.0-or-later

package session

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "modernc.org/sqlite"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	// Create sessions table required by sqlite3store
	_, err = db.Exec(`
		CREATE TABLE sessions (
			token TEXT PRIMARY KEY,
			data BLOB NOT NULL,
			expiry REAL NOT NULL
		);
		CREATE INDEX sessions_expiry_idx ON sessions(expiry);
	`)
	if err != nil {
		t.Fatalf("failed to create sessions table: %v", err)
	}

	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestNew_DevMode(t *testing.T) {
	db := setupTestDB(t)

	sm := New(db, true)

	if sm == nil {
		t.Fatal("expected session manager to be non-nil")
	}
	if sm.Cookie.Secure {
		t.Error("expected Cookie.Secure = false in dev mode")
	}
	if sm.Lifetime != 24*time.Hour {
		t.Errorf("Lifetime = %v, want 24h", sm.Lifetime)
	}
}

func TestNew_ProdMode(t *testing.T) {
	db := setupTestDB(t)

	sm := New(db, false)

	if !sm.Cookie.Secure {
		t.Error("expected Cookie.Secure = true in prod mode")
	}
	if !sm.Cookie.HttpOnly {
		t.Error("expected Cookie.HttpOnly = true")
	}
}

func TestStore_LoginLogout(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(New(db, true))

	ctx, err := store.Manager().Load(context.Background(), "")
	if err != nil {
		t.Fatalf("loading session: %v", err)
	}

	if store.IsAuthenticated(ctx) {
		t.Error("fresh session reported authenticated")
	}

	store.Login(ctx, 42)
	if !store.IsAuthenticated(ctx) {
		t.Error("session not authenticated after Login")
	}
	if got := store.AdminID(ctx); got != 42 {
		t.Errorf("AdminID = %d, want 42", got)
	}

	if err := store.Logout(ctx); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if store.IsAuthenticated(ctx) {
		t.Error("session still authenticated after Logout")
	}
}

func TestStore_NavStateRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(New(db, true))

	ctx, err := store.Manager().Load(context.Background(), "")
	if err != nil {
		t.Fatalf("loading session: %v", err)
	}

	if got := store.NavState(ctx); got != "" {
		t.Errorf("fresh session NavState = %q, want empty", got)
	}

	raw := `{"activeSection":"courses","selectedCourse":"c1"}`
	store.SetNavState(ctx, raw)
	if got := store.NavState(ctx); got != raw {
		t.Errorf("NavState = %q, want %q", got, raw)
	}
}
