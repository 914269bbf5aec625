// Copyright (c) 2026 vspaze
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"database/sql"
	"net/http"
	"testing"
	"testing/fstest"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	_ "modernc.org/sqlite"

	"github.com/vspaze/console/internal/auth"
	"github.com/vspaze/console/internal/middleware"
	"github.com/vspaze/console/internal/model"
	"github.com/vspaze/console/internal/render"
)

// testDB creates an in-memory SQLite database with the console schema.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	schema := `
		CREATE TABLE admins (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			name TEXT NOT NULL,
			phone TEXT NOT NULL DEFAULT '',
			address TEXT NOT NULL DEFAULT '',
			role TEXT NOT NULL DEFAULT 'Super Administrator',
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL,
			last_login_at TIMESTAMP
		);

		CREATE TABLE settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at TIMESTAMP NOT NULL
		);

		CREATE TABLE announcements (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			public_id TEXT NOT NULL UNIQUE,
			title TEXT NOT NULL,
			slug TEXT NOT NULL,
			message TEXT NOT NULL,
			target_audience TEXT NOT NULL DEFAULT 'all',
			created_by TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		);

		CREATE TABLE notifications (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			type TEXT NOT NULL,
			title TEXT NOT NULL,
			message TEXT NOT NULL,
			read INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMP NOT NULL
		);

		CREATE TABLE activities (
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
		);

		CREATE TABLE pending_counts (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			students INTEGER NOT NULL DEFAULT 0,
			faculty INTEGER NOT NULL DEFAULT 0,
			refreshed_at TIMESTAMP NOT NULL
		);

		CREATE TABLE attendance (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			kind TEXT NOT NULL,
			name TEXT NOT NULL,
			detail TEXT NOT NULL DEFAULT '',
			date TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'Present',
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		);

		CREATE TABLE sessions (
			token TEXT PRIMARY KEY,
			data BLOB NOT NULL,
			expiry REAL NOT NULL
		);
	`
	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("failed to create test schema: %v", err)
	}

	t.Cleanup(func() { _ = db.Close() })
	return db
}

// testSessionManager creates an in-memory session manager.
func testSessionManager(t *testing.T) *scs.SessionManager {
	t.Helper()
	sm := scs.New()
	sm.Lifetime = 24 * time.Hour
	return sm
}

// testRenderer builds a renderer over stub templates: one page per admin
// screen plus the login page, each rendering its flash and name.
func testRenderer(t *testing.T, sm *scs.SessionManager) *render.Renderer {
	t.Helper()

	fsys := fstest.MapFS{
		"layouts/base.html": &fstest.MapFile{
			Data: []byte(`{{define "base"}}{{.Title}}|{{.Flash}}|{{block "body" .}}{{end}}{{end}}`),
		},
		"layouts/admin.html": &fstest.MapFile{
			Data: []byte(`{{define "body"}}{{template "content" .}}{{end}}`),
		},
		"auth/login.html": &fstest.MapFile{
			Data: []byte(`{{define "body"}}login{{end}}`),
		},
	}
	pages := []string{
		"dashboard", "students", "pending_students", "faculty", "pending_faculty",
		"courses", "batches", "attendance", "payments", "announcements",
		"settings", "notifications", "batch_details", "course_details", "faculty_details",
	}
	for _, page := range pages {
		fsys["admin/"+page+".html"] = &fstest.MapFile{
			Data: []byte(`{{define "content"}}` + page + `{{end}}`),
		}
	}

	r, err := render.New(render.Config{TemplatesFS: fsys, SessionManager: sm})
	if err != nil {
		t.Fatalf("building test renderer: %v", err)
	}
	return r
}

// createTestAdmin inserts an admin with a known password.
func createTestAdmin(t *testing.T, db *sql.DB, email, password string) model.Admin {
	t.Helper()

	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("hashing test password: %v", err)
	}

	now := time.Now()
	res, err := db.Exec(
		`INSERT INTO admins (email, password_hash, name, role, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		email, hash, "Test Admin", model.RoleSuperAdmin, now, now,
	)
	if err != nil {
		t.Fatalf("creating test admin: %v", err)
	}
	id, _ := res.LastInsertId()
	return model.Admin{ID: id, Email: email, PasswordHash: hash, Name: "Test Admin", Role: model.RoleSuperAdmin}
}

// requestWithURLParams adds chi URL parameters to a request.
func requestWithURLParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for key, value := range params {
		rctx.URLParams.Add(key, value)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// requestWithSession loads empty session data into the request context.
func requestWithSession(t *testing.T, sm *scs.SessionManager, r *http.Request) *http.Request {
	t.Helper()
	ctx, err := sm.Load(r.Context(), "")
	if err != nil {
		t.Fatalf("loading session: %v", err)
	}
	return r.WithContext(ctx)
}

// requestWithAdmin puts an admin into the request context the way the
// LoadAdmin middleware does.
func requestWithAdmin(r *http.Request, admin model.Admin) *http.Request {
	ctx := context.WithValue(r.Context(), middleware.ContextKeyAdmin, admin)
	return r.WithContext(ctx)
}

// assertStatus checks the response status code.
func assertStatus(t *testing.T, got, want int) {
	t.Helper()
	if got != want {
		t.Errorf("status = %d; want %d", got, want)
	}
}

// assertRedirect checks for a 303 redirect to location.
func assertRedirect(t *testing.T, res *http.Response, location string) {
	t.Helper()
	if res.StatusCode != http.StatusSeeOther {
		t.Fatalf("status = %d; want %d", res.StatusCode, http.StatusSeeOther)
	}
	if got := res.Header.Get("Location"); got != location {
		t.Errorf("redirect location = %q; want %q", got, location)
	}
}
