// Copyright (c) 2026 vspaze
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestStripTrailingSlash(t *testing.T) {
	handler := StripTrailingSlash(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		method   string
		path     string
		wantCode int
		wantLoc  string
	}{
		{http.MethodGet, "/admin/", http.StatusMovedPermanently, "/admin"},
		{http.MethodGet, "/admin", http.StatusOK, ""},
		{http.MethodGet, "/", http.StatusOK, ""},
		{http.MethodGet, "/admin/students/?q=john", http.StatusMovedPermanently, "/admin/students?q=john"},
		{http.MethodGet, "/admin/students//", http.StatusMovedPermanently, "/admin/students"},
		{http.MethodPost, "/admin/settings/", http.StatusPermanentRedirect, "/admin/settings"},
	}

	for _, tt := range tests {
		r := httptest.NewRequest(tt.method, tt.path, nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)

		if w.Code != tt.wantCode {
			t.Errorf("%s: code = %d, want %d", tt.path, w.Code, tt.wantCode)
		}
		if tt.wantLoc != "" && w.Header().Get("Location") != tt.wantLoc {
			t.Errorf("%s: location = %q, want %q", tt.path, w.Header().Get("Location"), tt.wantLoc)
		}
	}
}

func TestTimeout(t *testing.T) {
	slow := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(time.Second):
			w.WriteHeader(http.StatusOK)
		case <-r.Context().Done():
		}
	})

	handler := Timeout(20 * time.Millisecond)(slow)
	r := httptest.NewRequest(http.MethodGet, "/admin", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("code = %d, want 503", w.Code)
	}
}

func TestSecurityHeaders(t *testing.T) {
	handler := SecurityHeaders(DefaultSecurityHeadersConfig(false))(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	r := httptest.NewRequest(http.MethodGet, "/admin", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	if got := w.Header().Get("X-Frame-Options"); got != "DENY" {
		t.Errorf("X-Frame-Options = %q", got)
	}
	if got := w.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q", got)
	}
	if w.Header().Get("Strict-Transport-Security") == "" {
		t.Error("missing HSTS header in prod mode")
	}

	// Dev mode drops HSTS.
	devHandler := SecurityHeaders(DefaultSecurityHeadersConfig(true))(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	w = httptest.NewRecorder()
	devHandler.ServeHTTP(w, r)
	if w.Header().Get("Strict-Transport-Security") != "" {
		t.Error("unexpected HSTS header in dev mode")
	}
}
