// Copyright (c) 2026 vspaze
// SPDX-License-Identifier: GPL-3.0-or-later

package render

import (
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"layouts/base.html": &fstest.MapFile{
			Data: []byte(`{{define "base"}}<!doctype html><title>{{.Title}}</title>{{block "body" .}}{{end}}{{end}}`),
		},
		"layouts/admin.html": &fstest.MapFile{
			Data: []byte(`{{define "body"}}<main>{{template "content" .}}</main>{{end}}`),
		},
		"partials/flash.html": &fstest.MapFile{
			Data: []byte(`{{define "flash"}}{{if .Flash}}<div class="{{.FlashType}}">{{.Flash}}</div>{{end}}{{end}}`),
		},
		"admin/home.html": &fstest.MapFile{
			Data: []byte(`{{define "content"}}{{template "flash" .}}home{{end}}`),
		},
		"auth/login.html": &fstest.MapFile{
			Data: []byte(`{{define "body"}}login{{end}}`),
		},
	}
}

func TestRenderAdminPage(t *testing.T) {
	r, err := New(Config{TemplatesFS: testFS()})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/admin", nil)
	if err := r.Render(w, req, "admin/home", TemplateData{Title: "Dashboard"}); err != nil {
		t.Fatalf("Render: %v", err)
	}

	body := w.Body.String()
	if !strings.Contains(body, "<title>Dashboard</title>") {
		t.Errorf("missing title in %q", body)
	}
	if !strings.Contains(body, "<main>") || !strings.Contains(body, "home") {
		t.Errorf("admin layout not applied in %q", body)
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("Content-Type = %q", ct)
	}
}

func TestRenderAuthPageSkipsAdminLayout(t *testing.T) {
	r, err := New(Config{TemplatesFS: testFS()})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/login", nil)
	if err := r.Render(w, req, "auth/login", TemplateData{Title: "Login"}); err != nil {
		t.Fatalf("Render: %v", err)
	}

	body := w.Body.String()
	if strings.Contains(body, "<main>") {
		t.Errorf("auth page picked up admin layout: %q", body)
	}
	if !strings.Contains(body, "login") {
		t.Errorf("login body missing: %q", body)
	}
}

func TestRenderUnknownTemplate(t *testing.T) {
	r, err := New(Config{TemplatesFS: testFS()})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/", nil)
	if err := r.Render(w, req, "admin/nope", TemplateData{}); err == nil {
		t.Error("expected error for unknown template")
	}
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{0, "₹0"},
		{500, "₹500"},
		{50000, "₹50,000"},
		{1234567.5, "₹12,34,567.50"},
		{crore, "₹1,00,00,000"},
		{-2500, "-₹2,500"},
	}
	for _, tt := range tests {
		if got := FormatMoney(tt.amount); got != tt.want {
			t.Errorf("FormatMoney(%v) = %q, want %q", tt.amount, got, tt.want)
		}
	}
}

const crore = 1e7

func TestInitials(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Rahul Sharma", "RS"},
		{"Admin", "A"},
		{"dr. anita rao", "DA"},
		{"", "?"},
		{"  ", "?"},
	}
	for _, tt := range tests {
		if got := Initials(tt.name); got != tt.want {
			t.Errorf("Initials(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}
