// Copyright (c) 2026 vspaze
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/vspaze/console/internal/geoip"
	"github.com/vspaze/console/internal/middleware"
	"github.com/vspaze/console/internal/service"
	"github.com/vspaze/console/internal/session"
)

func newAuthHandler(t *testing.T) (*AuthHandler, *session.Store) {
	t.Helper()
	db := testDB(t)
	sm := testSessionManager(t)
	sessions := session.NewStore(sm)
	createTestAdmin(t, db, "admin@vspaze.com", "changeme")

	cfg := middleware.DefaultLoginProtectionConfig()
	cfg.IPRateLimit = 1000 // not under test here
	cfg.IPBurst = 1000

	h := NewAuthHandler(db, testRenderer(t, sm), sessions,
		service.NewActivityService(db, geoip.NewLookup()),
		middleware.NewLoginProtection(cfg))
	return h, sessions
}

func postLogin(t *testing.T, h *AuthHandler, sessions *session.Store, email, password string) *http.Response {
	t.Helper()
	form := url.Values{"email": {email}, "password": {password}}
	req := httptest.NewRequest("POST", RouteLogin, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req = requestWithSession(t, sessions.Manager(), req)

	w := httptest.NewRecorder()
	h.Login(w, req)
	return w.Result()
}

func TestLoginSuccess(t *testing.T) {
	h, sessions := newAuthHandler(t)
	res := postLogin(t, h, sessions, "admin@vspaze.com", "changeme")
	assertRedirect(t, res, RouteAdmin)
}

func TestLoginWrongPassword(t *testing.T) {
	h, sessions := newAuthHandler(t)
	res := postLogin(t, h, sessions, "admin@vspaze.com", "wrong")
	assertRedirect(t, res, RouteLogin)
}

func TestLoginUnknownAccount(t *testing.T) {
	h, sessions := newAuthHandler(t)
	res := postLogin(t, h, sessions, "nobody@vspaze.com", "whatever")
	// Unknown accounts behave exactly like wrong passwords.
	assertRedirect(t, res, RouteLogin)
}

func TestLoginMissingFields(t *testing.T) {
	h, sessions := newAuthHandler(t)
	res := postLogin(t, h, sessions, "", "")
	assertRedirect(t, res, RouteLogin)
}

func TestLoginLockoutAfterRepeatedFailures(t *testing.T) {
	h, sessions := newAuthHandler(t)

	for i := 0; i < 5; i++ {
		res := postLogin(t, h, sessions, "admin@vspaze.com", "wrong")
		assertRedirect(t, res, RouteLogin)
	}

	// Even the correct password is refused while locked.
	res := postLogin(t, h, sessions, "admin@vspaze.com", "changeme")
	assertRedirect(t, res, RouteLogin)
}

func TestLoginFormRedirectsAuthenticated(t *testing.T) {
	h, sessions := newAuthHandler(t)

	req := httptest.NewRequest("GET", RouteLogin, nil)
	req = requestWithSession(t, sessions.Manager(), req)
	sessions.Login(req.Context(), 1)

	w := httptest.NewRecorder()
	h.LoginForm(w, req)
	assertRedirect(t, w.Result(), RouteAdmin)
}

func TestLoginFormRendersForAnonymous(t *testing.T) {
	h, sessions := newAuthHandler(t)

	req := httptest.NewRequest("GET", RouteLogin, nil)
	req = requestWithSession(t, sessions.Manager(), req)

	w := httptest.NewRecorder()
	h.LoginForm(w, req)
	assertStatus(t, w.Code, http.StatusOK)
	if !strings.Contains(w.Body.String(), "login") {
		t.Errorf("login page body = %q", w.Body.String())
	}
}

func TestLogout(t *testing.T) {
	h, sessions := newAuthHandler(t)

	req := httptest.NewRequest("POST", RouteLogout, nil)
	req = requestWithSession(t, sessions.Manager(), req)
	sessions.Login(req.Context(), 1)

	w := httptest.NewRecorder()
	h.Logout(w, req)
	assertRedirect(t, w.Result(), RouteLogin)

	if sessions.IsAuthenticated(req.Context()) {
		t.Error("session still authenticated after logout")
	}
}
