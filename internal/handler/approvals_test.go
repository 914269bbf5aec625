// Copyright (c) 2026 vspaze
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/vspaze/console/internal/approval"
	"github.com/vspaze/console/internal/gateway"
	"github.com/vspaze/console/internal/geoip"
	"github.com/vspaze/console/internal/service"
	"github.com/vspaze/console/internal/session"
)

// approvalBackend records the approval calls the handler makes.
type approvalBackend struct {
	approveCalls int
	deleteCalls  int
	lastPayload  gateway.StudentApproval
}

func newApprovalFixture(t *testing.T) (*ApprovalHandler, *approvalBackend, *session.Store) {
	t.Helper()
	backend := &approvalBackend{}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /admin/students/pending", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"students":[{"_id":"p1","name":"Aarav Sharma","email":"aarav@example.com"}]}`))
	})
	mux.HandleFunc("PUT /admin/students/approve/{id}", func(w http.ResponseWriter, r *http.Request) {
		backend.approveCalls++
		if err := json.NewDecoder(r.Body).Decode(&backend.lastPayload); err != nil {
			t.Errorf("decoding approval payload: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"student":{"_id":"s1","name":"Aarav Sharma"}}`))
	})
	mux.HandleFunc("DELETE /admin/students/{id}", func(w http.ResponseWriter, r *http.Request) {
		backend.deleteCalls++
		_, _ = w.Write([]byte(`{}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	db := testDB(t)
	sm := testSessionManager(t)
	sessions := session.NewStore(sm)
	api := gateway.New(srv.URL, "", 5*time.Second)
	h := NewApprovalHandler(approval.NewService(api), testRenderer(t, sm), sessions,
		service.NewActivityService(db, geoip.NewLookup()))
	return h, backend, sessions
}

func postApproval(t *testing.T, sessions *session.Store, target, id string, form url.Values) *http.Request {
	t.Helper()
	req := httptest.NewRequest("POST", target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req = requestWithSession(t, sessions.Manager(), req)
	return requestWithURLParams(req, map[string]string{"id": id})
}

func TestApproveStudentStashesCredentials(t *testing.T) {
	h, backend, sessions := newApprovalFixture(t)

	req := postApproval(t, sessions, "/admin/pending/students/p1/approve", "p1",
		url.Values{"password": {"s3cret99"}, "totalFee": {"45000"}})
	w := httptest.NewRecorder()
	h.ApproveStudent(w, req)
	assertRedirect(t, w.Result(), RouteAdmin)

	if backend.approveCalls != 1 {
		t.Fatalf("approve calls = %d, want 1", backend.approveCalls)
	}
	if backend.lastPayload.Password != "s3cret99" || backend.lastPayload.TotalFee != 45000 {
		t.Errorf("payload = %+v", backend.lastPayload)
	}
	if backend.lastPayload.EnrolledCourses == nil {
		t.Error("enrolledCourses serialized as null, want empty list")
	}

	raw := sessions.PopCredentials(req.Context())
	if raw == "" {
		t.Fatal("no credentials stashed")
	}
	var creds approval.Credentials
	if err := json.Unmarshal([]byte(raw), &creds); err != nil {
		t.Fatalf("decoding credentials: %v", err)
	}
	if creds.Email != "aarav@example.com" || creds.Password != "s3cret99" {
		t.Errorf("credentials = %+v", creds)
	}

	// One-time disclosure: a second pop finds nothing.
	if again := sessions.PopCredentials(req.Context()); again != "" {
		t.Errorf("credentials popped twice: %q", again)
	}
}

func TestApproveStudentRejectsShortPassword(t *testing.T) {
	h, backend, sessions := newApprovalFixture(t)

	req := postApproval(t, sessions, "/admin/pending/students/p1/approve", "p1",
		url.Values{"password": {"abc"}, "totalFee": {"45000"}})
	w := httptest.NewRecorder()
	h.ApproveStudent(w, req)
	assertRedirect(t, w.Result(), RouteAdmin)

	if backend.approveCalls != 0 {
		t.Errorf("approve calls = %d, want 0: invalid draft must not reach the backend", backend.approveCalls)
	}
	if raw := sessions.PopCredentials(req.Context()); raw != "" {
		t.Errorf("credentials stashed despite validation failure: %q", raw)
	}
}

func TestApproveStudentRejectsZeroFee(t *testing.T) {
	h, backend, sessions := newApprovalFixture(t)

	req := postApproval(t, sessions, "/admin/pending/students/p1/approve", "p1",
		url.Values{"password": {"s3cret99"}, "totalFee": {"not-a-number"}})
	w := httptest.NewRecorder()
	h.ApproveStudent(w, req)
	assertRedirect(t, w.Result(), RouteAdmin)

	if backend.approveCalls != 0 {
		t.Errorf("approve calls = %d, want 0", backend.approveCalls)
	}
}

func TestApproveStudentAlreadyHandled(t *testing.T) {
	h, backend, sessions := newApprovalFixture(t)

	req := postApproval(t, sessions, "/admin/pending/students/gone/approve", "gone",
		url.Values{"password": {"s3cret99"}, "totalFee": {"45000"}})
	w := httptest.NewRecorder()
	h.ApproveStudent(w, req)
	assertRedirect(t, w.Result(), RouteAdmin)

	if backend.approveCalls != 0 {
		t.Errorf("approve calls = %d, want 0 for an item no longer pending", backend.approveCalls)
	}
}

func TestRejectStudent(t *testing.T) {
	h, backend, sessions := newApprovalFixture(t)

	req := postApproval(t, sessions, "/admin/pending/students/p1/reject", "p1", url.Values{})
	w := httptest.NewRecorder()
	h.RejectStudent(w, req)
	assertRedirect(t, w.Result(), RouteAdmin)

	if backend.deleteCalls != 1 {
		t.Errorf("delete calls = %d, want 1", backend.deleteCalls)
	}
}
