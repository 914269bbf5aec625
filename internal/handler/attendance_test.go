// Copyright (c) 2026 vspaze
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"
	"time"

	"github.com/vspaze/console/internal/model"
	"github.com/vspaze/console/internal/session"
	"github.com/vspaze/console/internal/store"
)

func newAttendanceFixture(t *testing.T) (*AttendanceHandler, *store.Queries, *session.Store) {
	t.Helper()
	db := testDB(t)
	sm := testSessionManager(t)
	return NewAttendanceHandler(db, testRenderer(t, sm)), store.New(db), session.NewStore(sm)
}

func seedMark(t *testing.T, queries *store.Queries, date string) model.Attendance {
	t.Helper()
	mark, err := queries.CreateAttendance(t.Context(), store.CreateAttendanceParams{
		Kind:      model.AttendanceKindStudent,
		Name:      "Aarav Sharma",
		Detail:    "Batch A-2024",
		Date:      date,
		Status:    model.AttendanceStatusAbsent,
		CreatedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("seeding attendance: %v", err)
	}
	return mark
}

func TestUpdateAttendanceStatus(t *testing.T) {
	h, queries, sessions := newAttendanceFixture(t)
	date := "2026-08-27"
	mark := seedMark(t, queries, date)

	req := postForm(t, sessions, "/admin/attendance/1", url.Values{
		"status": {model.AttendanceStatusPresent},
		"tab":    {model.AttendanceKindStudent},
		"date":   {date},
	})
	req = requestWithURLParams(req, map[string]string{"id": strconv.FormatInt(mark.ID, 10)})
	w := httptest.NewRecorder()
	h.UpdateStatus(w, req)
	assertRedirect(t, w.Result(), RouteAdmin+"?tab=student&date=2026-08-27")

	marks, err := queries.ListAttendanceByDate(req.Context(), model.AttendanceKindStudent, date)
	if err != nil {
		t.Fatalf("listing attendance: %v", err)
	}
	if len(marks) != 1 || marks[0].Status != model.AttendanceStatusPresent {
		t.Errorf("marks = %+v, want one present mark", marks)
	}
}

func TestUpdateAttendanceRejectsUnknownStatus(t *testing.T) {
	h, queries, sessions := newAttendanceFixture(t)
	date := "2026-08-27"
	mark := seedMark(t, queries, date)

	req := postForm(t, sessions, "/admin/attendance/1", url.Values{
		"status": {"Teleported"},
		"date":   {date},
	})
	req = requestWithURLParams(req, map[string]string{"id": strconv.FormatInt(mark.ID, 10)})
	w := httptest.NewRecorder()
	h.UpdateStatus(w, req)
	assertRedirect(t, w.Result(), RouteAdmin)

	marks, err := queries.ListAttendanceByDate(req.Context(), model.AttendanceKindStudent, date)
	if err != nil {
		t.Fatalf("listing attendance: %v", err)
	}
	if marks[0].Status != model.AttendanceStatusAbsent {
		t.Errorf("status = %q, want unchanged", marks[0].Status)
	}
}

func TestUpdateAttendanceUnknownRecord(t *testing.T) {
	h, _, sessions := newAttendanceFixture(t)

	req := postForm(t, sessions, "/admin/attendance/99", url.Values{
		"status": {model.AttendanceStatusLate},
		"tab":    {model.AttendanceKindFaculty},
		"date":   {"2026-08-27"},
	})
	req = requestWithURLParams(req, map[string]string{"id": "99"})
	w := httptest.NewRecorder()
	h.UpdateStatus(w, req)
	assertRedirect(t, w.Result(), RouteAdmin+"?tab=faculty&date=2026-08-27")
}

func TestUpdateAttendanceBadDateFallsBackToToday(t *testing.T) {
	h, queries, sessions := newAttendanceFixture(t)
	today := time.Now().Format("2006-01-02")
	mark := seedMark(t, queries, "not-a-date-seed")

	req := postForm(t, sessions, "/admin/attendance/1", url.Values{
		"status": {model.AttendanceStatusHalfDay},
		"tab":    {model.AttendanceKindStudent},
		"date":   {"yesterday-ish"},
	})
	req = requestWithURLParams(req, map[string]string{"id": strconv.FormatInt(mark.ID, 10)})
	w := httptest.NewRecorder()
	h.UpdateStatus(w, req)
	assertRedirect(t, w.Result(), RouteAdmin+"?tab=student&date="+today)

	// The edit re-dates the mark to the viewed day.
	marks, err := queries.ListAttendanceByDate(req.Context(), model.AttendanceKindStudent, today)
	if err != nil {
		t.Fatalf("listing attendance: %v", err)
	}
	if len(marks) != 1 || marks[0].Status != model.AttendanceStatusHalfDay {
		t.Errorf("marks = %+v", marks)
	}
}
