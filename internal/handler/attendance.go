// Copyright (c) 2026 vspaze
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/vspaze/console/internal/model"
	"github.com/vspaze/console/internal/render"
	"github.com/vspaze/console/internal/store"
)

// AttendanceHandler edits locally tracked attendance marks.
type AttendanceHandler struct {
	queries  *store.Queries
	renderer *render.Renderer
}

// NewAttendanceHandler creates a new AttendanceHandler.
func NewAttendanceHandler(db *sql.DB, renderer *render.Renderer) *AttendanceHandler {
	return &AttendanceHandler{queries: store.New(db), renderer: renderer}
}

// UpdateStatus changes one mark's status for the day being viewed.
// POST /admin/attendance/{id}
func (h *AttendanceHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, RouteAdmin) {
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		flashError(w, r, h.renderer, RouteAdmin, "Invalid attendance record")
		return
	}

	status := r.FormValue("status")
	if !model.ValidAttendanceStatus(status) {
		flashError(w, r, h.renderer, RouteAdmin, "Invalid attendance status")
		return
	}

	date := r.FormValue("date")
	if _, derr := time.Parse("2006-01-02", date); derr != nil {
		date = time.Now().Format("2006-01-02")
	}

	// Re-render the same tab and day after the edit.
	back := RouteAdmin + "?tab=" + url.QueryEscape(r.FormValue("tab")) + "&date=" + url.QueryEscape(date)

	if err := h.queries.UpdateAttendanceStatus(r.Context(), id, status, date, time.Now()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			flashError(w, r, h.renderer, back, "Attendance record not found")
			return
		}
		logAndInternalError(w, "updating attendance", "error", err, "id", id)
		return
	}
	flashSuccess(w, r, h.renderer, back, "Attendance updated")
}
