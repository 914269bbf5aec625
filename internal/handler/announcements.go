// Copyright (c) 2026 vspaze
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/vspaze/console/internal/middleware"
	"github.com/vspaze/console/internal/model"
	"github.com/vspaze/console/internal/render"
	"github.com/vspaze/console/internal/store"
	"github.com/vspaze/console/internal/util"
)

// AnnouncementHandler manages locally stored announcements. Messages are
// markdown, rendered and sanitized at display time.
type AnnouncementHandler struct {
	queries  *store.Queries
	renderer *render.Renderer
}

// NewAnnouncementHandler creates a new AnnouncementHandler.
func NewAnnouncementHandler(db *sql.DB, renderer *render.Renderer) *AnnouncementHandler {
	return &AnnouncementHandler{queries: store.New(db), renderer: renderer}
}

// Create publishes an announcement.
// POST /admin/announcements
func (h *AnnouncementHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, RouteAdmin) {
		return
	}

	title := r.FormValue("title")
	message := r.FormValue("message")
	if title == "" || message == "" {
		flashError(w, r, h.renderer, RouteAdmin, "Title and message are required")
		return
	}

	createdBy := ""
	if admin := middleware.GetAdmin(r); admin != nil {
		createdBy = admin.Name
	}

	now := time.Now()
	_, err := h.queries.CreateAnnouncement(r.Context(), store.CreateAnnouncementParams{
		PublicID:       uuid.NewString(),
		Title:          title,
		Slug:           util.Slugify(title),
		Message:        message,
		TargetAudience: audienceFromForm(r),
		CreatedBy:      createdBy,
		CreatedAt:      now,
		UpdatedAt:      now,
	})
	if err != nil {
		logAndInternalError(w, "creating announcement", "error", err)
		return
	}
	flashSuccess(w, r, h.renderer, RouteAdmin, "Announcement published")
}

// Update edits an announcement.
// POST /admin/announcements/{id}
func (h *AnnouncementHandler) Update(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, RouteAdmin) {
		return
	}

	title := r.FormValue("title")
	message := r.FormValue("message")
	if title == "" || message == "" {
		flashError(w, r, h.renderer, RouteAdmin, "Title and message are required")
		return
	}

	err := h.queries.UpdateAnnouncement(r.Context(), store.UpdateAnnouncementParams{
		PublicID:       chi.URLParam(r, "id"),
		Title:          title,
		Slug:           util.Slugify(title),
		Message:        message,
		TargetAudience: audienceFromForm(r),
		UpdatedAt:      time.Now(),
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			flashError(w, r, h.renderer, RouteAdmin, "Announcement not found")
			return
		}
		logAndInternalError(w, "updating announcement", "error", err)
		return
	}
	flashSuccess(w, r, h.renderer, RouteAdmin, "Announcement updated")
}

// Delete removes an announcement.
// POST /admin/announcements/{id}/delete
func (h *AnnouncementHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.queries.DeleteAnnouncement(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			flashError(w, r, h.renderer, RouteAdmin, "Announcement not found")
			return
		}
		logAndInternalError(w, "deleting announcement", "error", err)
		return
	}
	flashSuccess(w, r, h.renderer, RouteAdmin, "Announcement deleted")
}

func audienceFromForm(r *http.Request) string {
	switch a := r.FormValue("targetAudience"); a {
	case model.AudienceStudents, model.AudienceFaculty:
		return a
	default:
		return model.AudienceAll
	}
}
