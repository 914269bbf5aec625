// Copyright (c) 2026 vspaze
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/vspaze/console/internal/render"
	"github.com/vspaze/console/internal/store"
)

// NotificationHandler manages the local notification inbox.
type NotificationHandler struct {
	queries  *store.Queries
	renderer *render.Renderer
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(db *sql.DB, renderer *render.Renderer) *NotificationHandler {
	return &NotificationHandler{queries: store.New(db), renderer: renderer}
}

// MarkRead marks one notification as read.
// POST /admin/notifications/{id}/read
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, ok := h.notificationID(w, r)
	if !ok {
		return
	}
	if err := h.queries.MarkNotificationRead(r.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			flashError(w, r, h.renderer, RouteAdmin, "Notification not found")
			return
		}
		logAndInternalError(w, "marking notification read", "error", err, "id", id)
		return
	}
	http.Redirect(w, r, RouteAdmin, http.StatusSeeOther)
}

// MarkAllRead marks the whole inbox read.
// POST /admin/notifications/read-all
func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	if err := h.queries.MarkAllNotificationsRead(r.Context()); err != nil {
		logAndInternalError(w, "marking notifications read", "error", err)
		return
	}
	flashSuccess(w, r, h.renderer, RouteAdmin, "All notifications marked as read")
}

// Delete removes one notification.
// POST /admin/notifications/{id}/delete
func (h *NotificationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.notificationID(w, r)
	if !ok {
		return
	}
	if err := h.queries.DeleteNotification(r.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			flashError(w, r, h.renderer, RouteAdmin, "Notification not found")
			return
		}
		logAndInternalError(w, "deleting notification", "error", err, "id", id)
		return
	}
	http.Redirect(w, r, RouteAdmin, http.StatusSeeOther)
}

func (h *NotificationHandler) notificationID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		flashError(w, r, h.renderer, RouteAdmin, "Invalid notification")
		return 0, false
	}
	return id, true
}
