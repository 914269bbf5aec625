// Copyright (c) 2026 vspaze
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/vspaze/console/internal/auth"
	"github.com/vspaze/console/internal/middleware"
	"github.com/vspaze/console/internal/render"
	"github.com/vspaze/console/internal/store"
)

// ProfileHandler edits the local admin account shown in the profile
// overlay. Profile data never leaves the console.
type ProfileHandler struct {
	queries  *store.Queries
	renderer *render.Renderer
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(db *sql.DB, renderer *render.Renderer) *ProfileHandler {
	return &ProfileHandler{queries: store.New(db), renderer: renderer}
}

// Update saves the editable profile fields.
// POST /admin/profile
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, RouteAdmin) {
		return
	}

	admin := middleware.GetAdmin(r)
	if admin == nil {
		http.Redirect(w, r, RouteLogin, http.StatusSeeOther)
		return
	}

	name := r.FormValue("name")
	email := r.FormValue("email")
	if name == "" || email == "" {
		flashError(w, r, h.renderer, RouteAdmin, "Name and email are required")
		return
	}

	err := h.queries.UpdateAdminProfile(r.Context(), store.UpdateAdminProfileParams{
		ID:        admin.ID,
		Name:      name,
		Email:     email,
		Phone:     r.FormValue("phone"),
		Address:   r.FormValue("address"),
		UpdatedAt: time.Now(),
	})
	if err != nil {
		logAndInternalError(w, "updating profile", "error", err, "admin_id", admin.ID)
		return
	}
	flashSuccess(w, r, h.renderer, RouteAdmin, "Profile updated")
}

// ChangePassword rotates the local account password.
// POST /admin/profile/password
func (h *ProfileHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, RouteAdmin) {
		return
	}

	admin := middleware.GetAdmin(r)
	if admin == nil {
		http.Redirect(w, r, RouteLogin, http.StatusSeeOther)
		return
	}

	current := r.FormValue("currentPassword")
	newPassword := r.FormValue("newPassword")
	confirm := r.FormValue("confirmPassword")

	if len(newPassword) < 6 {
		flashError(w, r, h.renderer, RouteAdmin, "New password must be at least 6 characters")
		return
	}
	if newPassword != confirm {
		flashError(w, r, h.renderer, RouteAdmin, "Passwords do not match")
		return
	}

	valid, err := auth.CheckPassword(current, admin.PasswordHash)
	if err != nil || !valid {
		flashError(w, r, h.renderer, RouteAdmin, "Current password is incorrect")
		return
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		logAndInternalError(w, "hashing password", "error", err)
		return
	}
	if err := h.queries.UpdateAdminPassword(r.Context(), admin.ID, hash, time.Now()); err != nil {
		logAndInternalError(w, "updating password", "error", err, "admin_id", admin.ID)
		return
	}
	flashSuccess(w, r, h.renderer, RouteAdmin, "Password changed")
}
