// Copyright (c) 2026 vspaze
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vspaze/console/internal/gateway"
	"github.com/vspaze/console/internal/render"
)

// FacultyHandler handles faculty mutations. New faculty only arrive
// through the approval workflow, so there is no create form here.
type FacultyHandler struct {
	api      *gateway.Client
	renderer *render.Renderer
}

// NewFacultyHandler creates a new FacultyHandler.
func NewFacultyHandler(api *gateway.Client, renderer *render.Renderer) *FacultyHandler {
	return &FacultyHandler{api: api, renderer: renderer}
}

// Delete removes a faculty member.
// POST /admin/faculty/{id}/delete
func (h *FacultyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.api.DeleteFaculty(r.Context(), id); err != nil {
		gatewayFailed(w, r, h.renderer, "deleting faculty", err)
		return
	}
	flashSuccess(w, r, h.renderer, RouteAdmin, "Faculty member removed")
}
