// Copyright (c) 2026 vspaze
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vspaze/console/internal/gateway"
	"github.com/vspaze/console/internal/model"
	"github.com/vspaze/console/internal/render"
)

// BatchHandler handles batch CRUD against the platform API.
type BatchHandler struct {
	api      *gateway.Client
	renderer *render.Renderer
}

// NewBatchHandler creates a new BatchHandler.
func NewBatchHandler(api *gateway.Client, renderer *render.Renderer) *BatchHandler {
	return &BatchHandler{api: api, renderer: renderer}
}

// Create schedules a new batch.
// POST /admin/batches
func (h *BatchHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, RouteAdmin) {
		return
	}

	batch := batchFromForm(r)
	if batch.Name == "" {
		flashError(w, r, h.renderer, RouteAdmin, "Batch name is required")
		return
	}

	if _, err := h.api.CreateBatch(r.Context(), batch); err != nil {
		gatewayFailed(w, r, h.renderer, "creating batch", err)
		return
	}
	flashSuccess(w, r, h.renderer, RouteAdmin, "Batch added")
}

// Update applies edits to a batch.
// POST /admin/batches/{id}
func (h *BatchHandler) Update(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, RouteAdmin) {
		return
	}

	batch := batchFromForm(r)
	batch.ID = chi.URLParam(r, "id")

	if _, err := h.api.UpdateBatch(r.Context(), batch); err != nil {
		gatewayFailed(w, r, h.renderer, "updating batch", err)
		return
	}
	flashSuccess(w, r, h.renderer, RouteAdmin, "Batch updated")
}

// Delete removes a batch.
// POST /admin/batches/{id}/delete
func (h *BatchHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.api.DeleteBatch(r.Context(), id); err != nil {
		gatewayFailed(w, r, h.renderer, "deleting batch", err)
		return
	}
	flashSuccess(w, r, h.renderer, RouteAdmin, "Batch removed")
}

func batchFromForm(r *http.Request) model.Batch {
	status := r.FormValue("status")
	switch status {
	case model.BatchStatusUpcoming, model.BatchStatusCompleted:
	default:
		status = model.BatchStatusActive
	}
	return model.Batch{
		Name:      r.FormValue("name"),
		Course:    model.CourseRef{Ref: r.FormValue("course")},
		Faculty:   model.FacultyRef{Ref: r.FormValue("faculty")},
		Timing:    r.FormValue("timing"),
		Duration:  r.FormValue("duration"),
		StartDate: r.FormValue("startDate"),
		Status:    status,
	}
}
