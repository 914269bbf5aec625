// Copyright (c) 2026 vspaze
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vspaze/console/internal/gateway"
	"github.com/vspaze/console/internal/model"
	"github.com/vspaze/console/internal/render"
)

// StudentHandler handles student CRUD against the platform API.
type StudentHandler struct {
	api      *gateway.Client
	renderer *render.Renderer
}

// NewStudentHandler creates a new StudentHandler.
func NewStudentHandler(api *gateway.Client, renderer *render.Renderer) *StudentHandler {
	return &StudentHandler{api: api, renderer: renderer}
}

// Create adds a student directly, bypassing the registration flow.
// POST /admin/students
func (h *StudentHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, RouteAdmin) {
		return
	}

	student := studentFromForm(r)
	if student.Name == "" || student.Email == "" {
		flashError(w, r, h.renderer, RouteAdmin, "Name and email are required")
		return
	}

	if _, err := h.api.CreateStudent(r.Context(), student); err != nil {
		gatewayFailed(w, r, h.renderer, "creating student", err)
		return
	}
	flashSuccess(w, r, h.renderer, RouteAdmin, "Student added")
}

// Update applies edits to an enrolled student.
// POST /admin/students/{id}
func (h *StudentHandler) Update(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, RouteAdmin) {
		return
	}

	student := studentFromForm(r)
	student.ID = chi.URLParam(r, "id")

	if _, err := h.api.UpdateStudent(r.Context(), student); err != nil {
		gatewayFailed(w, r, h.renderer, "updating student", err)
		return
	}
	flashSuccess(w, r, h.renderer, RouteAdmin, "Student updated")
}

// UpdateCourses replaces a student's course enrolment set.
// POST /admin/students/{id}/courses
func (h *StudentHandler) UpdateCourses(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, RouteAdmin) {
		return
	}

	id := chi.URLParam(r, "id")
	courseIDs := r.Form["courseId"]
	if err := h.api.UpdateStudentCourses(r.Context(), id, courseIDs); err != nil {
		gatewayFailed(w, r, h.renderer, "updating student courses", err)
		return
	}
	flashSuccess(w, r, h.renderer, RouteAdmin, "Courses updated")
}

// Delete removes a student.
// POST /admin/students/{id}/delete
func (h *StudentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.api.DeleteStudent(r.Context(), id); err != nil {
		gatewayFailed(w, r, h.renderer, "deleting student", err)
		return
	}
	flashSuccess(w, r, h.renderer, RouteAdmin, "Student removed")
}

func studentFromForm(r *http.Request) model.Student {
	status := r.FormValue("status")
	if status == "" {
		status = model.StudentStatusActive
	}
	return model.Student{
		Name:   r.FormValue("name"),
		Email:  r.FormValue("email"),
		Phone:  r.FormValue("phone"),
		Course: r.FormValue("course"),
		Batch:  model.BatchRef{Ref: r.FormValue("batch")},
		Status: status,
	}
}

// gatewayFailed surfaces a write failure: the backend message when one
// was provided, a generic line otherwise. Local state is never mutated
// on failure.
func gatewayFailed(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, action string, err error) {
	slog.Error(action+" failed", "error", err)
	var gerr *gateway.Error
	if errors.As(err, &gerr) && gerr.Message != "" {
		flashError(w, r, renderer, RouteAdmin, gerr.Message)
		return
	}
	flashError(w, r, renderer, RouteAdmin, "Request failed, please try again")
}
