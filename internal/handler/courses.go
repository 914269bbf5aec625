// Copyright (c) 2026 vspaze
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/vspaze/console/internal/gateway"
	"github.com/vspaze/console/internal/model"
	"github.com/vspaze/console/internal/render"
	"github.com/vspaze/console/internal/util"
)

// CourseHandler handles course and course-video mutations.
type CourseHandler struct {
	api      *gateway.Client
	renderer *render.Renderer
}

// NewCourseHandler creates a new CourseHandler.
func NewCourseHandler(api *gateway.Client, renderer *render.Renderer) *CourseHandler {
	return &CourseHandler{api: api, renderer: renderer}
}

// Create adds a course offering.
// POST /admin/courses
func (h *CourseHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, RouteAdmin) {
		return
	}

	course := courseFromForm(r)
	if course.Name == "" {
		flashError(w, r, h.renderer, RouteAdmin, "Course name is required")
		return
	}
	// Codes come from the name unless the form supplies one.
	if course.Code == "" {
		course.Code = util.Slugify(course.Name)
	}

	if _, err := h.api.CreateCourse(r.Context(), course); err != nil {
		gatewayFailed(w, r, h.renderer, "creating course", err)
		return
	}
	flashSuccess(w, r, h.renderer, RouteAdmin, "Course added")
}

// Update applies edits to a course.
// POST /admin/courses/{id}
func (h *CourseHandler) Update(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, RouteAdmin) {
		return
	}

	course := courseFromForm(r)
	course.ID = chi.URLParam(r, "id")

	if _, err := h.api.UpdateCourse(r.Context(), course); err != nil {
		gatewayFailed(w, r, h.renderer, "updating course", err)
		return
	}
	flashSuccess(w, r, h.renderer, RouteAdmin, "Course updated")
}

// Delete removes a course.
// POST /admin/courses/{id}/delete
func (h *CourseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.api.DeleteCourse(r.Context(), id); err != nil {
		gatewayFailed(w, r, h.renderer, "deleting course", err)
		return
	}
	flashSuccess(w, r, h.renderer, RouteAdmin, "Course removed")
}

// AddVideo attaches a lecture recording to a course.
// POST /admin/courses/{id}/videos
func (h *CourseHandler) AddVideo(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, RouteAdmin) {
		return
	}

	video := model.Video{
		Title:  r.FormValue("title"),
		URL:    r.FormValue("url"),
		Module: r.FormValue("module"),
	}
	if video.Title == "" || video.URL == "" {
		flashError(w, r, h.renderer, RouteAdmin, "Video title and URL are required")
		return
	}

	courseID := chi.URLParam(r, "id")
	if _, err := h.api.AddCourseVideo(r.Context(), courseID, video); err != nil {
		gatewayFailed(w, r, h.renderer, "adding course video", err)
		return
	}
	flashSuccess(w, r, h.renderer, RouteAdmin, "Video added")
}

// DeleteVideo detaches a lecture recording from a course.
// POST /admin/courses/{id}/videos/{videoID}/delete
func (h *CourseHandler) DeleteVideo(w http.ResponseWriter, r *http.Request) {
	courseID := chi.URLParam(r, "id")
	videoID := chi.URLParam(r, "videoID")
	if err := h.api.DeleteCourseVideo(r.Context(), courseID, videoID); err != nil {
		gatewayFailed(w, r, h.renderer, "deleting course video", err)
		return
	}
	flashSuccess(w, r, h.renderer, RouteAdmin, "Video removed")
}

func courseFromForm(r *http.Request) model.Course {
	status := r.FormValue("status")
	if status != model.CourseStatusInactive {
		status = model.CourseStatusActive
	}

	var subjects []string
	for _, s := range strings.Split(r.FormValue("subjects"), ",") {
		if s = strings.TrimSpace(s); s != "" {
			subjects = append(subjects, s)
		}
	}

	return model.Course{
		Name:        r.FormValue("name"),
		Code:        r.FormValue("code"),
		Description: r.FormValue("description"),
		Duration:    r.FormValue("duration"),
		Fee:         parseAmount(r.FormValue("fee")),
		Subjects:    subjects,
		Status:      status,
	}
}
