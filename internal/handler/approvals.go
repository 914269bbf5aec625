// Copyright (c) 2026 vspaze
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/vspaze/console/internal/approval"
	"github.com/vspaze/console/internal/gateway"
	"github.com/vspaze/console/internal/model"
	"github.com/vspaze/console/internal/render"
	"github.com/vspaze/console/internal/service"
	"github.com/vspaze/console/internal/session"
	"github.com/vspaze/console/internal/util"
)

// Approval actions are only reachable from the pending screens, so the
// session navigation state already points there and a plain shell
// redirect lands back on the right list.
const (
	routePendingStudents = RouteAdmin
	routePendingFaculty  = RouteAdmin
)

// ApprovalHandler drives the pending-registration review workflow.
type ApprovalHandler struct {
	approvals *approval.Service
	renderer  *render.Renderer
	sessions  *session.Store
	activity  *service.ActivityService
}

// NewApprovalHandler creates a new ApprovalHandler.
func NewApprovalHandler(approvals *approval.Service, renderer *render.Renderer, sessions *session.Store, activity *service.ActivityService) *ApprovalHandler {
	return &ApprovalHandler{
		approvals: approvals,
		renderer:  renderer,
		sessions:  sessions,
		activity:  activity,
	}
}

// ApproveStudent submits one student approval.
// POST /admin/pending/students/{id}/approve
func (h *ApprovalHandler) ApproveStudent(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, routePendingStudents) {
		return
	}

	id := chi.URLParam(r, "id")
	item, ok := h.findPendingStudent(w, r, id)
	if !ok {
		return
	}

	draft := approval.StudentDraft{
		Password: r.FormValue("password"),
		TotalFee: parseAmount(r.FormValue("totalFee")),
	}

	creds, err := h.approvals.ApproveStudent(r.Context(), item, draft)
	if err != nil {
		h.approvalFailed(w, r, routePendingStudents, err)
		return
	}

	h.disclose(w, r, creds, routePendingStudents)
	adminID := h.sessions.AdminID(r.Context())
	_ = h.activity.LogInfo(r.Context(), model.ActivityCategoryApproval, "approved student registration",
		&adminID, util.ClientIP(r), map[string]any{"student_id": id, "email": item.Email})
}

// RejectStudent deletes one pending registration. The confirm step
// happens in the browser before this request is sent.
// POST /admin/pending/students/{id}/reject
func (h *ApprovalHandler) RejectStudent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.approvals.RejectStudent(r.Context(), id); err != nil {
		h.approvalFailed(w, r, routePendingStudents, err)
		return
	}

	adminID := h.sessions.AdminID(r.Context())
	_ = h.activity.LogInfo(r.Context(), model.ActivityCategoryApproval, "rejected student registration",
		&adminID, util.ClientIP(r), map[string]any{"student_id": id})
	flashSuccess(w, r, h.renderer, routePendingStudents, "Registration rejected")
}

// ApproveFaculty submits one faculty approval.
// POST /admin/pending/faculty/{id}/approve
func (h *ApprovalHandler) ApproveFaculty(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, routePendingFaculty) {
		return
	}

	id := chi.URLParam(r, "id")
	item, ok := h.findPendingFaculty(w, r, id)
	if !ok {
		return
	}

	draft := approval.FacultyDraft{
		Password: r.FormValue("password"),
		Salary:   parseAmount(r.FormValue("salary")),
	}

	creds, err := h.approvals.ApproveFaculty(r.Context(), item, draft)
	if err != nil {
		h.approvalFailed(w, r, routePendingFaculty, err)
		return
	}

	h.disclose(w, r, creds, routePendingFaculty)
	adminID := h.sessions.AdminID(r.Context())
	_ = h.activity.LogInfo(r.Context(), model.ActivityCategoryApproval, "approved faculty application",
		&adminID, util.ClientIP(r), map[string]any{"faculty_id": id, "email": item.Email})
}

// RejectFaculty deletes one pending application.
// POST /admin/pending/faculty/{id}/reject
func (h *ApprovalHandler) RejectFaculty(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.approvals.RejectFaculty(r.Context(), id); err != nil {
		h.approvalFailed(w, r, routePendingFaculty, err)
		return
	}

	adminID := h.sessions.AdminID(r.Context())
	_ = h.activity.LogInfo(r.Context(), model.ActivityCategoryApproval, "rejected faculty application",
		&adminID, util.ClientIP(r), map[string]any{"faculty_id": id})
	flashSuccess(w, r, h.renderer, routePendingFaculty, "Application rejected")
}

// findPendingStudent locates the item being acted on. An item another
// admin already handled surfaces as a normal not-found failure.
func (h *ApprovalHandler) findPendingStudent(w http.ResponseWriter, r *http.Request, id string) (model.PendingStudent, bool) {
	pending, err := h.approvals.LoadPendingStudents(r.Context())
	if err != nil {
		h.approvalFailed(w, r, routePendingStudents, err)
		return model.PendingStudent{}, false
	}
	for _, item := range pending {
		if item.ID == id {
			return item, true
		}
	}
	flashError(w, r, h.renderer, routePendingStudents, "Registration not found, it may have been handled already")
	return model.PendingStudent{}, false
}

func (h *ApprovalHandler) findPendingFaculty(w http.ResponseWriter, r *http.Request, id string) (model.PendingFaculty, bool) {
	pending, err := h.approvals.LoadPendingFaculty(r.Context())
	if err != nil {
		h.approvalFailed(w, r, routePendingFaculty, err)
		return model.PendingFaculty{}, false
	}
	for _, item := range pending {
		if item.ID == id {
			return item, true
		}
	}
	flashError(w, r, h.renderer, routePendingFaculty, "Application not found, it may have been handled already")
	return model.PendingFaculty{}, false
}

// disclose stashes the one-time credentials and redirects back to the
// pending list, which pops them on the next render.
func (h *ApprovalHandler) disclose(w http.ResponseWriter, r *http.Request, creds approval.Credentials, redirect string) {
	raw, err := json.Marshal(creds)
	if err != nil {
		slog.Error("encoding credentials", "error", err)
	} else {
		h.sessions.SetCredentials(r.Context(), string(raw))
	}
	flashSuccess(w, r, h.renderer, redirect, "Approved. Share the generated credentials now, they will not be shown again.")
}

// approvalFailed surfaces the failure message and leaves the pending
// list as it was. Validation errors name the offending field; gateway
// errors carry the backend message.
func (h *ApprovalHandler) approvalFailed(w http.ResponseWriter, r *http.Request, redirect string, err error) {
	var verr *approval.ValidationError
	var gerr *gateway.Error
	switch {
	case errors.As(err, &verr):
		flashError(w, r, h.renderer, redirect, verr.Error())
	case errors.As(err, &gerr):
		flashError(w, r, h.renderer, redirect, gerr.Message)
	default:
		slog.Error("approval request failed", "error", err)
		flashError(w, r, h.renderer, redirect, "Request failed, please try again")
	}
}

// parseAmount parses a form amount. Anything unparsable becomes zero,
// which the draft validation rejects with the proper message.
func parseAmount(raw string) float64 {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return v
}
