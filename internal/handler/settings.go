// Copyright (c) 2026 vspaze
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"net/http"
	"net/url"

	"github.com/vspaze/console/internal/cache"
	"github.com/vspaze/console/internal/model"
	"github.com/vspaze/console/internal/render"
	"github.com/vspaze/console/internal/store"
)

// SettingsHandler saves the settings screen, one tab per submit.
type SettingsHandler struct {
	queries  *store.Queries
	renderer *render.Renderer
	caches   *cache.Manager
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(db *sql.DB, renderer *render.Renderer, caches *cache.Manager) *SettingsHandler {
	return &SettingsHandler{queries: store.New(db), renderer: renderer, caches: caches}
}

// Save persists the submitted tab's fields over the stored settings.
// Fields belonging to other tabs are left untouched.
// POST /admin/settings
func (h *SettingsHandler) Save(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, RouteAdmin) {
		return
	}

	tab := r.FormValue("tab")
	if !validSettingsTab(tab) {
		flashError(w, r, h.renderer, RouteAdmin, "Unknown settings tab")
		return
	}
	back := RouteAdmin + "?tab=" + url.QueryEscape(tab)

	settings, err := h.queries.GetSettings(r.Context())
	if err != nil {
		logAndInternalError(w, "loading settings", "error", err)
		return
	}

	applySettingsTab(&settings, tab, r)

	if err := h.queries.SaveSettings(r.Context(), settings); err != nil {
		logAndInternalError(w, "saving settings", "error", err)
		return
	}

	// Cached counts and stats may reflect old display preferences.
	h.caches.ClearAll(r.Context())

	flashSuccess(w, r, h.renderer, back, "Settings saved")
}

// applySettingsTab copies the tab's form fields into settings.
func applySettingsTab(s *model.Settings, tab string, r *http.Request) {
	switch tab {
	case model.SettingsTabInstitute:
		s.InstituteName = r.FormValue("instituteName")
		s.InstituteEmail = r.FormValue("instituteEmail")
		s.InstitutePhone = r.FormValue("institutePhone")
		s.InstituteAddress = r.FormValue("instituteAddress")
		s.AcademicYear = r.FormValue("academicYear")
		s.WorkingHours = r.FormValue("workingHours")

	case model.SettingsTabNotifications:
		s.EmailNotifications = r.FormValue("emailNotifications") == "on"
		s.SMSNotifications = r.FormValue("smsNotifications") == "on"
		s.PushNotifications = r.FormValue("pushNotifications") == "on"
		s.EnrollmentAlerts = r.FormValue("enrollmentAlerts") == "on"
		s.PaymentAlerts = r.FormValue("paymentAlerts") == "on"
		s.AttendanceAlerts = r.FormValue("attendanceAlerts") == "on"

	case model.SettingsTabAppearance:
		if theme := r.FormValue("theme"); theme == "light" || theme == "dark" {
			s.Theme = theme
		}
		if color := r.FormValue("primaryColor"); color != "" {
			s.PrimaryColor = color
		}
		if lang := r.FormValue("language"); lang != "" {
			s.Language = lang
		}

	case model.SettingsTabSecurity:
		if v := r.FormValue("sessionTimeout"); v != "" {
			s.SessionTimeout = v
		}
		s.TwoFactorAuth = r.FormValue("twoFactorAuth") == "on"

	case model.SettingsTabFinance:
		if v := r.FormValue("currency"); v != "" {
			s.Currency = v
		}
		if v := r.FormValue("lateFeePercentage"); v != "" {
			s.LateFeePercentage = v
		}
		if v := r.FormValue("minimumAttendance"); v != "" {
			s.MinimumAttendance = v
		}
		if v := r.FormValue("gracePeriod"); v != "" {
			s.GracePeriod = v
		}
	}
}
