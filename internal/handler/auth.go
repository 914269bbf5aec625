// Copyright (c) 2026 vspaze
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/vspaze/console/internal/auth"
	"github.com/vspaze/console/internal/middleware"
	"github.com/vspaze/console/internal/model"
	"github.com/vspaze/console/internal/render"
	"github.com/vspaze/console/internal/service"
	"github.com/vspaze/console/internal/session"
	"github.com/vspaze/console/internal/store"
	"github.com/vspaze/console/internal/util"
)

// AuthHandler handles authentication routes.
type AuthHandler struct {
	queries         *store.Queries
	renderer        *render.Renderer
	sessions        *session.Store
	activity        *service.ActivityService
	loginProtection *middleware.LoginProtection
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(db *sql.DB, renderer *render.Renderer, sessions *session.Store, activity *service.ActivityService, lp *middleware.LoginProtection) *AuthHandler {
	return &AuthHandler{
		queries:         store.New(db),
		renderer:        renderer,
		sessions:        sessions,
		activity:        activity,
		loginProtection: lp,
	}
}

// LoginForm renders the login page. Already-authenticated admins go
// straight to the shell.
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	if h.sessions.IsAuthenticated(r.Context()) {
		http.Redirect(w, r, RouteAdmin, http.StatusSeeOther)
		return
	}

	settings, err := h.queries.GetSettings(r.Context())
	if err != nil {
		settings = model.DefaultSettings()
	}

	err = h.renderer.Render(w, r, "auth/login", render.TemplateData{
		Title:    "Admin Login",
		Settings: settings,
	})
	if err != nil {
		logAndInternalError(w, "rendering login page", "error", err)
	}
}

// Login handles the login form submission.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, RouteLogin) {
		return
	}

	email := r.FormValue("email")
	password := r.FormValue("password")
	if email == "" || password == "" {
		flashError(w, r, h.renderer, RouteLogin, "Email and password are required")
		return
	}

	clientIP := util.ClientIP(r)
	userAgent := r.UserAgent()

	if !h.loginProtection.CheckIPRateLimit(clientIP) {
		flashError(w, r, h.renderer, RouteLogin, "Too many login attempts, slow down")
		return
	}
	if locked, remaining := h.loginProtection.IsAccountLocked(email); locked {
		_ = h.activity.LogWarning(r.Context(), model.ActivityCategoryAuth, "login attempt on locked account", nil, clientIP, map[string]any{"email": email})
		flashError(w, r, h.renderer, RouteLogin, "Account temporarily locked, try again in "+formatDuration(remaining))
		return
	}

	admin, err := h.queries.GetAdminByEmail(r.Context(), email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			slog.Debug("login attempt for unknown account", "email", email)
			_ = h.activity.LogLogin(r.Context(), false, email, nil, clientIP, userAgent)
		} else {
			slog.Error("database error during login", "error", err)
		}
		// Record the attempt for unknown accounts too, so the lockout
		// behaves the same and emails cannot be enumerated.
		h.recordFailure(w, r, email)
		return
	}

	valid, err := auth.CheckPassword(password, admin.PasswordHash)
	if err != nil {
		slog.Error("password check error", "error", err)
		flashError(w, r, h.renderer, RouteLogin, "Invalid email or password")
		return
	}
	if !valid {
		_ = h.activity.LogLogin(r.Context(), false, email, &admin.ID, clientIP, userAgent)
		h.recordFailure(w, r, email)
		return
	}

	h.loginProtection.RecordSuccessfulLogin(email)

	// Upgrade hashes produced with older parameters.
	if auth.NeedsRehash(admin.PasswordHash) {
		if newHash, err := auth.HashPassword(password); err == nil {
			if err := h.queries.UpdateAdminPassword(r.Context(), admin.ID, newHash, time.Now()); err != nil {
				slog.Error("failed to re-hash password", "error", err, "admin_id", admin.ID)
			}
		}
	}

	if err := h.queries.UpdateAdminLastLogin(r.Context(), admin.ID, time.Now()); err != nil {
		slog.Error("failed to update last login time", "error", err, "admin_id", admin.ID)
	}

	// Regenerate the session ID to prevent session fixation.
	if err := h.sessions.Manager().RenewToken(r.Context()); err != nil {
		logAndInternalError(w, "session renewal error", "error", err)
		return
	}
	h.sessions.Login(r.Context(), admin.ID)

	slog.Info("admin logged in", "admin_id", admin.ID, "email", admin.Email)
	_ = h.activity.LogLogin(r.Context(), true, admin.Email, &admin.ID, clientIP, userAgent)

	h.renderer.SetFlash(r, "Welcome back, "+admin.Name, "success")
	http.Redirect(w, r, RouteAdmin, http.StatusSeeOther)
}

// recordFailure records a failed attempt and redirects with the
// appropriate message.
func (h *AuthHandler) recordFailure(w http.ResponseWriter, r *http.Request, email string) {
	if locked, lockDuration := h.loginProtection.RecordFailedAttempt(email); locked {
		flashError(w, r, h.renderer, RouteLogin, "Too many failed attempts, account locked for "+formatDuration(lockDuration))
		return
	}
	if remaining := h.loginProtection.GetRemainingAttempts(email); remaining <= 3 && remaining > 0 {
		flashError(w, r, h.renderer, RouteLogin, fmt.Sprintf("Invalid email or password (%d attempts remaining)", remaining))
		return
	}
	flashError(w, r, h.renderer, RouteLogin, "Invalid email or password")
}

// Logout destroys the session.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	adminID := h.sessions.AdminID(r.Context())
	if adminID > 0 {
		_ = h.activity.LogInfo(r.Context(), model.ActivityCategoryAuth, "admin logged out", &adminID, util.ClientIP(r), nil)
	}

	if err := h.sessions.Logout(r.Context()); err != nil {
		slog.Error("session destroy error", "error", err)
	}

	slog.Info("admin logged out", "admin_id", adminID)
	flashAndRedirect(w, r, h.renderer, RouteLogin, "You have been logged out", "info")
}

// formatDuration formats a duration into a human-readable string.
func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%d seconds", int(d.Seconds()))
	}
	if d < time.Hour {
		mins := int(d.Minutes())
		if mins == 1 {
			return "1 minute"
		}
		return fmt.Sprintf("%d minutes", mins)
	}
	hours := int(d.Hours())
	if hours == 1 {
		return "1 hour"
	}
	return fmt.Sprintf("%d hours", hours)
}
