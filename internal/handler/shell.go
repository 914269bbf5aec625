// Copyright (c) 2026 vspaze
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"html/template"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/vspaze/console/internal/approval"
	"github.com/vspaze/console/internal/cache"
	"github.com/vspaze/console/internal/gateway"
	"github.com/vspaze/console/internal/middleware"
	"github.com/vspaze/console/internal/model"
	"github.com/vspaze/console/internal/nav"
	"github.com/vspaze/console/internal/render"
	"github.com/vspaze/console/internal/session"
	"github.com/vspaze/console/internal/store"
)

// ShellHandler renders the admin shell. Navigation state lives in the
// session; every GET /admin resolves it to exactly one screen.
type ShellHandler struct {
	queries   *store.Queries
	renderer  *render.Renderer
	sessions  *session.Store
	api       *gateway.Client
	approvals *approval.Service
	caches    *cache.Manager
}

// NewShellHandler creates a new ShellHandler.
func NewShellHandler(db *sql.DB, renderer *render.Renderer, sessions *session.Store, api *gateway.Client, approvals *approval.Service, caches *cache.Manager) *ShellHandler {
	return &ShellHandler{
		queries:   store.New(db),
		renderer:  renderer,
		sessions:  sessions,
		api:       api,
		approvals: approvals,
		caches:    caches,
	}
}

// Home renders the screen the navigation state resolves to.
func (h *ShellHandler) Home(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	state := nav.Decode(h.sessions.NavState(ctx))
	screen := state.Render()

	settings, err := h.queries.GetSettings(ctx)
	if err != nil {
		slog.Error("loading settings", "error", err)
		settings = model.DefaultSettings()
	}

	name, title, data, ok := h.loadScreen(w, r, screen)
	if !ok {
		return
	}

	var logins []model.Activity
	if state.ProfileOpen {
		logins, err = h.queries.ListActivitiesByCategory(ctx, model.ActivityCategoryAuth, 10)
		if err != nil {
			slog.Error("loading sign-in history", "error", err)
		}
	}

	err = h.renderer.Render(w, r, "admin/"+name, render.TemplateData{
		Title:         title,
		Data:          data,
		Admin:         middleware.GetAdmin(r),
		Nav:           state,
		Badge:         h.badge(ctx),
		Settings:      settings,
		LoginActivity: logins,
	})
	if err != nil {
		logAndInternalError(w, "rendering admin screen", "error", err, "screen", name)
	}
}

// badge returns the sidebar badge counts: the cache between scheduler
// ticks, the local snapshot when the cache is cold.
func (h *ShellHandler) badge(ctx context.Context) model.PendingCounts {
	if c, ok := h.caches.PendingCounts(ctx); ok {
		return c
	}
	c, _, err := h.queries.GetPendingCounts(ctx)
	if err != nil {
		slog.Error("loading pending counts snapshot", "error", err)
		return model.PendingCounts{}
	}
	return c
}

// loadScreen fetches the data for one screen. Read failures leave lists
// empty; a stale drill-down pointer is cleared and the admin is sent back
// to the underlying section.
func (h *ShellHandler) loadScreen(w http.ResponseWriter, r *http.Request, screen nav.Screen) (name, title string, data any, ok bool) {
	ctx := r.Context()

	// Drill-down kinds share the Section field with section names and
	// KindFaculty collides with SectionFaculty, so dispatch on EntityID
	// first: Render only sets it for drill-down screens.
	if screen.EntityID != "" {
		switch screen.Section {
		case nav.KindBatch:
			return h.batchDetails(w, r, screen.EntityID)
		case nav.KindCourse:
			return h.courseDetails(w, r, screen.EntityID)
		case nav.KindFaculty:
			return h.facultyDetails(w, r, screen.EntityID)
		}
	}

	switch screen.Section {
	case nav.SectionHome:
		return "dashboard", "Dashboard", h.dashboardData(ctx), true

	case nav.SectionStudents:
		students, err := h.api.ListStudents(ctx)
		if err != nil {
			slog.Error("loading students", "error", err)
		}
		// The full course list feeds the enrollment editor.
		courses, err := h.api.ListCourses(ctx)
		if err != nil {
			slog.Error("loading courses", "error", err)
		}
		q := r.URL.Query().Get("q")
		return "students", "Student Management", studentListData{
			Students: filterStudents(students, q),
			Courses:  courses,
			Query:    q,
		}, true

	case nav.SectionPendingStudents:
		pending, err := h.approvals.LoadPendingStudents(ctx)
		if err != nil {
			slog.Error("loading pending students", "error", err)
		}
		return "pending_students", "Pending Students", pendingStudentsData{
			Pending:     pending,
			DefaultFee:  approval.DefaultTotalFee,
			Credentials: h.popCredentials(ctx),
		}, true

	case nav.SectionFaculty:
		faculty, err := h.api.ListFaculty(ctx)
		if err != nil {
			slog.Error("loading faculty", "error", err)
		}
		q := r.URL.Query().Get("q")
		return "faculty", "Faculty Management", facultyListData{
			Faculty: filterFaculty(faculty, q),
			Query:   q,
		}, true

	case nav.SectionPendingFaculty:
		pending, err := h.approvals.LoadPendingFaculty(ctx)
		if err != nil {
			slog.Error("loading pending faculty", "error", err)
		}
		return "pending_faculty", "Pending Faculty", pendingFacultyData{
			Pending:       pending,
			DefaultSalary: approval.DefaultSalary,
			Credentials:   h.popCredentials(ctx),
		}, true

	case nav.SectionCourses:
		courses, err := h.api.ListCourses(ctx)
		if err != nil {
			slog.Error("loading courses", "error", err)
		}
		return "courses", "Course Management", courseListData{Courses: courses}, true

	case nav.SectionBatches:
		batches, err := h.api.ListBatches(ctx)
		if err != nil {
			slog.Error("loading batches", "error", err)
		}
		return "batches", "Batch Management", batchListData{Batches: batches}, true

	case nav.SectionAttendance:
		return "attendance", "Attendance Management", h.attendanceData(r), true

	case nav.SectionPayments:
		payments, err := h.api.ListPayments(ctx)
		if err != nil {
			slog.Error("loading payments", "error", err)
		}
		return "payments", "Payment Management", paymentListData{Payments: payments}, true

	case nav.SectionAnnouncements:
		return "announcements", "Announcements", h.announcementData(ctx), true

	case nav.SectionSettings:
		settings, err := h.queries.GetSettings(ctx)
		if err != nil {
			slog.Error("loading settings", "error", err)
			settings = model.DefaultSettings()
		}
		tab := r.URL.Query().Get("tab")
		if !validSettingsTab(tab) {
			tab = model.SettingsTabInstitute
		}
		return "settings", "Settings", settingsData{Settings: settings, Tab: tab}, true

	case nav.SectionNotifications:
		return "notifications", "Notifications", h.notificationData(r), true
	}

	// Decode already funnels unknown sections to home; this is a belt.
	return "dashboard", "Dashboard", h.dashboardData(ctx), true
}

// dashboardData is the landing screen: aggregate stats plus clickable
// batch, course and faculty lists for drill-down.
func (h *ShellHandler) dashboardData(ctx context.Context) dashboardViewData {
	var d dashboardViewData

	if stats, ok := h.caches.DashboardStats(ctx); ok {
		d.Stats = stats
	} else {
		stats, err := h.api.DashboardStats(ctx)
		if err != nil {
			slog.Error("loading dashboard stats", "error", err)
		} else {
			d.Stats = stats
			h.caches.SetDashboardStats(ctx, stats)
		}
	}

	var err error
	if d.Batches, err = h.api.ListBatches(ctx); err != nil {
		slog.Error("loading batches", "error", err)
	}
	if d.Courses, err = h.api.ListCourses(ctx); err != nil {
		slog.Error("loading courses", "error", err)
	}
	if d.Faculty, err = h.api.ListFaculty(ctx); err != nil {
		slog.Error("loading faculty", "error", err)
	}
	if d.Activities, err = h.queries.ListActivities(ctx, 10); err != nil {
		slog.Error("loading recent activity", "error", err)
	}
	return d
}

func (h *ShellHandler) attendanceData(r *http.Request) attendanceViewData {
	ctx := r.Context()

	kind := r.URL.Query().Get("tab")
	if kind != model.AttendanceKindFaculty {
		kind = model.AttendanceKindStudent
	}
	date := r.URL.Query().Get("date")
	if _, err := time.Parse("2006-01-02", date); err != nil {
		date = time.Now().Format("2006-01-02")
	}

	marks, err := h.queries.ListAttendanceByDate(ctx, kind, date)
	if err != nil {
		slog.Error("loading attendance", "error", err)
	}

	d := attendanceViewData{Kind: kind, Date: date, Marks: marks}
	for _, m := range marks {
		if m.IsPresent() {
			d.Present++
		} else if m.Status == model.AttendanceStatusAbsent {
			d.Absent++
		}
	}
	if len(marks) > 0 {
		d.Rate = d.Present * 100 / len(marks)
	}
	return d
}

func (h *ShellHandler) announcementData(ctx context.Context) announcementViewData {
	announcements, err := h.queries.ListAnnouncements(ctx)
	if err != nil {
		slog.Error("loading announcements", "error", err)
	}

	d := announcementViewData{}
	for _, a := range announcements {
		d.Announcements = append(d.Announcements, announcementView{
			Announcement: a,
			HTML:         renderMarkdown(a.Message),
		})
	}
	return d
}

func (h *ShellHandler) notificationData(r *http.Request) notificationViewData {
	ctx := r.Context()
	filter := r.URL.Query().Get("filter")

	typ := ""
	switch filter {
	case model.NotificationTypePayment, model.NotificationTypeAttendance,
		model.NotificationTypeStudent, model.NotificationTypeFaculty, model.NotificationTypeLeave:
		typ = filter
	case "unread":
	default:
		filter = "all"
	}

	notifications, err := h.queries.ListNotifications(ctx, typ)
	if err != nil {
		slog.Error("loading notifications", "error", err)
	}
	if filter == "unread" {
		unread := notifications[:0]
		for _, n := range notifications {
			if !n.Read {
				unread = append(unread, n)
			}
		}
		notifications = unread
	}

	d := notificationViewData{Filter: filter, Notifications: notifications}
	for _, n := range notifications {
		if !n.Read {
			d.Unread++
		}
	}
	return d
}

func (h *ShellHandler) batchDetails(w http.ResponseWriter, r *http.Request, id string) (string, string, any, bool) {
	batches, err := h.api.ListBatches(r.Context())
	if err != nil {
		slog.Error("loading batches", "error", err)
	}
	for _, b := range batches {
		if b.ID == id {
			return "batch_details", b.Name, batchDetailsData{Batch: b}, true
		}
	}
	h.clearStalePointer(w, r, nav.KindBatch, "Batch not found")
	return "", "", nil, false
}

func (h *ShellHandler) courseDetails(w http.ResponseWriter, r *http.Request, id string) (string, string, any, bool) {
	courses, err := h.api.ListCourses(r.Context())
	if err != nil {
		slog.Error("loading courses", "error", err)
	}
	for _, c := range courses {
		if c.ID == id {
			videos, err := h.api.ListCourseVideos(r.Context(), id)
			if err != nil {
				slog.Error("loading course videos", "error", err, "course_id", id)
			}
			return "course_details", c.Name, courseDetailsData{Course: c, Videos: videos}, true
		}
	}
	h.clearStalePointer(w, r, nav.KindCourse, "Course not found")
	return "", "", nil, false
}

func (h *ShellHandler) facultyDetails(w http.ResponseWriter, r *http.Request, id string) (string, string, any, bool) {
	faculty, err := h.api.ListFaculty(r.Context())
	if err != nil {
		slog.Error("loading faculty", "error", err)
	}
	for _, f := range faculty {
		if f.ID == id {
			return "faculty_details", f.Name, facultyDetailsData{Faculty: f}, true
		}
	}
	h.clearStalePointer(w, r, nav.KindFaculty, "Faculty member not found")
	return "", "", nil, false
}

// popCredentials returns credentials stashed by a just-completed
// approval, once. A second page load sees nothing.
func (h *ShellHandler) popCredentials(ctx context.Context) *approval.Credentials {
	raw := h.sessions.PopCredentials(ctx)
	if raw == "" {
		return nil
	}
	var c approval.Credentials
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		slog.Error("decoding stashed credentials", "error", err)
		return nil
	}
	return &c
}

// clearStalePointer drops a drill-down pointer whose entity no longer
// exists and falls back to the underlying section.
func (h *ShellHandler) clearStalePointer(w http.ResponseWriter, r *http.Request, kind, message string) {
	h.mutateNav(r, func(s *nav.State) error { return s.Back(kind) })
	flashError(w, r, h.renderer, RouteAdmin, message)
}

// mutateNav decodes the session navigation state, applies fn and stores
// the result. A failed transition leaves the stored state untouched.
func (h *ShellHandler) mutateNav(r *http.Request, fn func(*nav.State) error) error {
	ctx := r.Context()
	state := nav.Decode(h.sessions.NavState(ctx))
	err := fn(&state)
	if err == nil {
		h.sessions.SetNavState(ctx, state.Encode())
	}
	return err
}

// SelectSection switches the active section.
// POST /admin/nav/section/{section}
func (h *ShellHandler) SelectSection(w http.ResponseWriter, r *http.Request) {
	section := chi.URLParam(r, "section")
	_ = h.mutateNav(r, func(s *nav.State) error {
		// Unknown sections fall back to home rather than erroring.
		s.SelectSection(section)
		return nil
	})
	http.Redirect(w, r, RouteAdmin, http.StatusSeeOther)
}

// Drill enters a detail screen.
// POST /admin/nav/drill/{kind}/{id}
func (h *ShellHandler) Drill(w http.ResponseWriter, r *http.Request) {
	kind := chi.URLParam(r, "kind")
	id := chi.URLParam(r, "id")
	if err := h.mutateNav(r, func(s *nav.State) error { return s.Drill(kind, id) }); err != nil {
		flashError(w, r, h.renderer, RouteAdmin, "Unknown detail screen")
		return
	}
	http.Redirect(w, r, RouteAdmin, http.StatusSeeOther)
}

// Back leaves a detail screen.
// POST /admin/nav/back/{kind}
func (h *ShellHandler) Back(w http.ResponseWriter, r *http.Request) {
	kind := chi.URLParam(r, "kind")
	if err := h.mutateNav(r, func(s *nav.State) error { return s.Back(kind) }); err != nil {
		flashError(w, r, h.renderer, RouteAdmin, "Unknown detail screen")
		return
	}
	http.Redirect(w, r, RouteAdmin, http.StatusSeeOther)
}

// Profile opens or closes the profile overlay.
// POST /admin/nav/profile/{action}
func (h *ShellHandler) Profile(w http.ResponseWriter, r *http.Request) {
	action := chi.URLParam(r, "action")
	_ = h.mutateNav(r, func(s *nav.State) error {
		if action == "open" {
			s.OpenProfile()
		} else {
			s.CloseProfile()
		}
		return nil
	})
	http.Redirect(w, r, RouteAdmin, http.StatusSeeOther)
}

// ToggleSidebar flips the sidebar.
// POST /admin/nav/sidebar/toggle
func (h *ShellHandler) ToggleSidebar(w http.ResponseWriter, r *http.Request) {
	_ = h.mutateNav(r, func(s *nav.State) error {
		s.ToggleSidebar()
		return nil
	})
	http.Redirect(w, r, RouteAdmin, http.StatusSeeOther)
}

// ToggleGroup flips an expandable sidebar group.
// POST /admin/nav/group/{group}
func (h *ShellHandler) ToggleGroup(w http.ResponseWriter, r *http.Request) {
	group := chi.URLParam(r, "group")
	if err := h.mutateNav(r, func(s *nav.State) error { return s.ToggleGroup(group) }); err != nil {
		flashError(w, r, h.renderer, RouteAdmin, "Unknown sidebar group")
		return
	}
	http.Redirect(w, r, RouteAdmin, http.StatusSeeOther)
}

// PendingCountsJSON is the polled badge endpoint.
// GET /admin/api/pending-counts
func (h *ShellHandler) PendingCountsJSON(w http.ResponseWriter, r *http.Request) {
	counts := h.badge(r.Context())
	writeJSON(w, http.StatusOK, struct {
		Students int `json:"students"`
		Faculty  int `json:"faculty"`
		Total    int `json:"total"`
	}{counts.Students, counts.Faculty, counts.Total()})
}

// View data carried into the admin templates.

type dashboardViewData struct {
	Stats      model.DashboardStats
	Batches    []model.Batch
	Courses    []model.Course
	Faculty    []model.Faculty
	Activities []model.Activity
}

type studentListData struct {
	Students []model.Student
	Courses  []model.Course
	Query    string
}

type pendingStudentsData struct {
	Pending     []model.PendingStudent
	DefaultFee  float64
	Credentials *approval.Credentials
}

type facultyListData struct {
	Faculty []model.Faculty
	Query   string
}

type pendingFacultyData struct {
	Pending       []model.PendingFaculty
	DefaultSalary float64
	Credentials   *approval.Credentials
}

type courseListData struct {
	Courses []model.Course
}

type batchListData struct {
	Batches []model.Batch
}

type attendanceViewData struct {
	Kind    string
	Date    string
	Marks   []model.Attendance
	Present int
	Absent  int
	Rate    int
}

type paymentListData struct {
	Payments []model.Payment
}

type announcementView struct {
	model.Announcement
	HTML template.HTML
}

type announcementViewData struct {
	Announcements []announcementView
}

type settingsData struct {
	Settings model.Settings
	Tab      string
}

type notificationViewData struct {
	Filter        string
	Notifications []model.Notification
	Unread        int
}

type batchDetailsData struct {
	Batch model.Batch
}

type courseDetailsData struct {
	Course model.Course
	Videos []model.Video
}

type facultyDetailsData struct {
	Faculty model.Faculty
}

func validSettingsTab(tab string) bool {
	switch tab {
	case model.SettingsTabInstitute, model.SettingsTabNotifications,
		model.SettingsTabAppearance, model.SettingsTabSecurity, model.SettingsTabFinance:
		return true
	}
	return false
}

// filterStudents keeps students whose name or email contains q,
// case-insensitive.
func filterStudents(students []model.Student, q string) []model.Student {
	if q == "" {
		return students
	}
	q = strings.ToLower(q)
	var out []model.Student
	for _, s := range students {
		if strings.Contains(strings.ToLower(s.Name), q) || strings.Contains(strings.ToLower(s.Email), q) {
			out = append(out, s)
		}
	}
	return out
}

func filterFaculty(faculty []model.Faculty, q string) []model.Faculty {
	if q == "" {
		return faculty
	}
	q = strings.ToLower(q)
	var out []model.Faculty
	for _, f := range faculty {
		if strings.Contains(strings.ToLower(f.Name), q) || strings.Contains(strings.ToLower(f.Email), q) {
			out = append(out, f)
		}
	}
	return out
}
