// Copyright (c) 2026 vspaze
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"io/fs"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/vspaze/console/internal/approval"
	"github.com/vspaze/console/internal/model"
	"github.com/vspaze/console/internal/nav"
	"github.com/vspaze/console/internal/render"
	"github.com/vspaze/console/web"
)

// The shipped templates only get parsed at startup, so a typo in one of
// them would otherwise survive the whole test suite. This renders every
// page against representative data.

func productionRenderer(t *testing.T) *render.Renderer {
	t.Helper()

	templatesFS, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		t.Fatalf("templates subtree: %v", err)
	}
	renderer, err := render.New(render.Config{TemplatesFS: templatesFS})
	if err != nil {
		t.Fatalf("parsing shipped templates: %v", err)
	}
	return renderer
}

func sampleCourse() model.Course {
	return model.Course{
		ID: "c1", Name: "Full Stack Development", Code: "fsd-101",
		Description: "Web development from HTML to deployment.",
		Duration:    "6 months", Fee: 45000,
		Subjects: []string{"Go", "SQL"}, Students: 24, Status: "active",
	}
}

func sampleFaculty() model.Faculty {
	return model.Faculty{
		ID: "f1", Name: "Meera Pillai", Email: "meera@example.com", Phone: "+91 9000000001",
		Specialization: "Databases", Courses: []string{"Full Stack Development"},
		Students: 40, Rating: 4.6, Salary: 52000, Status: "Active", JoinedAt: "2024-06-01",
	}
}

func sampleBatch() model.Batch {
	course := sampleCourse()
	faculty := sampleFaculty()
	return model.Batch{
		ID: "b1", Name: "Batch A-2024",
		Course:  model.CourseRef{Expanded: &course},
		Faculty: model.FacultyRef{Expanded: &faculty},
		Students: []model.StudentRef{
			{Expanded: &model.Student{ID: "s1", Name: "Aarav Sharma"}},
		},
		Timing: "10:00 AM - 12:00 PM", Duration: "6 months",
		StartDate: "2024-07-01", Progress: 40, Status: model.BatchStatusActive,
	}
}

func renderPage(t *testing.T, renderer *render.Renderer, name string, data render.TemplateData) string {
	t.Helper()

	if data.Admin == nil && strings.HasPrefix(name, "admin/") {
		data.Admin = &model.Admin{ID: 1, Name: "Priya Nair", Email: "priya@vspaze.com"}
	}
	if data.Settings.InstituteName == "" {
		data.Settings = model.DefaultSettings()
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	if err := renderer.Render(rec, req, name, data); err != nil {
		t.Fatalf("rendering %s: %v", name, err)
	}
	return rec.Body.String()
}

func TestShippedTemplatesRenderEverySection(t *testing.T) {
	renderer := productionRenderer(t)

	course := sampleCourse()
	faculty := sampleFaculty()
	batch := sampleBatch()
	student := model.Student{
		ID: "s1", Name: "Aarav Sharma", Email: "aarav@example.com", Phone: "+91 9000000002",
		Batch:           model.BatchRef{Expanded: &batch},
		EnrolledCourses: []model.CourseRef{{Expanded: &course}},
		TotalFee:        50000, PaidAmount: 20000, DueAmount: 30000, Status: "Active",
	}

	pages := map[string]any{
		"dashboard": dashboardViewData{
			Stats:   model.DashboardStats{TotalStudents: 120, TotalFaculty: 8, TotalCourses: 6, TotalBatches: 5},
			Batches: []model.Batch{batch},
			Courses: []model.Course{course},
			Faculty: []model.Faculty{faculty},
			Activities: []model.Activity{
				{Message: "admin logged in", IP: "203.0.113.7", CreatedAt: time.Now()},
			},
		},
		"students": studentListData{
			Students: []model.Student{student},
			Courses:  []model.Course{course},
			Query:    "aarav",
		},
		"faculty": facultyListData{Faculty: []model.Faculty{faculty}},
		"courses": courseListData{Courses: []model.Course{course}},
		"batches": batchListData{Batches: []model.Batch{batch}},
		"attendance": attendanceViewData{
			Kind: model.AttendanceKindStudent, Date: "2026-08-28",
			Marks: []model.Attendance{
				{ID: 1, Kind: model.AttendanceKindStudent, Name: "Aarav Sharma",
					Detail: "Batch A-2024", Date: "2026-08-28", Status: model.AttendanceStatusPresent},
			},
			Present: 1, Rate: 100,
		},
		"payments": paymentListData{
			Payments: []model.Payment{
				{ID: "p1", Student: model.StudentRef{Expanded: &student},
					Amount: 20000, PaymentDate: "2026-08-20", Method: "UPI", Status: "paid"},
			},
		},
		"announcements": announcementViewData{
			Announcements: []announcementView{
				{
					Announcement: model.Announcement{
						PublicID: "a1", Title: "Holiday Notice", Slug: "holiday-notice",
						Message: "Institute **closed** on Friday.", TargetAudience: model.AudienceAll,
						CreatedBy: "Priya Nair", CreatedAt: time.Now(),
					},
					HTML: "<p>Institute <strong>closed</strong> on Friday.</p>",
				},
			},
		},
		"notifications": notificationViewData{
			Filter: "all",
			Notifications: []model.Notification{
				{ID: 1, Type: model.NotificationTypePayment, Title: "Payment Received",
					Message: "Fee instalment received", CreatedAt: time.Now()},
			},
			Unread: 1,
		},
		"batch_details":   batchDetailsData{Batch: batch},
		"course_details":  courseDetailsData{Course: course, Videos: []model.Video{{ID: "v1", Title: "Intro", URL: "https://example.com/v1", Module: "Basics"}}},
		"faculty_details": facultyDetailsData{Faculty: faculty},
	}

	for name, data := range pages {
		body := renderPage(t, renderer, "admin/"+name, render.TemplateData{
			Title: name, Data: data, Nav: nav.Initial(), Badge: model.PendingCounts{Students: 2, Faculty: 1},
		})
		if !strings.Contains(body, "</html>") {
			t.Errorf("%s: truncated output", name)
		}
	}
}

func TestShippedSettingsTemplateRendersEveryTab(t *testing.T) {
	renderer := productionRenderer(t)

	tabs := []string{
		model.SettingsTabInstitute, model.SettingsTabNotifications,
		model.SettingsTabAppearance, model.SettingsTabSecurity, model.SettingsTabFinance,
	}
	for _, tab := range tabs {
		body := renderPage(t, renderer, "admin/settings", render.TemplateData{
			Title: "Settings",
			Data:  settingsData{Settings: model.DefaultSettings(), Tab: tab},
			Nav:   nav.Initial(),
		})
		if !strings.Contains(body, `value="`+tab+`"`) {
			t.Errorf("settings tab %s: hidden tab input missing", tab)
		}
	}
}

func TestShippedPendingTemplatesShowRegistrationDetails(t *testing.T) {
	renderer := productionRenderer(t)

	body := renderPage(t, renderer, "admin/pending_students", render.TemplateData{
		Title: "Pending Students",
		Data: pendingStudentsData{
			Pending: []model.PendingStudent{
				{ID: "p1", Name: "Aarav Sharma", Email: "aarav@example.com", Phone: "+91 9000000002",
					Course: "Full Stack Development", Batch: "Morning",
					Address: "12 MG Road, Hyderabad", RegisteredAt: "2026-08-15"},
			},
			DefaultFee:  50000,
			Credentials: &approval.Credentials{Email: "aarav@example.com", Password: "s3cret99"},
		},
		Nav: nav.Initial(),
	})

	for _, want := range []string{
		"Registration Details", "Batch Preference", "Morning",
		"12 MG Road, Hyderabad", "2026-08-15", "s3cret99",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("pending students page missing %q", want)
		}
	}

	body = renderPage(t, renderer, "admin/pending_faculty", render.TemplateData{
		Title: "Pending Faculty",
		Data: pendingFacultyData{
			Pending: []model.PendingFaculty{
				{ID: "p2", Name: "Meera Pillai", Email: "meera@example.com", Phone: "+91 9000000001",
					Specialization: "Databases", Address: "4 Lake View, Kochi", RegisteredAt: "2026-08-10"},
			},
			DefaultSalary: 30000,
		},
		Nav: nav.Initial(),
	})

	for _, want := range []string{"Application Details", "4 Lake View, Kochi", "2026-08-10"} {
		if !strings.Contains(body, want) {
			t.Errorf("pending faculty page missing %q", want)
		}
	}
}

func TestShippedProfileOverlayShowsSignInHistory(t *testing.T) {
	renderer := productionRenderer(t)

	state := nav.Initial()
	state.OpenProfile()

	body := renderPage(t, renderer, "admin/dashboard", render.TemplateData{
		Title: "Dashboard",
		Data:  dashboardViewData{},
		Nav:   state,
		LoginActivity: []model.Activity{
			{Message: "admin logged in", IP: "203.0.113.7", Country: "IN", CreatedAt: time.Now()},
		},
	})

	for _, want := range []string{"Recent Sign-ins", "203.0.113.7", "IN"} {
		if !strings.Contains(body, want) {
			t.Errorf("profile overlay missing %q", want)
		}
	}
}

func TestShippedLoginTemplateRenders(t *testing.T) {
	renderer := productionRenderer(t)

	body := renderPage(t, renderer, "auth/login", render.TemplateData{Title: "Admin Login"})
	for _, want := range []string{`action="/login"`, `name="email"`, `name="password"`} {
		if !strings.Contains(body, want) {
			t.Errorf("login page missing %q", want)
		}
	}
}
