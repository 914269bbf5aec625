// Copyright (c) 2026 vspaze
// SPDX-License-Identifier: GPL-3.0-or-later

// Package nav owns which console screen is visible: the active section, at
// most one drill-down pointer, the sidebar groups and the profile overlay.
// The state round-trips through the session as JSON between requests.
package nav

import (
	"encoding/json"
	"fmt"
)

// Section identifiers, one per sidebar entry.
const (
	SectionHome            = "home"
	SectionStudents        = "students"
	SectionPendingStudents = "pending-students"
	SectionFaculty         = "faculty"
	SectionPendingFaculty  = "pending-faculty"
	SectionCourses         = "courses"
	SectionBatches         = "batches"
	SectionAttendance      = "attendance"
	SectionPayments        = "payments"
	SectionAnnouncements   = "announcements"
	SectionSettings        = "settings"
	SectionNotifications   = "notifications"
)

// Drill-down kinds, ordered by rendering precedence.
const (
	KindBatch   = "batch"
	KindCourse  = "course"
	KindFaculty = "faculty"
)

// Screen is what the shell should render for a given state.
type Screen struct {
	// Section is the active section, or the drill-down kind when EntityID
	// is set.
	Section string
	// EntityID is the drilled-into entity, empty for plain sections.
	EntityID string
	// ProfileOverlay renders the profile modal above the screen.
	ProfileOverlay bool
}

var validSections = map[string]bool{
	SectionHome: true, SectionStudents: true, SectionPendingStudents: true,
	SectionFaculty: true, SectionPendingFaculty: true, SectionCourses: true,
	SectionBatches: true, SectionAttendance: true, SectionPayments: true,
	SectionAnnouncements: true, SectionSettings: true, SectionNotifications: true,
}

// IsValidSection reports whether s names a known section screen.
func IsValidSection(s string) bool {
	return validSections[s]
}

// State is the shell's navigation state. At most one of the Selected*
// pointers is non-empty at a time; when one is set it takes rendering
// precedence over ActiveSection.
type State struct {
	ActiveSection     string `json:"activeSection"`
	SelectedBatch     string `json:"selectedBatch,omitempty"`
	SelectedCourse    string `json:"selectedCourse,omitempty"`
	SelectedFaculty   string `json:"selectedFaculty,omitempty"`
	SidebarOpen       bool   `json:"sidebarOpen"`
	ProfileOpen       bool   `json:"profileOverlayOpen"`
	StudentsGroupOpen bool   `json:"studentsGroupOpen"`
	FacultyGroupOpen  bool   `json:"facultyGroupOpen"`
}

// Initial returns the state of a fresh shell: home section, nothing
// drilled into, sidebar and overlay closed.
func Initial() State {
	return State{ActiveSection: SectionHome}
}

// Decode restores a state from its session JSON. Empty or corrupt input
// yields the initial state rather than an error; a stale session must never
// lock the admin out of the shell.
func Decode(raw string) State {
	if raw == "" {
		return Initial()
	}
	var s State
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return Initial()
	}
	if !IsValidSection(s.ActiveSection) {
		s.ActiveSection = SectionHome
	}
	return s
}

// Encode serializes the state for session storage.
func (s State) Encode() string {
	raw, err := json.Marshal(s)
	if err != nil {
		// State has no unmarshalable fields; keep the shell alive anyway.
		return ""
	}
	return string(raw)
}

// SelectSection switches to section. All drill-down pointers are cleared;
// an unknown section falls back to home.
func (s *State) SelectSection(section string) {
	if !IsValidSection(section) {
		section = SectionHome
	}
	s.ActiveSection = section
	s.SelectedBatch = ""
	s.SelectedCourse = ""
	s.SelectedFaculty = ""
}

// Drill enters the detail screen for entity id of the given kind. Only one
// pointer may be set at a time, so the others are cleared.
func (s *State) Drill(kind, id string) error {
	if id == "" {
		return fmt.Errorf("drill: empty entity id")
	}
	switch kind {
	case KindBatch:
		s.SelectedBatch, s.SelectedCourse, s.SelectedFaculty = id, "", ""
	case KindCourse:
		s.SelectedBatch, s.SelectedCourse, s.SelectedFaculty = "", id, ""
	case KindFaculty:
		s.SelectedBatch, s.SelectedCourse, s.SelectedFaculty = "", "", id
	default:
		return fmt.Errorf("drill: unknown kind %q", kind)
	}
	return nil
}

// Back leaves the detail screen of the given kind. Clearing a pointer that
// is already empty is a no-op; rendering reverts to ActiveSection.
func (s *State) Back(kind string) error {
	switch kind {
	case KindBatch:
		s.SelectedBatch = ""
	case KindCourse:
		s.SelectedCourse = ""
	case KindFaculty:
		s.SelectedFaculty = ""
	default:
		return fmt.Errorf("back: unknown kind %q", kind)
	}
	return nil
}

// OpenProfile shows the profile overlay. No other state is touched, so
// closing returns exactly to the prior screen.
func (s *State) OpenProfile() { s.ProfileOpen = true }

// CloseProfile hides the profile overlay.
func (s *State) CloseProfile() { s.ProfileOpen = false }

// ToggleSidebar flips the sidebar.
func (s *State) ToggleSidebar() { s.SidebarOpen = !s.SidebarOpen }

// ToggleGroup flips one of the expandable sidebar groups.
func (s *State) ToggleGroup(group string) error {
	switch group {
	case SectionStudents:
		s.StudentsGroupOpen = !s.StudentsGroupOpen
	case SectionFaculty:
		s.FacultyGroupOpen = !s.FacultyGroupOpen
	default:
		return fmt.Errorf("toggle group: unknown group %q", group)
	}
	return nil
}

// Render resolves the state to a screen by precedence: profile overlay >
// batch drill-down > course drill-down > faculty drill-down > section.
func (s State) Render() Screen {
	scr := Screen{Section: s.ActiveSection, ProfileOverlay: s.ProfileOpen}
	switch {
	case s.SelectedBatch != "":
		scr.Section, scr.EntityID = KindBatch, s.SelectedBatch
	case s.SelectedCourse != "":
		scr.Section, scr.EntityID = KindCourse, s.SelectedCourse
	case s.SelectedFaculty != "":
		scr.Section, scr.EntityID = KindFaculty, s.SelectedFaculty
	}
	return scr
}

// Invariant reports whether at most one drill-down pointer is set. Used by
// tests; transitions preserve it by construction.
func (s State) Invariant() bool {
	n := 0
	for _, p := range []string{s.SelectedBatch, s.SelectedCourse, s.SelectedFaculty} {
		if p != "" {
			n++
		}
	}
	return n <= 1
}
