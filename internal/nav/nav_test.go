// Copyright (c) 2026 vspaze
// SPDX-License-Identifier: GPL-3.0-or-later

package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitial(t *testing.T) {
	s := Initial()

	assert.Equal(t, SectionHome, s.ActiveSection)
	assert.False(t, s.SidebarOpen)
	assert.False(t, s.ProfileOpen)
	assert.True(t, s.Invariant())

	scr := s.Render()
	assert.Equal(t, SectionHome, scr.Section)
	assert.Empty(t, scr.EntityID)
}

func TestSelectSectionClearsDrillDowns(t *testing.T) {
	s := Initial()
	require.NoError(t, s.Drill(KindBatch, "b1"))
	require.Equal(t, "b1", s.SelectedBatch)

	s.SelectSection(SectionCourses)

	assert.Equal(t, SectionCourses, s.ActiveSection)
	assert.Empty(t, s.SelectedBatch)
	assert.Empty(t, s.SelectedCourse)
	assert.Empty(t, s.SelectedFaculty)
	assert.True(t, s.Invariant())
}

func TestSelectUnknownSectionFallsBackToHome(t *testing.T) {
	s := Initial()
	s.SelectSection(SectionPayments)

	s.SelectSection("reports")

	assert.Equal(t, SectionHome, s.ActiveSection)
}

func TestDrillReplacesOtherPointers(t *testing.T) {
	s := Initial()

	require.NoError(t, s.Drill(KindCourse, "c1"))
	require.NoError(t, s.Drill(KindFaculty, "f1"))

	assert.Empty(t, s.SelectedCourse)
	assert.Equal(t, "f1", s.SelectedFaculty)
	assert.True(t, s.Invariant())

	scr := s.Render()
	assert.Equal(t, KindFaculty, scr.Section)
	assert.Equal(t, "f1", scr.EntityID)
}

func TestDrillValidation(t *testing.T) {
	s := Initial()

	assert.Error(t, s.Drill(KindBatch, ""))
	assert.Error(t, s.Drill("payment", "p1"))
	assert.True(t, s.Invariant())
}

func TestBackRevertsToActiveSection(t *testing.T) {
	s := Initial()
	s.SelectSection(SectionBatches)
	require.NoError(t, s.Drill(KindBatch, "b1"))

	require.NoError(t, s.Back(KindBatch))

	assert.Empty(t, s.SelectedBatch)
	scr := s.Render()
	assert.Equal(t, SectionBatches, scr.Section)
}

func TestBackOnEmptyPointerIsNoOp(t *testing.T) {
	s := Initial()

	require.NoError(t, s.Back(KindCourse))
	assert.Equal(t, Initial(), s)

	assert.Error(t, s.Back("student"))
}

func TestProfileOverlayPrecedesEverything(t *testing.T) {
	s := Initial()
	s.SelectSection(SectionSettings)
	require.NoError(t, s.Drill(KindCourse, "c1"))

	before := s
	s.OpenProfile()

	scr := s.Render()
	assert.True(t, scr.ProfileOverlay)
	// The underlying screen is unchanged beneath the overlay.
	assert.Equal(t, KindCourse, scr.Section)
	assert.Equal(t, "c1", scr.EntityID)

	// Closing returns exactly to the prior state.
	s.CloseProfile()
	assert.Equal(t, before, s)
}

func TestRenderPrecedenceOrder(t *testing.T) {
	s := Initial()
	// Pointers are mutually exclusive via Drill; construct directly to pin
	// the precedence order batch > course > faculty.
	s.SelectedBatch = "b1"
	s.SelectedCourse = "c1"
	s.SelectedFaculty = "f1"

	scr := s.Render()
	assert.Equal(t, KindBatch, scr.Section)

	s.SelectedBatch = ""
	assert.Equal(t, KindCourse, s.Render().Section)

	s.SelectedCourse = ""
	assert.Equal(t, KindFaculty, s.Render().Section)
}

func TestToggles(t *testing.T) {
	s := Initial()

	s.ToggleSidebar()
	assert.True(t, s.SidebarOpen)
	s.ToggleSidebar()
	assert.False(t, s.SidebarOpen)

	require.NoError(t, s.ToggleGroup(SectionStudents))
	assert.True(t, s.StudentsGroupOpen)
	assert.False(t, s.FacultyGroupOpen)

	require.NoError(t, s.ToggleGroup(SectionFaculty))
	assert.True(t, s.FacultyGroupOpen)

	assert.Error(t, s.ToggleGroup(SectionCourses))
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	s := Initial()
	s.SelectSection(SectionAttendance)
	require.NoError(t, s.Drill(KindFaculty, "f9"))
	s.ToggleSidebar()
	s.OpenProfile()

	got := Decode(s.Encode())
	assert.Equal(t, s, got)
}

func TestDecodeCorruptInput(t *testing.T) {
	assert.Equal(t, Initial(), Decode(""))
	assert.Equal(t, Initial(), Decode("{not json"))

	// Unknown persisted section falls back to home.
	s := Decode(`{"activeSection":"reports"}`)
	assert.Equal(t, SectionHome, s.ActiveSection)
}

func TestTransitionSequencePreservesInvariant(t *testing.T) {
	s := Initial()
	steps := []func(){
		func() { _ = s.Drill(KindBatch, "b1") },
		func() { _ = s.Drill(KindCourse, "c1") },
		func() { s.SelectSection(SectionFaculty) },
		func() { _ = s.Drill(KindFaculty, "f1") },
		func() { _ = s.Back(KindFaculty) },
		func() { _ = s.Back(KindFaculty) },
		func() { s.SelectSection("bogus") },
	}

	for i, step := range steps {
		step()
		if !s.Invariant() {
			t.Fatalf("invariant violated after step %d: %+v", i, s)
		}
	}
}
