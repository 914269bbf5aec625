// Copyright (c) 2026 vspaze
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Attendance kinds. Student rows carry the batch name in Detail,
// faculty rows carry the specialization.
const (
	AttendanceKindStudent = "student"
	AttendanceKindFaculty = "faculty"
)

// Attendance statuses.
const (
	AttendanceStatusPresent = "Present"
	AttendanceStatusAbsent  = "Absent"
	AttendanceStatusLate    = "Late"
	AttendanceStatusHalfDay = "Half Day"
)

// Attendance is one person's attendance mark for one day. Attendance is
// tracked locally; the platform API has no attendance resource.
type Attendance struct {
	ID        int64
	Kind      string
	Name      string
	Detail    string
	Date      string // YYYY-MM-DD
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsPresent reports whether the mark counts toward the attendance rate.
func (a *Attendance) IsPresent() bool {
	return a.Status == AttendanceStatusPresent
}

// ValidAttendanceStatus reports whether s is one of the four marks.
func ValidAttendanceStatus(s string) bool {
	switch s {
	case AttendanceStatusPresent, AttendanceStatusAbsent, AttendanceStatusLate, AttendanceStatusHalfDay:
		return true
	}
	return false
}
