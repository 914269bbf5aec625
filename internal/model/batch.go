// Copyright (c) 2026 vspaze
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Batch statuses as stored by the platform API.
const (
	BatchStatusActive    = "Active"
	BatchStatusUpcoming  = "Upcoming"
	BatchStatusCompleted = "Completed"
)

// Batch represents a scheduled batch from the platform API. Course and
// Faculty may arrive expanded or as bare IDs depending on the endpoint.
type Batch struct {
	ID        string       `json:"_id"`
	Name      string       `json:"name"`
	Course    CourseRef    `json:"course,omitempty"`
	Faculty   FacultyRef   `json:"faculty,omitempty"`
	Students  []StudentRef `json:"students,omitempty"`
	Timing    string       `json:"timing,omitempty"`
	Duration  string       `json:"duration,omitempty"`
	StartDate string       `json:"startDate,omitempty"`
	Progress  int          `json:"progress,omitempty"`
	Status    string       `json:"status"`
	CreatedAt string       `json:"createdAt,omitempty"`
}

// StudentCount returns the number of enrolled students.
func (b Batch) StudentCount() int {
	return len(b.Students)
}
