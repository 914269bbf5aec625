// Copyright (c) 2026 vspaze
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Course statuses as stored by the platform API.
const (
	CourseStatusActive   = "active"
	CourseStatusInactive = "inactive"
)

// Course represents a course offering from the platform API.
type Course struct {
	ID          string   `json:"_id"`
	Name        string   `json:"name"`
	Code        string   `json:"code,omitempty"`
	Description string   `json:"description,omitempty"`
	Duration    string   `json:"duration,omitempty"`
	Fee         float64  `json:"fee,omitempty"`
	Subjects    []string `json:"subjects,omitempty"`
	Videos      []Video  `json:"videos,omitempty"`
	Students    int      `json:"students,omitempty"`
	Status      string   `json:"status"`
	CreatedAt   string   `json:"createdAt,omitempty"`
}

// IsActive returns true if the course is open for enrolment.
func (c *Course) IsActive() bool {
	return c.Status == CourseStatusActive
}

// Video is a lecture recording attached to a course module.
type Video struct {
	ID     string `json:"_id,omitempty"`
	Title  string `json:"title"`
	URL    string `json:"url"`
	Module string `json:"module,omitempty"`
}
