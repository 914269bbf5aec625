// Copyright (c) 2026 vspaze
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Faculty represents a teaching staff record from the platform API.
type Faculty struct {
	ID              string   `json:"_id"`
	Name            string   `json:"name"`
	Email           string   `json:"email"`
	Phone           string   `json:"phone"`
	Specialization  string   `json:"specialization,omitempty"`
	AssignedCourses []string `json:"assignedCourses,omitempty"`
	Courses         []string `json:"courses,omitempty"`
	Students        int      `json:"students,omitempty"`
	Rating          float64  `json:"rating,omitempty"`
	Salary          float64  `json:"salary,omitempty"`
	Status          string   `json:"status,omitempty"`
	JoinedAt        string   `json:"joinedAt,omitempty"`
	CreatedAt       string   `json:"createdAt,omitempty"`
}

// PendingFaculty is a faculty application awaiting admin approval.
type PendingFaculty struct {
	ID             string `json:"_id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Specialization string `json:"specialization,omitempty"`
	Address        string `json:"address,omitempty"`
	RegisteredAt   string `json:"registeredAt,omitempty"`
	CreatedAt      string `json:"createdAt,omitempty"`
}
