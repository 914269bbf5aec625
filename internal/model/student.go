// Copyright (c) 2026 vspaze
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Student statuses as stored by the platform API.
const (
	StudentStatusActive   = "Active"
	StudentStatusInactive = "Inactive"
)

// Student represents an enrolled student record from the platform API.
type Student struct {
	ID              string      `json:"_id"`
	Name            string      `json:"name"`
	Email           string      `json:"email"`
	Phone           string      `json:"phone"`
	Course          string      `json:"course,omitempty"`
	Batch           BatchRef    `json:"batch,omitempty"`
	EnrolledCourses []CourseRef `json:"enrolledCourses,omitempty"`
	TotalFee        float64     `json:"totalFee,omitempty"`
	PaidAmount      float64     `json:"paidAmount,omitempty"`
	DueAmount       float64     `json:"dueAmount,omitempty"`
	Status          string      `json:"status"`
	Address         string      `json:"address,omitempty"`
	JoinedAt        string      `json:"joinedAt,omitempty"`
	CreatedAt       string      `json:"createdAt,omitempty"`
}

// IsActive returns true if the student is currently active.
func (s *Student) IsActive() bool {
	return s.Status == StudentStatusActive
}

// EnrolledIn reports whether the student is enrolled in the course.
func (s Student) EnrolledIn(courseID string) bool {
	for _, c := range s.EnrolledCourses {
		if c.ID() == courseID {
			return true
		}
	}
	return false
}

// PendingStudent is a registration awaiting admin approval.
type PendingStudent struct {
	ID           string `json:"_id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Course       string `json:"course,omitempty"`
	Batch        string `json:"batch,omitempty"`
	Address      string `json:"address,omitempty"`
	RegisteredAt string `json:"registeredAt,omitempty"`
	CreatedAt    string `json:"createdAt,omitempty"`
}
