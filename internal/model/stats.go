// Copyright (c) 2026 vspaze
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// DashboardStats are the aggregate counts shown on the dashboard landing.
type DashboardStats struct {
	TotalStudents int `json:"totalStudents"`
	TotalFaculty  int `json:"totalFaculty"`
	TotalCourses  int `json:"totalCourses"`
	TotalBatches  int `json:"totalBatches"`
}

// PendingCounts are the sidebar badge numbers for registrations awaiting
// review. Refreshed on a short interval by the scheduler.
type PendingCounts struct {
	Students int `json:"students"`
	Faculty  int `json:"faculty"`
}

// Total returns the combined badge count.
func (p PendingCounts) Total() int {
	return p.Students + p.Faculty
}
