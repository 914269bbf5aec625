// Copyright (c) 2026 vspaze
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"time"
)

// RoleSuperAdmin is the default role of the seeded console account.
const RoleSuperAdmin = "Super Administrator"

// Admin is a console account stored locally.
type Admin struct {
	ID           int64        `json:"id"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"` // Never expose in JSON
	Name         string       `json:"name"`
	Phone        string       `json:"phone"`
	Address      string       `json:"address"`
	Role         string       `json:"role"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
	LastLoginAt  sql.NullTime `json:"last_login_at,omitempty"`
}

// Announcement is an institute-wide notice authored from the console.
type Announcement struct {
	ID             int64     `json:"id"`
	PublicID       string    `json:"public_id"`
	Title          string    `json:"title"`
	Slug           string    `json:"slug"`
	Message        string    `json:"message"`
	TargetAudience string    `json:"targetAudience"`
	CreatedBy      string    `json:"createdBy"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Announcement target audiences.
const (
	AudienceAll      = "all"
	AudienceStudents = "students"
	AudienceFaculty  = "faculty"
)

// Notification categories shown in the console inbox.
const (
	NotificationTypePayment    = "payment"
	NotificationTypeAttendance = "attendance"
	NotificationTypeStudent    = "student"
	NotificationTypeFaculty    = "faculty"
	NotificationTypeLeave      = "leave"
)

// Notification is a console inbox entry.
type Notification struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

// Activity levels
const (
	ActivityLevelInfo    = "info"
	ActivityLevelWarning = "warning"
	ActivityLevelError   = "error"
)

// Activity categories
const (
	ActivityCategoryAuth     = "auth"
	ActivityCategoryApproval = "approval"
	ActivityCategoryNav      = "nav"
	ActivityCategorySystem   = "system"
	ActivityCategoryCache    = "cache"
)

// Activity is a console audit log entry.
type Activity struct {
	ID        int64
	Level     string
	Category  string
	Message   string
	AdminID   sql.NullInt64
	IP        string
	UserAgent string
	Country   string
	Metadata  string // JSON string
	CreatedAt time.Time
}
