// Copyright (c) 2026 vspaze
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/vspaze/console/internal/auth"
	"github.com/vspaze/console/internal/model"
	"github.com/vspaze/console/internal/util"
)

// Default admin credentials
const (
	DefaultAdminEmail    = "admin@vspaze.com"
	DefaultAdminPassword = "changeme"
	DefaultAdminName     = "Admin"
	DefaultAdminPhone    = "+91 9876543210"
	DefaultAdminAddress  = "VSPaze Institute, Hyderabad, India"
)

// Seed creates initial data in the database.
func Seed(ctx context.Context, db *sql.DB) error {
	queries := New(db)

	// Check if admin account already exists
	_, err := queries.GetAdminByEmail(ctx, DefaultAdminEmail)
	if err == nil {
		slog.Info("admin account already exists, skipping seed")
		return nil
	}
	if err != sql.ErrNoRows {
		return fmt.Errorf("checking for admin account: %w", err)
	}

	passwordHash, err := auth.HashPassword(DefaultAdminPassword)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	// The account and its settings land together or not at all, so a
	// failed seed can simply be re-run.
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning seed transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()
	qtx := queries.WithTx(tx)

	now := time.Now()
	admin, err := qtx.CreateAdmin(ctx, CreateAdminParams{
		Email:        DefaultAdminEmail,
		PasswordHash: passwordHash,
		Name:         DefaultAdminName,
		Phone:        DefaultAdminPhone,
		Address:      DefaultAdminAddress,
		Role:         model.RoleSuperAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return fmt.Errorf("creating admin account: %w", err)
	}

	if err := qtx.SaveSettings(ctx, model.DefaultSettings()); err != nil {
		return fmt.Errorf("saving default settings: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing seed: %w", err)
	}

	slog.Info("created default admin account",
		"id", admin.ID,
		"email", admin.Email,
		"password", DefaultAdminPassword,
	)

	return nil
}

// SeedDemo populates the notification inbox and an announcement so a fresh
// install has something to show. Safe to call repeatedly.
func SeedDemo(ctx context.Context, db *sql.DB) error {
	queries := New(db)

	n, err := queries.CountUnreadNotifications(ctx)
	if err != nil {
		return fmt.Errorf("counting notifications: %w", err)
	}
	if n > 0 {
		return nil
	}

	now := time.Now()
	demo := []CreateNotificationParams{
		{Type: model.NotificationTypePayment, Title: "Payment Received",
			Message: "John Doe paid ₹30,000 for Full Stack Development", CreatedAt: now.Add(-5 * time.Minute)},
		{Type: model.NotificationTypeAttendance, Title: "Low Attendance Alert",
			Message: "Mike Johnson attendance dropped to 68% - Below minimum requirement", CreatedAt: now.Add(-15 * time.Minute)},
		{Type: model.NotificationTypeStudent, Title: "New Student Enrolled",
			Message: "Sarah Wilson enrolled in Data Science & AI - Batch B-2024", CreatedAt: now.Add(-time.Hour)},
		{Type: model.NotificationTypeFaculty, Title: "New Faculty Added",
			Message: "Dr. Robert Smith joined as Cloud Computing instructor", CreatedAt: now.Add(-2 * time.Hour)},
		{Type: model.NotificationTypeLeave, Title: "Leave Request",
			Message: "Prof. Michael Chen requested leave for 3 days (Jan 15-17)", CreatedAt: now.Add(-3 * time.Hour)},
	}
	for _, d := range demo {
		if _, err := queries.CreateNotification(ctx, d); err != nil {
			return fmt.Errorf("seeding notification: %w", err)
		}
	}

	title := "Welcome to the new academic year"
	_, err = queries.CreateAnnouncement(ctx, CreateAnnouncementParams{
		PublicID:       uuid.NewString(),
		Title:          title,
		Slug:           util.Slugify(title),
		Message:        "Classes for the 2024-2025 academic year begin Monday. Check your batch timings on the dashboard.",
		TargetAudience: model.AudienceAll,
		CreatedBy:      DefaultAdminName,
		CreatedAt:      now,
		UpdatedAt:      now,
	})
	if err != nil {
		return fmt.Errorf("seeding announcement: %w", err)
	}

	today := now.Format("2006-01-02")
	marks := []CreateAttendanceParams{
		{Kind: model.AttendanceKindStudent, Name: "John Doe", Detail: "Batch A-2024", Status: model.AttendanceStatusPresent},
		{Kind: model.AttendanceKindStudent, Name: "Sarah Wilson", Detail: "Batch B-2024", Status: model.AttendanceStatusPresent},
		{Kind: model.AttendanceKindStudent, Name: "Mike Johnson", Detail: "Batch C-2024", Status: model.AttendanceStatusAbsent},
		{Kind: model.AttendanceKindStudent, Name: "Emily Davis", Detail: "Batch A-2024", Status: model.AttendanceStatusPresent},
		{Kind: model.AttendanceKindFaculty, Name: "Dr. Sarah Johnson", Detail: "Data Science", Status: model.AttendanceStatusPresent},
		{Kind: model.AttendanceKindFaculty, Name: "Prof. Michael Chen", Detail: "Web Development", Status: model.AttendanceStatusPresent},
		{Kind: model.AttendanceKindFaculty, Name: "Dr. Emily Davis", Detail: "Cloud Computing", Status: model.AttendanceStatusAbsent},
	}
	for _, m := range marks {
		m.Date = today
		m.CreatedAt = now
		if _, err := queries.CreateAttendance(ctx, m); err != nil {
			return fmt.Errorf("seeding attendance: %w", err)
		}
	}

	slog.Info("seeded demo notifications, announcement and attendance")
	return nil
}
