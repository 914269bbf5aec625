// Copyright (c) 2026 vspaze
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service provides the console's audit-trail layer: login and
// approval activity records enriched with user-agent and country data.
package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/mileusna/useragent"

	"github.com/vspaze/console/internal/geoip"
	"github.com/vspaze/console/internal/model"
	"github.com/vspaze/console/internal/store"
)

// ActivityService writes audit records to the local activities table.
type ActivityService struct {
	queries *store.Queries
	geo     *geoip.Lookup
}

// NewActivityService creates an ActivityService. geo may be a disabled
// lookup; country then stays empty.
func NewActivityService(db *sql.DB, geo *geoip.Lookup) *ActivityService {
	return &ActivityService{queries: store.New(db), geo: geo}
}

// Log creates an audit entry.
func (s *ActivityService) Log(ctx context.Context, level, category, message string, adminID *int64, ip string, metadata map[string]any) error {
	var nullAdminID sql.NullInt64
	if adminID != nil {
		nullAdminID = sql.NullInt64{Int64: *adminID, Valid: true}
	}

	metadataJSON := "{}"
	if metadata != nil {
		if raw, err := json.Marshal(metadata); err == nil {
			metadataJSON = string(raw)
		}
	}

	err := s.queries.CreateActivity(ctx, store.CreateActivityParams{
		Level:     level,
		Category:  category,
		Message:   message,
		AdminID:   nullAdminID,
		IP:        ip,
		Country:   s.geo.LookupCountry(ip),
		Metadata:  metadataJSON,
		CreatedAt: time.Now(),
	})
	if err != nil {
		slog.Error("failed to record activity", "error", err, "category", category)
	}
	return err
}

// LogInfo logs an info-level entry.
func (s *ActivityService) LogInfo(ctx context.Context, category, message string, adminID *int64, ip string, metadata map[string]any) error {
	return s.Log(ctx, model.ActivityLevelInfo, category, message, adminID, ip, metadata)
}

// LogWarning logs a warning-level entry.
func (s *ActivityService) LogWarning(ctx context.Context, category, message string, adminID *int64, ip string, metadata map[string]any) error {
	return s.Log(ctx, model.ActivityLevelWarning, category, message, adminID, ip, metadata)
}

// LogLogin records a login attempt with parsed user-agent details.
func (s *ActivityService) LogLogin(ctx context.Context, success bool, email string, adminID *int64, ip, userAgent string) error {
	ua := useragent.Parse(userAgent)
	browser, os := ua.Name, ua.OS
	if browser == "" {
		browser = "Unknown"
	}
	if os == "" {
		os = "Unknown"
	}

	level := model.ActivityLevelInfo
	message := "admin logged in"
	if !success {
		level = model.ActivityLevelWarning
		message = "failed login attempt"
	}

	var nullAdminID sql.NullInt64
	if adminID != nil {
		nullAdminID = sql.NullInt64{Int64: *adminID, Valid: true}
	}

	metadata, _ := json.Marshal(map[string]any{
		"email":   email,
		"browser": browser,
		"os":      os,
		"mobile":  ua.Mobile,
	})

	return s.queries.CreateActivity(ctx, store.CreateActivityParams{
		Level:     level,
		Category:  model.ActivityCategoryAuth,
		Message:   message,
		AdminID:   nullAdminID,
		IP:        ip,
		UserAgent: userAgent,
		Country:   s.geo.LookupCountry(ip),
		Metadata:  string(metadata),
		CreatedAt: time.Now(),
	})
}
