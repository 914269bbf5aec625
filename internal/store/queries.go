// Copyright (c) 2026 vspaze
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/vspaze/console/internal/model"
)

// DBTX is satisfied by *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
	QueryContext(context.Context, string, ...any) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...any) *sql.Row
}

// Queries wraps a database handle with typed accessors.
type Queries struct {
	db DBTX
}

// New returns a Queries bound to db.
func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// WithTx returns a Queries bound to tx.
func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}

// settingsKey is the single row under which console settings are stored,
// matching the browser storage key the platform's web clients use.
const settingsKey = "vspaze_settings"

// ---- admins ----

// CreateAdminParams holds the fields for CreateAdmin.
type CreateAdminParams struct {
	Email        string
	PasswordHash string
	Name         string
	Phone        string
	Address      string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

const createAdmin = `INSERT INTO admins (email, password_hash, name, phone, address, role, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
RETURNING id, email, password_hash, name, phone, address, role, created_at, updated_at, last_login_at`

// CreateAdmin inserts a console account.
func (q *Queries) CreateAdmin(ctx context.Context, arg CreateAdminParams) (model.Admin, error) {
	row := q.db.QueryRowContext(ctx, createAdmin,
		arg.Email, arg.PasswordHash, arg.Name, arg.Phone, arg.Address, arg.Role, arg.CreatedAt, arg.UpdatedAt)
	return scanAdmin(row)
}

const getAdminByEmail = `SELECT id, email, password_hash, name, phone, address, role, created_at, updated_at, last_login_at
FROM admins WHERE email = ?`

// GetAdminByEmail fetches an account by email.
func (q *Queries) GetAdminByEmail(ctx context.Context, email string) (model.Admin, error) {
	return scanAdmin(q.db.QueryRowContext(ctx, getAdminByEmail, email))
}

const getAdminByID = `SELECT id, email, password_hash, name, phone, address, role, created_at, updated_at, last_login_at
FROM admins WHERE id = ?`

// GetAdminByID fetches an account by primary key.
func (q *Queries) GetAdminByID(ctx context.Context, id int64) (model.Admin, error) {
	return scanAdmin(q.db.QueryRowContext(ctx, getAdminByID, id))
}

// UpdateAdminProfileParams holds the editable profile fields.
type UpdateAdminProfileParams struct {
	ID        int64
	Name      string
	Email     string
	Phone     string
	Address   string
	UpdatedAt time.Time
}

const updateAdminProfile = `UPDATE admins SET name = ?, email = ?, phone = ?, address = ?, updated_at = ?
WHERE id = ?`

// UpdateAdminProfile applies profile edits made on the profile overlay.
func (q *Queries) UpdateAdminProfile(ctx context.Context, arg UpdateAdminProfileParams) error {
	_, err := q.db.ExecContext(ctx, updateAdminProfile,
		arg.Name, arg.Email, arg.Phone, arg.Address, arg.UpdatedAt, arg.ID)
	return err
}

const updateAdminPassword = `UPDATE admins SET password_hash = ?, updated_at = ? WHERE id = ?`

// UpdateAdminPassword replaces the stored password hash.
func (q *Queries) UpdateAdminPassword(ctx context.Context, id int64, passwordHash string, updatedAt time.Time) error {
	_, err := q.db.ExecContext(ctx, updateAdminPassword, passwordHash, updatedAt, id)
	return err
}

const updateAdminLastLogin = `UPDATE admins SET last_login_at = ? WHERE id = ?`

// UpdateAdminLastLogin records a successful login.
func (q *Queries) UpdateAdminLastLogin(ctx context.Context, id int64, at time.Time) error {
	_, err := q.db.ExecContext(ctx, updateAdminLastLogin, at, id)
	return err
}

func scanAdmin(row *sql.Row) (model.Admin, error) {
	var a model.Admin
	err := row.Scan(&a.ID, &a.Email, &a.PasswordHash, &a.Name, &a.Phone, &a.Address, &a.Role,
		&a.CreatedAt, &a.UpdatedAt, &a.LastLoginAt)
	return a, err
}

// ---- settings ----

const getSetting = `SELECT value FROM settings WHERE key = ?`

const upsertSetting = `INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`

// GetSettings loads console settings, falling back to defaults when none
// were saved yet.
func (q *Queries) GetSettings(ctx context.Context) (model.Settings, error) {
	var raw string
	err := q.db.QueryRowContext(ctx, getSetting, settingsKey).Scan(&raw)
	if err == sql.ErrNoRows {
		return model.DefaultSettings(), nil
	}
	if err != nil {
		return model.Settings{}, err
	}
	var s model.Settings
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return model.Settings{}, fmt.Errorf("decoding settings: %w", err)
	}
	return s, nil
}

// SaveSettings persists console settings wholesale.
func (q *Queries) SaveSettings(ctx context.Context, s model.Settings) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}
	_, err = q.db.ExecContext(ctx, upsertSetting, settingsKey, string(raw), time.Now())
	return err
}

// ---- announcements ----

// CreateAnnouncementParams holds the fields for CreateAnnouncement.
type CreateAnnouncementParams struct {
	PublicID       string
	Title          string
	Slug           string
	Message        string
	TargetAudience string
	CreatedBy      string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

const createAnnouncement = `INSERT INTO announcements (public_id, title, slug, message, target_audience, created_by, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
RETURNING id, public_id, title, slug, message, target_audience, created_by, created_at, updated_at`

// CreateAnnouncement inserts a new announcement.
func (q *Queries) CreateAnnouncement(ctx context.Context, arg CreateAnnouncementParams) (model.Announcement, error) {
	row := q.db.QueryRowContext(ctx, createAnnouncement,
		arg.PublicID, arg.Title, arg.Slug, arg.Message, arg.TargetAudience, arg.CreatedBy, arg.CreatedAt, arg.UpdatedAt)
	return scanAnnouncement(row)
}

const listAnnouncements = `SELECT id, public_id, title, slug, message, target_audience, created_by, created_at, updated_at
FROM announcements ORDER BY created_at DESC`

// ListAnnouncements returns all announcements, newest first.
func (q *Queries) ListAnnouncements(ctx context.Context) ([]model.Announcement, error) {
	rows, err := q.db.QueryContext(ctx, listAnnouncements)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Announcement
	for rows.Next() {
		var a model.Announcement
		if err := rows.Scan(&a.ID, &a.PublicID, &a.Title, &a.Slug, &a.Message,
			&a.TargetAudience, &a.CreatedBy, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

const getAnnouncementByPublicID = `SELECT id, public_id, title, slug, message, target_audience, created_by, created_at, updated_at
FROM announcements WHERE public_id = ?`

// GetAnnouncementByPublicID fetches one announcement.
func (q *Queries) GetAnnouncementByPublicID(ctx context.Context, publicID string) (model.Announcement, error) {
	return scanAnnouncement(q.db.QueryRowContext(ctx, getAnnouncementByPublicID, publicID))
}

// UpdateAnnouncementParams holds the editable announcement fields.
type UpdateAnnouncementParams struct {
	PublicID       string
	Title          string
	Slug           string
	Message        string
	TargetAudience string
	UpdatedAt      time.Time
}

const updateAnnouncement = `UPDATE announcements SET title = ?, slug = ?, message = ?, target_audience = ?, updated_at = ?
WHERE public_id = ?`

// UpdateAnnouncement applies edits to an existing announcement.
func (q *Queries) UpdateAnnouncement(ctx context.Context, arg UpdateAnnouncementParams) error {
	res, err := q.db.ExecContext(ctx, updateAnnouncement,
		arg.Title, arg.Slug, arg.Message, arg.TargetAudience, arg.UpdatedAt, arg.PublicID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

const deleteAnnouncement = `DELETE FROM announcements WHERE public_id = ?`

// DeleteAnnouncement removes an announcement.
func (q *Queries) DeleteAnnouncement(ctx context.Context, publicID string) error {
	res, err := q.db.ExecContext(ctx, deleteAnnouncement, publicID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func scanAnnouncement(row *sql.Row) (model.Announcement, error) {
	var a model.Announcement
	err := row.Scan(&a.ID, &a.PublicID, &a.Title, &a.Slug, &a.Message,
		&a.TargetAudience, &a.CreatedBy, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

// ---- notifications ----

// CreateNotificationParams holds the fields for CreateNotification.
type CreateNotificationParams struct {
	Type      string
	Title     string
	Message   string
	CreatedAt time.Time
}

const createNotification = `INSERT INTO notifications (type, title, message, read, created_at)
VALUES (?, ?, ?, 0, ?)
RETURNING id, type, title, message, read, created_at`

// CreateNotification inserts an unread inbox entry.
func (q *Queries) CreateNotification(ctx context.Context, arg CreateNotificationParams) (model.Notification, error) {
	row := q.db.QueryRowContext(ctx, createNotification, arg.Type, arg.Title, arg.Message, arg.CreatedAt)
	var n model.Notification
	err := row.Scan(&n.ID, &n.Type, &n.Title, &n.Message, &n.Read, &n.CreatedAt)
	return n, err
}

const listNotifications = `SELECT id, type, title, message, read, created_at
FROM notifications ORDER BY created_at DESC`

const listNotificationsByType = `SELECT id, type, title, message, read, created_at
FROM notifications WHERE type = ? ORDER BY created_at DESC`

// ListNotifications returns inbox entries newest first, optionally filtered
// by type. An empty typ returns everything.
func (q *Queries) ListNotifications(ctx context.Context, typ string) ([]model.Notification, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if typ == "" {
		rows, err = q.db.QueryContext(ctx, listNotifications)
	} else {
		rows, err = q.db.QueryContext(ctx, listNotificationsByType, typ)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Notification
	for rows.Next() {
		var n model.Notification
		if err := rows.Scan(&n.ID, &n.Type, &n.Title, &n.Message, &n.Read, &n.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

const countUnreadNotifications = `SELECT COUNT(*) FROM notifications WHERE read = 0`

// CountUnreadNotifications returns the unread badge count.
func (q *Queries) CountUnreadNotifications(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countUnreadNotifications).Scan(&n)
	return n, err
}

const markNotificationRead = `UPDATE notifications SET read = 1 WHERE id = ?`

// MarkNotificationRead marks one entry as read.
func (q *Queries) MarkNotificationRead(ctx context.Context, id int64) error {
	res, err := q.db.ExecContext(ctx, markNotificationRead, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

const markAllNotificationsRead = `UPDATE notifications SET read = 1 WHERE read = 0`

// MarkAllNotificationsRead marks the whole inbox read.
func (q *Queries) MarkAllNotificationsRead(ctx context.Context) error {
	_, err := q.db.ExecContext(ctx, markAllNotificationsRead)
	return err
}

const deleteNotification = `DELETE FROM notifications WHERE id = ?`

// DeleteNotification removes one inbox entry.
func (q *Queries) DeleteNotification(ctx context.Context, id int64) error {
	res, err := q.db.ExecContext(ctx, deleteNotification, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// ---- activities ----

// CreateActivityParams holds the fields for CreateActivity.
type CreateActivityParams struct {
	Level     string
	Category  string
	Message   string
	AdminID   sql.NullInt64
	IP        string
	UserAgent string
	Country   string
	Metadata  string
	CreatedAt time.Time
}

const createActivity = `INSERT INTO activities (level, category, message, admin_id, ip, user_agent, country, metadata, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

// CreateActivity appends an audit log entry.
func (q *Queries) CreateActivity(ctx context.Context, arg CreateActivityParams) error {
	_, err := q.db.ExecContext(ctx, createActivity,
		arg.Level, arg.Category, arg.Message, arg.AdminID, arg.IP, arg.UserAgent, arg.Country, arg.Metadata, arg.CreatedAt)
	return err
}

const listActivities = `SELECT id, level, category, message, admin_id, ip, user_agent, country, metadata, created_at
FROM activities ORDER BY created_at DESC LIMIT ?`

// ListActivities returns the most recent audit entries.
func (q *Queries) ListActivities(ctx context.Context, limit int64) ([]model.Activity, error) {
	rows, err := q.db.QueryContext(ctx, listActivities, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectActivities(rows)
}

const listActivitiesByCategory = `SELECT id, level, category, message, admin_id, ip, user_agent, country, metadata, created_at
FROM activities WHERE category = ? ORDER BY created_at DESC LIMIT ?`

// ListActivitiesByCategory returns recent audit entries of one category.
func (q *Queries) ListActivitiesByCategory(ctx context.Context, category string, limit int64) ([]model.Activity, error) {
	rows, err := q.db.QueryContext(ctx, listActivitiesByCategory, category, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectActivities(rows)
}

const purgeActivitiesBefore = `DELETE FROM activities WHERE created_at < ?`

// PurgeActivitiesBefore trims old audit entries. Returns rows removed.
func (q *Queries) PurgeActivitiesBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := q.db.ExecContext(ctx, purgeActivitiesBefore, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func collectActivities(rows *sql.Rows) ([]model.Activity, error) {
	var out []model.Activity
	for rows.Next() {
		var a model.Activity
		if err := rows.Scan(&a.ID, &a.Level, &a.Category, &a.Message, &a.AdminID,
			&a.IP, &a.UserAgent, &a.Country, &a.Metadata, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// ---- pending counts snapshot ----

const upsertPendingCounts = `INSERT INTO pending_counts (id, students, faculty, refreshed_at) VALUES (1, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET students = excluded.students, faculty = excluded.faculty, refreshed_at = excluded.refreshed_at`

// UpsertPendingCounts stores the latest badge snapshot.
func (q *Queries) UpsertPendingCounts(ctx context.Context, c model.PendingCounts, refreshedAt time.Time) error {
	_, err := q.db.ExecContext(ctx, upsertPendingCounts, c.Students, c.Faculty, refreshedAt)
	return err
}

const getPendingCounts = `SELECT students, faculty, refreshed_at FROM pending_counts WHERE id = 1`

// GetPendingCounts loads the last badge snapshot. Returns zeros when the
// scheduler has not run yet.
func (q *Queries) GetPendingCounts(ctx context.Context) (model.PendingCounts, time.Time, error) {
	var (
		c  model.PendingCounts
		at time.Time
	)
	err := q.db.QueryRowContext(ctx, getPendingCounts).Scan(&c.Students, &c.Faculty, &at)
	if err == sql.ErrNoRows {
		return model.PendingCounts{}, time.Time{}, nil
	}
	return c, at, err
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
