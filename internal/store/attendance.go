// Copyright (c) 2026 vspaze
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"

	"github.com/vspaze/console/internal/model"
)

// CreateAttendanceParams holds one attendance mark.
type CreateAttendanceParams struct {
	Kind      string
	Name      string
	Detail    string
	Date      string
	Status    string
	CreatedAt time.Time
}

const createAttendance = `INSERT INTO attendance (kind, name, detail, date, status, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?) RETURNING id`

// CreateAttendance records an attendance mark.
func (q *Queries) CreateAttendance(ctx context.Context, arg CreateAttendanceParams) (model.Attendance, error) {
	a := model.Attendance{
		Kind:      arg.Kind,
		Name:      arg.Name,
		Detail:    arg.Detail,
		Date:      arg.Date,
		Status:    arg.Status,
		CreatedAt: arg.CreatedAt,
		UpdatedAt: arg.CreatedAt,
	}
	row := q.db.QueryRowContext(ctx, createAttendance,
		arg.Kind, arg.Name, arg.Detail, arg.Date, arg.Status, arg.CreatedAt, arg.CreatedAt)
	if err := row.Scan(&a.ID); err != nil {
		return model.Attendance{}, err
	}
	return a, nil
}

const listAttendanceByDate = `SELECT id, kind, name, detail, date, status, created_at, updated_at
FROM attendance WHERE kind = ? AND date = ? ORDER BY name`

// ListAttendanceByDate returns all marks of one kind for one day.
func (q *Queries) ListAttendanceByDate(ctx context.Context, kind, date string) ([]model.Attendance, error) {
	rows, err := q.db.QueryContext(ctx, listAttendanceByDate, kind, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var marks []model.Attendance
	for rows.Next() {
		var a model.Attendance
		if err := rows.Scan(&a.ID, &a.Kind, &a.Name, &a.Detail, &a.Date, &a.Status, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		marks = append(marks, a)
	}
	return marks, rows.Err()
}

const updateAttendanceStatus = `UPDATE attendance SET status = ?, date = ?, updated_at = ? WHERE id = ?`

// UpdateAttendanceStatus changes a mark's status, re-dating it to the day
// the admin was viewing when they edited it.
func (q *Queries) UpdateAttendanceStatus(ctx context.Context, id int64, status, date string, updatedAt time.Time) error {
	res, err := q.db.ExecContext(ctx, updateAttendanceStatus, status, date, updatedAt, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}
