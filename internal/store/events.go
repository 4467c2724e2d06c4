// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/olegiv/vitrine-go/internal/model"
)

// CreateEventParams holds fields for CreateEvent.
type CreateEventParams struct {
	Level     string
	Category  string
	Message   string
	UserID    sql.NullInt64
	Metadata  string
	CreatedAt time.Time
}

// CreateEvent appends an event log entry.
func (q *Queries) CreateEvent(ctx context.Context, arg CreateEventParams) (model.Event, error) {
	var e model.Event
	err := q.queryRow(ctx, `
		INSERT INTO events (level, category, message, user_id, metadata, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id, level, category, message, user_id, metadata, created_at`,
		arg.Level, arg.Category, arg.Message, arg.UserID, arg.Metadata, arg.CreatedAt).
		Scan(&e.ID, &e.Level, &e.Category, &e.Message, &e.UserID, &e.Metadata, &e.CreatedAt)
	return e, err
}

// ListEventsParams holds filtering and pagination for ListEvents.
// Empty Level or Category match everything.
type ListEventsParams struct {
	Level    string
	Category string
	Limit    int64
	Offset   int64
}

// ListEvents returns event log entries, newest first.
func (q *Queries) ListEvents(ctx context.Context, arg ListEventsParams) ([]model.Event, error) {
	rows, err := q.query(ctx, `
		SELECT id, level, category, message, user_id, metadata, created_at
		FROM events
		WHERE (? = '' OR level = ?) AND (? = '' OR category = ?)
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?`,
		arg.Level, arg.Level, arg.Category, arg.Category, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.Event
	for rows.Next() {
		var e model.Event
		if err := rows.Scan(&e.ID, &e.Level, &e.Category, &e.Message, &e.UserID, &e.Metadata, &e.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	return items, rows.Err()
}

// CountEvents returns the number of events matching the filters.
func (q *Queries) CountEvents(ctx context.Context, level, category string) (int64, error) {
	var n int64
	err := q.queryRow(ctx, `
		SELECT COUNT(*) FROM events
		WHERE (? = '' OR level = ?) AND (? = '' OR category = ?)`,
		level, level, category, category).Scan(&n)
	return n, err
}

// PruneEvents deletes events older than cutoff and returns how many were
// removed. Called by the scheduler.
func (q *Queries) PruneEvents(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := q.exec(ctx, `DELETE FROM events WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
