// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"

	"github.com/olegiv/vitrine-go/internal/model"
)

const serviceColumns = "id, title, description, image_url, order_index, created_at, updated_at"

func scanService(row interface{ Scan(...any) error }) (model.Service, error) {
	var s model.Service
	err := row.Scan(&s.ID, &s.Title, &s.Description, &s.ImageURL, &s.OrderIndex, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

// CreateServiceParams holds fields for CreateService.
type CreateServiceParams struct {
	Title       string
	Description string
	ImageURL    string
	OrderIndex  int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CreateService inserts a service and returns the stored row.
func (q *Queries) CreateService(ctx context.Context, arg CreateServiceParams) (model.Service, error) {
	return scanService(q.queryRow(ctx, `
		INSERT INTO services (title, description, image_url, order_index, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING `+serviceColumns,
		arg.Title, arg.Description, arg.ImageURL, arg.OrderIndex, arg.CreatedAt, arg.UpdatedAt))
}

// GetService fetches a service by id.
func (q *Queries) GetService(ctx context.Context, id int64) (model.Service, error) {
	return scanService(q.queryRow(ctx,
		`SELECT `+serviceColumns+` FROM services WHERE id = ?`, id))
}

// ListServicesParams holds pagination for ListServices.
type ListServicesParams struct {
	Limit  int64
	Offset int64
}

// ListServices returns services ordered for display.
func (q *Queries) ListServices(ctx context.Context, arg ListServicesParams) ([]model.Service, error) {
	rows, err := q.query(ctx, `
		SELECT `+serviceColumns+` FROM services
		ORDER BY order_index, id
		LIMIT ? OFFSET ?`, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.Service
	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	return items, rows.Err()
}

// CountServices returns the total number of services.
func (q *Queries) CountServices(ctx context.Context) (int64, error) {
	var n int64
	err := q.queryRow(ctx, `SELECT COUNT(*) FROM services`).Scan(&n)
	return n, err
}

// UpdateServiceParams holds fields for UpdateService.
type UpdateServiceParams struct {
	ID          int64
	Title       string
	Description string
	ImageURL    string
	OrderIndex  int64
	UpdatedAt   time.Time
}

// UpdateService updates a service and returns the stored row.
// Returns sql.ErrNoRows if the id does not exist.
func (q *Queries) UpdateService(ctx context.Context, arg UpdateServiceParams) (model.Service, error) {
	return scanService(q.queryRow(ctx, `
		UPDATE services
		SET title = ?, description = ?, image_url = ?, order_index = ?, updated_at = ?
		WHERE id = ?
		RETURNING `+serviceColumns,
		arg.Title, arg.Description, arg.ImageURL, arg.OrderIndex, arg.UpdatedAt, arg.ID))
}

// DeleteService removes a service. Returns sql.ErrNoRows if the id does not exist.
func (q *Queries) DeleteService(ctx context.Context, id int64) error {
	var deleted int64
	return q.queryRow(ctx, `DELETE FROM services WHERE id = ? RETURNING id`, id).Scan(&deleted)
}
