// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"

	"github.com/olegiv/vitrine-go/internal/model"
)

const testimonialColumns = "id, name, content, customer_photo, rating, status, created_at, updated_at"

func scanTestimonial(row interface{ Scan(...any) error }) (model.Testimonial, error) {
	var t model.Testimonial
	err := row.Scan(&t.ID, &t.Name, &t.Content, &t.CustomerPhoto, &t.Rating, &t.Status, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

// CreateTestimonialParams holds fields for CreateTestimonial.
type CreateTestimonialParams struct {
	Name          string
	Content       string
	CustomerPhoto string
	Rating        int64
	Status        string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// CreateTestimonial inserts a testimonial and returns the stored row.
func (q *Queries) CreateTestimonial(ctx context.Context, arg CreateTestimonialParams) (model.Testimonial, error) {
	return scanTestimonial(q.queryRow(ctx, `
		INSERT INTO testimonials (name, content, customer_photo, rating, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING `+testimonialColumns,
		arg.Name, arg.Content, arg.CustomerPhoto, arg.Rating, arg.Status, arg.CreatedAt, arg.UpdatedAt))
}

// GetTestimonial fetches a testimonial by id.
func (q *Queries) GetTestimonial(ctx context.Context, id int64) (model.Testimonial, error) {
	return scanTestimonial(q.queryRow(ctx,
		`SELECT `+testimonialColumns+` FROM testimonials WHERE id = ?`, id))
}

// ListTestimonialsParams holds filtering and pagination for ListTestimonials.
// An empty Status matches all testimonials.
type ListTestimonialsParams struct {
	Status string
	Limit  int64
	Offset int64
}

// ListTestimonials returns testimonials, newest first.
func (q *Queries) ListTestimonials(ctx context.Context, arg ListTestimonialsParams) ([]model.Testimonial, error) {
	rows, err := q.query(ctx, `
		SELECT `+testimonialColumns+` FROM testimonials
		WHERE (? = '' OR status = ?)
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?`, arg.Status, arg.Status, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.Testimonial
	for rows.Next() {
		t, err := scanTestimonial(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, t)
	}
	return items, rows.Err()
}

// CountTestimonials returns the number of testimonials matching the status filter.
func (q *Queries) CountTestimonials(ctx context.Context, status string) (int64, error) {
	var n int64
	err := q.queryRow(ctx,
		`SELECT COUNT(*) FROM testimonials WHERE (? = '' OR status = ?)`,
		status, status).Scan(&n)
	return n, err
}

// UpdateTestimonialParams holds fields for UpdateTestimonial.
type UpdateTestimonialParams struct {
	ID            int64
	Name          string
	Content       string
	CustomerPhoto string
	Rating        int64
	Status        string
	UpdatedAt     time.Time
}

// UpdateTestimonial updates a testimonial and returns the stored row.
// Returns sql.ErrNoRows if the id does not exist.
func (q *Queries) UpdateTestimonial(ctx context.Context, arg UpdateTestimonialParams) (model.Testimonial, error) {
	return scanTestimonial(q.queryRow(ctx, `
		UPDATE testimonials
		SET name = ?, content = ?, customer_photo = ?, rating = ?, status = ?, updated_at = ?
		WHERE id = ?
		RETURNING `+testimonialColumns,
		arg.Name, arg.Content, arg.CustomerPhoto, arg.Rating, arg.Status, arg.UpdatedAt, arg.ID))
}

// DeleteTestimonial removes a testimonial. Returns sql.ErrNoRows if the id
// does not exist.
func (q *Queries) DeleteTestimonial(ctx context.Context, id int64) error {
	var deleted int64
	return q.queryRow(ctx, `DELETE FROM testimonials WHERE id = ? RETURNING id`, id).Scan(&deleted)
}
