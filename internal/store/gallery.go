// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"

	"github.com/olegiv/vitrine-go/internal/model"
)

const galleryColumns = "id, title, image_url, thumb_url, category, created_at, updated_at"

func scanGalleryItem(row interface{ Scan(...any) error }) (model.GalleryItem, error) {
	var g model.GalleryItem
	err := row.Scan(&g.ID, &g.Title, &g.ImageURL, &g.ThumbURL, &g.Category, &g.CreatedAt, &g.UpdatedAt)
	return g, err
}

// CreateGalleryItemParams holds fields for CreateGalleryItem.
type CreateGalleryItemParams struct {
	Title     string
	ImageURL  string
	ThumbURL  string
	Category  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateGalleryItem inserts a gallery item and returns the stored row.
func (q *Queries) CreateGalleryItem(ctx context.Context, arg CreateGalleryItemParams) (model.GalleryItem, error) {
	return scanGalleryItem(q.queryRow(ctx, `
		INSERT INTO gallery_items (title, image_url, thumb_url, category, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING `+galleryColumns,
		arg.Title, arg.ImageURL, arg.ThumbURL, arg.Category, arg.CreatedAt, arg.UpdatedAt))
}

// GetGalleryItem fetches a gallery item by id.
func (q *Queries) GetGalleryItem(ctx context.Context, id int64) (model.GalleryItem, error) {
	return scanGalleryItem(q.queryRow(ctx,
		`SELECT `+galleryColumns+` FROM gallery_items WHERE id = ?`, id))
}

// ListGalleryItemsParams holds filtering and pagination for ListGalleryItems.
// An empty Category matches all items.
type ListGalleryItemsParams struct {
	Category string
	Limit    int64
	Offset   int64
}

// ListGalleryItems returns gallery items, newest first.
func (q *Queries) ListGalleryItems(ctx context.Context, arg ListGalleryItemsParams) ([]model.GalleryItem, error) {
	rows, err := q.query(ctx, `
		SELECT `+galleryColumns+` FROM gallery_items
		WHERE (? = '' OR category = ?)
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?`, arg.Category, arg.Category, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.GalleryItem
	for rows.Next() {
		g, err := scanGalleryItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, g)
	}
	return items, rows.Err()
}

// CountGalleryItems returns the number of gallery items matching the category
// filter. An empty category counts everything.
func (q *Queries) CountGalleryItems(ctx context.Context, category string) (int64, error) {
	var n int64
	err := q.queryRow(ctx,
		`SELECT COUNT(*) FROM gallery_items WHERE (? = '' OR category = ?)`,
		category, category).Scan(&n)
	return n, err
}

// ListGalleryCategories returns the distinct non-empty categories in use.
func (q *Queries) ListGalleryCategories(ctx context.Context) ([]string, error) {
	rows, err := q.query(ctx,
		`SELECT DISTINCT category FROM gallery_items WHERE category != '' ORDER BY category`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// UpdateGalleryItemParams holds fields for UpdateGalleryItem.
type UpdateGalleryItemParams struct {
	ID        int64
	Title     string
	ImageURL  string
	ThumbURL  string
	Category  string
	UpdatedAt time.Time
}

// UpdateGalleryItem updates a gallery item and returns the stored row.
// Returns sql.ErrNoRows if the id does not exist.
func (q *Queries) UpdateGalleryItem(ctx context.Context, arg UpdateGalleryItemParams) (model.GalleryItem, error) {
	return scanGalleryItem(q.queryRow(ctx, `
		UPDATE gallery_items
		SET title = ?, image_url = ?, thumb_url = ?, category = ?, updated_at = ?
		WHERE id = ?
		RETURNING `+galleryColumns,
		arg.Title, arg.ImageURL, arg.ThumbURL, arg.Category, arg.UpdatedAt, arg.ID))
}

// DeleteGalleryItem removes a gallery item. Returns sql.ErrNoRows if the id
// does not exist.
func (q *Queries) DeleteGalleryItem(ctx context.Context, id int64) error {
	var deleted int64
	return q.queryRow(ctx, `DELETE FROM gallery_items WHERE id = ? RETURNING id`, id).Scan(&deleted)
}
