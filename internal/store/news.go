// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/olegiv/vitrine-go/internal/model"
)

const newsColumns = "id, title, slug, content, rendered_html, featured_image, status, published_at, scheduled_at, created_at, updated_at"

func scanNewsArticle(row interface{ Scan(...any) error }) (model.NewsArticle, error) {
	var n model.NewsArticle
	err := row.Scan(&n.ID, &n.Title, &n.Slug, &n.Content, &n.RenderedHTML, &n.FeaturedImage,
		&n.Status, &n.PublishedAt, &n.ScheduledAt, &n.CreatedAt, &n.UpdatedAt)
	return n, err
}

// CreateNewsArticleParams holds fields for CreateNewsArticle.
type CreateNewsArticleParams struct {
	Title         string
	Slug          string
	Content       string
	RenderedHTML  string
	FeaturedImage string
	Status        string
	PublishedAt   sql.NullTime
	ScheduledAt   sql.NullTime
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// CreateNewsArticle inserts an article and returns the stored row.
func (q *Queries) CreateNewsArticle(ctx context.Context, arg CreateNewsArticleParams) (model.NewsArticle, error) {
	return scanNewsArticle(q.queryRow(ctx, `
		INSERT INTO news_articles (title, slug, content, rendered_html, featured_image, status, published_at, scheduled_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING `+newsColumns,
		arg.Title, arg.Slug, arg.Content, arg.RenderedHTML, arg.FeaturedImage,
		arg.Status, arg.PublishedAt, arg.ScheduledAt, arg.CreatedAt, arg.UpdatedAt))
}

// GetNewsArticle fetches an article by id.
func (q *Queries) GetNewsArticle(ctx context.Context, id int64) (model.NewsArticle, error) {
	return scanNewsArticle(q.queryRow(ctx,
		`SELECT `+newsColumns+` FROM news_articles WHERE id = ?`, id))
}

// GetPublishedNewsArticleBySlug fetches a published article by slug.
func (q *Queries) GetPublishedNewsArticleBySlug(ctx context.Context, slug string) (model.NewsArticle, error) {
	return scanNewsArticle(q.queryRow(ctx,
		`SELECT `+newsColumns+` FROM news_articles WHERE slug = ? AND status = 'published'`, slug))
}

// ListNewsArticlesParams holds filtering and pagination for ListNewsArticles.
// An empty Status matches all articles.
type ListNewsArticlesParams struct {
	Status string
	Limit  int64
	Offset int64
}

// ListNewsArticles returns articles, most recently published or created first.
func (q *Queries) ListNewsArticles(ctx context.Context, arg ListNewsArticlesParams) ([]model.NewsArticle, error) {
	rows, err := q.query(ctx, `
		SELECT `+newsColumns+` FROM news_articles
		WHERE (? = '' OR status = ?)
		ORDER BY COALESCE(published_at, created_at) DESC, id DESC
		LIMIT ? OFFSET ?`, arg.Status, arg.Status, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.NewsArticle
	for rows.Next() {
		n, err := scanNewsArticle(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, n)
	}
	return items, rows.Err()
}

// CountNewsArticles returns the number of articles matching the status filter.
func (q *Queries) CountNewsArticles(ctx context.Context, status string) (int64, error) {
	var n int64
	err := q.queryRow(ctx,
		`SELECT COUNT(*) FROM news_articles WHERE (? = '' OR status = ?)`,
		status, status).Scan(&n)
	return n, err
}

// UpdateNewsArticleParams holds fields for UpdateNewsArticle.
type UpdateNewsArticleParams struct {
	ID            int64
	Title         string
	Slug          string
	Content       string
	RenderedHTML  string
	FeaturedImage string
	Status        string
	PublishedAt   sql.NullTime
	ScheduledAt   sql.NullTime
	UpdatedAt     time.Time
}

// UpdateNewsArticle updates an article and returns the stored row.
// Returns sql.ErrNoRows if the id does not exist.
func (q *Queries) UpdateNewsArticle(ctx context.Context, arg UpdateNewsArticleParams) (model.NewsArticle, error) {
	return scanNewsArticle(q.queryRow(ctx, `
		UPDATE news_articles
		SET title = ?, slug = ?, content = ?, rendered_html = ?, featured_image = ?,
		    status = ?, published_at = ?, scheduled_at = ?, updated_at = ?
		WHERE id = ?
		RETURNING `+newsColumns,
		arg.Title, arg.Slug, arg.Content, arg.RenderedHTML, arg.FeaturedImage,
		arg.Status, arg.PublishedAt, arg.ScheduledAt, arg.UpdatedAt, arg.ID))
}

// DeleteNewsArticle removes an article. Returns sql.ErrNoRows if the id does
// not exist.
func (q *Queries) DeleteNewsArticle(ctx context.Context, id int64) error {
	var deleted int64
	return q.queryRow(ctx, `DELETE FROM news_articles WHERE id = ? RETURNING id`, id).Scan(&deleted)
}

// PublishScheduledNewsArticles publishes drafts whose scheduled time has
// passed and returns the ids published. Called by the scheduler.
func (q *Queries) PublishScheduledNewsArticles(ctx context.Context, now time.Time) ([]int64, error) {
	rows, err := q.query(ctx, `
		UPDATE news_articles
		SET status = 'published', published_at = ?, scheduled_at = NULL, updated_at = ?
		WHERE status = 'draft' AND scheduled_at IS NOT NULL AND scheduled_at <= ?
		RETURNING id`, now, now, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// SlugExists reports whether a slug is taken by an article other than excludeID.
func (q *Queries) SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error) {
	var n int64
	err := q.queryRow(ctx,
		`SELECT COUNT(*) FROM news_articles WHERE slug = ? AND id != ?`,
		slug, excludeID).Scan(&n)
	return n > 0, err
}
