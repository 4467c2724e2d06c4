// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"time"
)

// Service represents a service offering shown on the public site.
type Service struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	OrderIndex  int64     `json:"order_index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// GalleryItem represents a photo in the public gallery.
type GalleryItem struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	ImageURL  string    `json:"image_url"`
	ThumbURL  string    `json:"thumb_url"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// News article statuses
const (
	NewsStatusDraft     = "draft"
	NewsStatusPublished = "published"
	NewsStatusArchived  = "archived"
)

// NewsArticle represents a news post. Content is the authored markdown,
// RenderedHTML is the sanitized HTML served to the public site.
type NewsArticle struct {
	ID            int64        `json:"id"`
	Title         string       `json:"title"`
	Slug          string       `json:"slug"`
	Content       string       `json:"content"`
	RenderedHTML  string       `json:"rendered_html"`
	FeaturedImage string       `json:"featured_image"`
	Status        string       `json:"status"`
	PublishedAt   sql.NullTime `json:"published_at,omitempty"`
	ScheduledAt   sql.NullTime `json:"scheduled_at,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// IsPublished returns true if the article is published.
func (n *NewsArticle) IsPublished() bool {
	return n.Status == NewsStatusPublished
}

// FAQItem represents a question/answer pair ordered within its category.
type FAQItem struct {
	ID         int64     `json:"id"`
	Question   string    `json:"question"`
	Answer     string    `json:"answer"`
	Category   string    `json:"category"`
	OrderIndex int64     `json:"order_index"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// FAQDefaultCategory is assigned when a FAQ item is created without one.
const FAQDefaultCategory = "General"
