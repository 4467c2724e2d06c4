// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/vitrine-go/internal/model"
	"github.com/olegiv/vitrine-go/internal/render"
	"github.com/olegiv/vitrine-go/internal/store"
	"github.com/olegiv/vitrine-go/internal/util"
)

// NewsRequest is the create/update payload for a news article. Content is
// markdown; the server renders and sanitizes the HTML. On update the ID must
// be set and omitted fields keep their stored values.
type NewsRequest struct {
	ID            int64   `json:"id,omitempty"`
	Title         *string `json:"title,omitempty"`
	Slug          *string `json:"slug,omitempty"`
	Content       *string `json:"content,omitempty"`
	FeaturedImage *string `json:"featured_image,omitempty"`
	Status        *string `json:"status,omitempty"`
	ScheduledAt   *string `json:"scheduled_at,omitempty"` // RFC 3339, empty clears
}

// ListPublishedNews handles GET /api/news for the public site.
func (h *Handler) ListPublishedNews(w http.ResponseWriter, r *http.Request) {
	h.listNews(w, r, model.NewsStatusPublished)
}

// ListNews handles GET /api/admin/news with an optional status filter.
func (h *Handler) ListNews(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status != "" && !validNewsStatus(status) {
		WriteBadRequest(w, "invalid status filter")
		return
	}
	h.listNews(w, r, status)
}

func (h *Handler) listNews(w http.ResponseWriter, r *http.Request, status string) {
	limit, offset := h.listWindow(r)

	items, err := h.queries.ListNewsArticles(r.Context(), store.ListNewsArticlesParams{
		Status: status,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		slog.Error("listing news", "error", err)
		WriteInternalError(w)
		return
	}
	total, err := h.queries.CountNewsArticles(r.Context(), status)
	if err != nil {
		slog.Error("counting news", "error", err)
		WriteInternalError(w)
		return
	}

	if items == nil {
		items = []model.NewsArticle{}
	}
	WriteList(w, "news", items, NewPagination(total, limit, offset))
}

// GetNewsBySlug handles GET /api/news/{slug}, serving published articles only.
func (h *Handler) GetNewsBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	article, err := h.queries.GetPublishedNewsArticleBySlug(r.Context(), slug)
	if errors.Is(err, sql.ErrNoRows) {
		WriteNotFound(w, "article not found")
		return
	}
	if err != nil {
		slog.Error("fetching article", "slug", slug, "error", err)
		WriteInternalError(w)
		return
	}
	WriteResource(w, http.StatusOK, "article", article)
}

// CreateNews handles POST /api/admin/news.
func (h *Handler) CreateNews(w http.ResponseWriter, r *http.Request) {
	var req NewsRequest
	if err := decodeBody(r, &req); err != nil {
		WriteBadRequest(w, "invalid request body")
		return
	}
	if req.Title == nil || strings.TrimSpace(*req.Title) == "" {
		WriteBadRequest(w, "title is required")
		return
	}

	title := strings.TrimSpace(*req.Title)
	now := time.Now().UTC()
	params := store.CreateNewsArticleParams{
		Title:     title,
		Status:    model.NewsStatusDraft,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if req.Status != nil {
		if !validNewsStatus(*req.Status) {
			WriteBadRequest(w, "invalid status")
			return
		}
		params.Status = *req.Status
	}

	slug := util.Slugify(title)
	if req.Slug != nil && *req.Slug != "" {
		slug = util.Slugify(*req.Slug)
	}
	if slug == "" {
		WriteBadRequest(w, "title does not produce a valid slug")
		return
	}
	taken, err := h.queries.SlugExists(r.Context(), slug, 0)
	if err != nil {
		slog.Error("checking slug", "slug", slug, "error", err)
		WriteInternalError(w)
		return
	}
	if taken {
		WriteBadRequest(w, "slug is already in use")
		return
	}
	params.Slug = slug

	if req.Content != nil {
		html, err := render.Markdown(*req.Content)
		if err != nil {
			slog.Error("rendering article", "slug", slug, "error", err)
			WriteInternalError(w)
			return
		}
		params.Content = *req.Content
		params.RenderedHTML = html
	}
	if req.FeaturedImage != nil {
		params.FeaturedImage = *req.FeaturedImage
	}

	if req.ScheduledAt != nil && *req.ScheduledAt != "" {
		at, err := time.Parse(time.RFC3339, *req.ScheduledAt)
		if err != nil {
			WriteBadRequest(w, "scheduled_at must be RFC 3339")
			return
		}
		params.ScheduledAt = sql.NullTime{Time: at.UTC(), Valid: true}
	}
	if params.Status == model.NewsStatusPublished {
		params.PublishedAt = sql.NullTime{Time: now, Valid: true}
	}

	article, err := h.queries.CreateNewsArticle(r.Context(), params)
	if err != nil {
		slog.Error("creating article", "slug", slug, "error", err)
		WriteInternalError(w)
		return
	}
	WriteResource(w, http.StatusCreated, "article", article)
}

// UpdateNews handles PUT /api/admin/news. Changing content re-renders the
// HTML; publishing for the first time stamps published_at.
func (h *Handler) UpdateNews(w http.ResponseWriter, r *http.Request) {
	var req NewsRequest
	if err := decodeBody(r, &req); err != nil {
		WriteBadRequest(w, "invalid request body")
		return
	}
	if req.ID <= 0 {
		WriteBadRequest(w, "id is required")
		return
	}

	existing, err := h.queries.GetNewsArticle(r.Context(), req.ID)
	if errors.Is(err, sql.ErrNoRows) {
		WriteNotFound(w, "article not found")
		return
	}
	if err != nil {
		slog.Error("fetching article", "id", req.ID, "error", err)
		WriteInternalError(w)
		return
	}

	params := store.UpdateNewsArticleParams{
		ID:            existing.ID,
		Title:         existing.Title,
		Slug:          existing.Slug,
		Content:       existing.Content,
		RenderedHTML:  existing.RenderedHTML,
		FeaturedImage: existing.FeaturedImage,
		Status:        existing.Status,
		PublishedAt:   existing.PublishedAt,
		ScheduledAt:   existing.ScheduledAt,
		UpdatedAt:     time.Now().UTC(),
	}

	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			WriteBadRequest(w, "title cannot be empty")
			return
		}
		params.Title = strings.TrimSpace(*req.Title)
	}
	if req.Slug != nil && *req.Slug != "" {
		slug := util.Slugify(*req.Slug)
		if slug == "" {
			WriteBadRequest(w, "invalid slug")
			return
		}
		if slug != existing.Slug {
			taken, err := h.queries.SlugExists(r.Context(), slug, existing.ID)
			if err != nil {
				slog.Error("checking slug", "slug", slug, "error", err)
				WriteInternalError(w)
				return
			}
			if taken {
				WriteBadRequest(w, "slug is already in use")
				return
			}
		}
		params.Slug = slug
	}
	if req.Content != nil {
		html, err := render.Markdown(*req.Content)
		if err != nil {
			slog.Error("rendering article", "id", existing.ID, "error", err)
			WriteInternalError(w)
			return
		}
		params.Content = *req.Content
		params.RenderedHTML = html
	}
	if req.FeaturedImage != nil {
		params.FeaturedImage = *req.FeaturedImage
	}
	if req.Status != nil {
		if !validNewsStatus(*req.Status) {
			WriteBadRequest(w, "invalid status")
			return
		}
		params.Status = *req.Status
		if params.Status == model.NewsStatusPublished && !existing.PublishedAt.Valid {
			params.PublishedAt = sql.NullTime{Time: time.Now().UTC(), Valid: true}
		}
	}
	if req.ScheduledAt != nil {
		if *req.ScheduledAt == "" {
			params.ScheduledAt = sql.NullTime{}
		} else {
			at, err := time.Parse(time.RFC3339, *req.ScheduledAt)
			if err != nil {
				WriteBadRequest(w, "scheduled_at must be RFC 3339")
				return
			}
			params.ScheduledAt = sql.NullTime{Time: at.UTC(), Valid: true}
		}
	}

	article, err := h.queries.UpdateNewsArticle(r.Context(), params)
	if err != nil {
		slog.Error("updating article", "id", req.ID, "error", err)
		WriteInternalError(w)
		return
	}
	WriteResource(w, http.StatusOK, "article", article)
}

// DeleteNews handles DELETE /api/admin/news?id=N.
func (h *Handler) DeleteNews(w http.ResponseWriter, r *http.Request) {
	id, err := idFromQuery(r)
	if err != nil || id <= 0 {
		WriteBadRequest(w, "invalid id")
		return
	}

	err = h.queries.DeleteNewsArticle(r.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		WriteNotFound(w, "article not found")
		return
	}
	if err != nil {
		slog.Error("deleting article", "id", id, "error", err)
		WriteInternalError(w)
		return
	}
	WriteOK(w)
}

func validNewsStatus(s string) bool {
	switch s {
	case model.NewsStatusDraft, model.NewsStatusPublished, model.NewsStatusArchived:
		return true
	}
	return false
}
