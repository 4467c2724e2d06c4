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

	"github.com/olegiv/vitrine-go/internal/model"
	"github.com/olegiv/vitrine-go/internal/store"
)

// FAQRequest is the create/update payload for a FAQ item. Items created
// without a category land in the default one and are appended to the end
// of their category's order.
type FAQRequest struct {
	ID         int64   `json:"id,omitempty"`
	Question   *string `json:"question,omitempty"`
	Answer     *string `json:"answer,omitempty"`
	Category   *string `json:"category,omitempty"`
	OrderIndex *int64  `json:"order_index,omitempty"`
}

// ListFAQ handles GET /api/faq with an optional category filter.
func (h *Handler) ListFAQ(w http.ResponseWriter, r *http.Request) {
	limit, offset := h.listWindow(r)
	category := r.URL.Query().Get("category")

	items, err := h.queries.ListFAQItems(r.Context(), store.ListFAQItemsParams{
		Category: category,
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		slog.Error("listing faq items", "error", err)
		WriteInternalError(w)
		return
	}
	total, err := h.queries.CountFAQItems(r.Context(), category)
	if err != nil {
		slog.Error("counting faq items", "error", err)
		WriteInternalError(w)
		return
	}

	if items == nil {
		items = []model.FAQItem{}
	}
	WriteList(w, "faq", items, NewPagination(total, limit, offset))
}

// CreateFAQ handles POST /api/admin/faq.
func (h *Handler) CreateFAQ(w http.ResponseWriter, r *http.Request) {
	var req FAQRequest
	if err := decodeBody(r, &req); err != nil {
		WriteBadRequest(w, "invalid request body")
		return
	}
	if req.Question == nil || strings.TrimSpace(*req.Question) == "" {
		WriteBadRequest(w, "question is required")
		return
	}
	if req.Answer == nil || strings.TrimSpace(*req.Answer) == "" {
		WriteBadRequest(w, "answer is required")
		return
	}

	category := model.FAQDefaultCategory
	if req.Category != nil && strings.TrimSpace(*req.Category) != "" {
		category = strings.TrimSpace(*req.Category)
	}

	now := time.Now().UTC()
	item, err := h.queries.CreateFAQItem(r.Context(), store.CreateFAQItemParams{
		Question:  strings.TrimSpace(*req.Question),
		Answer:    strings.TrimSpace(*req.Answer),
		Category:  category,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		slog.Error("creating faq item", "error", err)
		WriteInternalError(w)
		return
	}
	WriteResource(w, http.StatusCreated, "faq", item)
}

// UpdateFAQ handles PUT /api/admin/faq.
func (h *Handler) UpdateFAQ(w http.ResponseWriter, r *http.Request) {
	var req FAQRequest
	if err := decodeBody(r, &req); err != nil {
		WriteBadRequest(w, "invalid request body")
		return
	}
	if req.ID <= 0 {
		WriteBadRequest(w, "id is required")
		return
	}

	existing, err := h.queries.GetFAQItem(r.Context(), req.ID)
	if errors.Is(err, sql.ErrNoRows) {
		WriteNotFound(w, "faq item not found")
		return
	}
	if err != nil {
		slog.Error("fetching faq item", "id", req.ID, "error", err)
		WriteInternalError(w)
		return
	}

	params := store.UpdateFAQItemParams{
		ID:         existing.ID,
		Question:   existing.Question,
		Answer:     existing.Answer,
		Category:   existing.Category,
		OrderIndex: existing.OrderIndex,
		UpdatedAt:  time.Now().UTC(),
	}
	if req.Question != nil {
		if strings.TrimSpace(*req.Question) == "" {
			WriteBadRequest(w, "question cannot be empty")
			return
		}
		params.Question = strings.TrimSpace(*req.Question)
	}
	if req.Answer != nil {
		if strings.TrimSpace(*req.Answer) == "" {
			WriteBadRequest(w, "answer cannot be empty")
			return
		}
		params.Answer = strings.TrimSpace(*req.Answer)
	}
	if req.Category != nil && strings.TrimSpace(*req.Category) != "" {
		params.Category = strings.TrimSpace(*req.Category)
	}
	if req.OrderIndex != nil {
		params.OrderIndex = *req.OrderIndex
	}

	item, err := h.queries.UpdateFAQItem(r.Context(), params)
	if err != nil {
		slog.Error("updating faq item", "id", req.ID, "error", err)
		WriteInternalError(w)
		return
	}
	WriteResource(w, http.StatusOK, "faq", item)
}

// DeleteFAQ handles DELETE /api/admin/faq?id=N.
func (h *Handler) DeleteFAQ(w http.ResponseWriter, r *http.Request) {
	id, err := idFromQuery(r)
	if err != nil || id <= 0 {
		WriteBadRequest(w, "invalid id")
		return
	}

	err = h.queries.DeleteFAQItem(r.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		WriteNotFound(w, "faq item not found")
		return
	}
	if err != nil {
		slog.Error("deleting faq item", "id", id, "error", err)
		WriteInternalError(w)
		return
	}
	WriteOK(w)
}
