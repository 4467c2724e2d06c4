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

// ServiceRequest is the create/update payload for a service. On update the
// ID must be set; omitted fields keep their stored values.
type ServiceRequest struct {
	ID          int64   `json:"id,omitempty"`
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	ImageURL    *string `json:"image_url,omitempty"`
	OrderIndex  *int64  `json:"order_index,omitempty"`
}

// ListServices handles GET /api/services.
func (h *Handler) ListServices(w http.ResponseWriter, r *http.Request) {
	limit, offset := h.listWindow(r)

	items, err := h.queries.ListServices(r.Context(), store.ListServicesParams{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		slog.Error("listing services", "error", err)
		WriteInternalError(w)
		return
	}
	total, err := h.queries.CountServices(r.Context())
	if err != nil {
		slog.Error("counting services", "error", err)
		WriteInternalError(w)
		return
	}

	if items == nil {
		items = []model.Service{}
	}
	WriteList(w, "services", items, NewPagination(total, limit, offset))
}

// CreateService handles POST /api/admin/services.
func (h *Handler) CreateService(w http.ResponseWriter, r *http.Request) {
	var req ServiceRequest
	if err := decodeBody(r, &req); err != nil {
		WriteBadRequest(w, "invalid request body")
		return
	}
	if req.Title == nil || strings.TrimSpace(*req.Title) == "" {
		WriteBadRequest(w, "title is required")
		return
	}

	now := time.Now().UTC()
	params := store.CreateServiceParams{
		Title:     strings.TrimSpace(*req.Title),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if req.Description != nil {
		params.Description = *req.Description
	}
	if req.ImageURL != nil {
		params.ImageURL = *req.ImageURL
	}
	if req.OrderIndex != nil {
		params.OrderIndex = *req.OrderIndex
	}

	svc, err := h.queries.CreateService(r.Context(), params)
	if err != nil {
		slog.Error("creating service", "error", err)
		WriteInternalError(w)
		return
	}
	WriteResource(w, http.StatusCreated, "service", svc)
}

// UpdateService handles PUT /api/admin/services. The body carries the id;
// missing fields are left unchanged.
func (h *Handler) UpdateService(w http.ResponseWriter, r *http.Request) {
	var req ServiceRequest
	if err := decodeBody(r, &req); err != nil {
		WriteBadRequest(w, "invalid request body")
		return
	}
	if req.ID <= 0 {
		WriteBadRequest(w, "id is required")
		return
	}

	existing, err := h.queries.GetService(r.Context(), req.ID)
	if errors.Is(err, sql.ErrNoRows) {
		WriteNotFound(w, "service not found")
		return
	}
	if err != nil {
		slog.Error("fetching service", "id", req.ID, "error", err)
		WriteInternalError(w)
		return
	}

	params := store.UpdateServiceParams{
		ID:          existing.ID,
		Title:       existing.Title,
		Description: existing.Description,
		ImageURL:    existing.ImageURL,
		OrderIndex:  existing.OrderIndex,
		UpdatedAt:   time.Now().UTC(),
	}
	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			WriteBadRequest(w, "title cannot be empty")
			return
		}
		params.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		params.Description = *req.Description
	}
	if req.ImageURL != nil {
		params.ImageURL = *req.ImageURL
	}
	if req.OrderIndex != nil {
		params.OrderIndex = *req.OrderIndex
	}

	svc, err := h.queries.UpdateService(r.Context(), params)
	if err != nil {
		slog.Error("updating service", "id", req.ID, "error", err)
		WriteInternalError(w)
		return
	}
	WriteResource(w, http.StatusOK, "service", svc)
}

// DeleteService handles DELETE /api/admin/services?id=N.
func (h *Handler) DeleteService(w http.ResponseWriter, r *http.Request) {
	id, err := idFromQuery(r)
	if err != nil || id <= 0 {
		WriteBadRequest(w, "invalid id")
		return
	}

	err = h.queries.DeleteService(r.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		WriteNotFound(w, "service not found")
		return
	}
	if err != nil {
		slog.Error("deleting service", "id", id, "error", err)
		WriteInternalError(w)
		return
	}
	WriteOK(w)
}
