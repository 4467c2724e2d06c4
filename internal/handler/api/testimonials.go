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

// TestimonialSubmitRequest is the public submission payload. Submissions
// land as pending and are invisible until approved.
type TestimonialSubmitRequest struct {
	Name    string `json:"name"`
	Content string `json:"content"`
	Rating  int64  `json:"rating"`
}

// TestimonialRequest is the admin create/update payload.
type TestimonialRequest struct {
	ID            int64   `json:"id,omitempty"`
	Name          *string `json:"name,omitempty"`
	Content       *string `json:"content,omitempty"`
	CustomerPhoto *string `json:"customer_photo,omitempty"`
	Rating        *int64  `json:"rating,omitempty"`
	Status        *string `json:"status,omitempty"`
}

// ListApprovedTestimonials handles GET /api/testimonials for the public site.
func (h *Handler) ListApprovedTestimonials(w http.ResponseWriter, r *http.Request) {
	h.listTestimonials(w, r, model.TestimonialStatusApproved)
}

// ListTestimonials handles GET /api/admin/testimonials with an optional
// status filter.
func (h *Handler) ListTestimonials(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status != "" && !model.ValidTestimonialStatus(status) {
		WriteBadRequest(w, "invalid status filter")
		return
	}
	h.listTestimonials(w, r, status)
}

func (h *Handler) listTestimonials(w http.ResponseWriter, r *http.Request, status string) {
	limit, offset := h.listWindow(r)

	items, err := h.queries.ListTestimonials(r.Context(), store.ListTestimonialsParams{
		Status: status,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		slog.Error("listing testimonials", "error", err)
		WriteInternalError(w)
		return
	}
	total, err := h.queries.CountTestimonials(r.Context(), status)
	if err != nil {
		slog.Error("counting testimonials", "error", err)
		WriteInternalError(w)
		return
	}

	if items == nil {
		items = []model.Testimonial{}
	}
	WriteList(w, "testimonials", items, NewPagination(total, limit, offset))
}

// SubmitTestimonial handles the public POST /api/testimonials.
func (h *Handler) SubmitTestimonial(w http.ResponseWriter, r *http.Request) {
	var req TestimonialSubmitRequest
	if err := decodeBody(r, &req); err != nil {
		WriteBadRequest(w, "invalid request body")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Content = strings.TrimSpace(req.Content)
	if req.Name == "" {
		WriteBadRequest(w, "name is required")
		return
	}
	if req.Content == "" {
		WriteBadRequest(w, "content is required")
		return
	}
	if req.Rating < model.RatingMin || req.Rating > model.RatingMax {
		WriteBadRequest(w, "rating must be between 1 and 5")
		return
	}

	now := time.Now().UTC()
	t, err := h.queries.CreateTestimonial(r.Context(), store.CreateTestimonialParams{
		Name:      req.Name,
		Content:   req.Content,
		Rating:    req.Rating,
		Status:    model.TestimonialStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		slog.Error("creating testimonial", "error", err)
		WriteInternalError(w)
		return
	}
	WriteResource(w, http.StatusCreated, "testimonial", t)
}

// CreateTestimonial handles POST /api/admin/testimonials. Unlike public
// submissions the status can be set directly.
func (h *Handler) CreateTestimonial(w http.ResponseWriter, r *http.Request) {
	var req TestimonialRequest
	if err := decodeBody(r, &req); err != nil {
		WriteBadRequest(w, "invalid request body")
		return
	}
	if req.Name == nil || strings.TrimSpace(*req.Name) == "" {
		WriteBadRequest(w, "name is required")
		return
	}
	if req.Content == nil || strings.TrimSpace(*req.Content) == "" {
		WriteBadRequest(w, "content is required")
		return
	}
	if req.Rating == nil || *req.Rating < model.RatingMin || *req.Rating > model.RatingMax {
		WriteBadRequest(w, "rating must be between 1 and 5")
		return
	}

	now := time.Now().UTC()
	params := store.CreateTestimonialParams{
		Name:      strings.TrimSpace(*req.Name),
		Content:   strings.TrimSpace(*req.Content),
		Rating:    *req.Rating,
		Status:    model.TestimonialStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if req.CustomerPhoto != nil {
		params.CustomerPhoto = *req.CustomerPhoto
	}
	if req.Status != nil {
		if !model.ValidTestimonialStatus(*req.Status) {
			WriteBadRequest(w, "invalid status")
			return
		}
		params.Status = *req.Status
	}

	t, err := h.queries.CreateTestimonial(r.Context(), params)
	if err != nil {
		slog.Error("creating testimonial", "error", err)
		WriteInternalError(w)
		return
	}
	WriteResource(w, http.StatusCreated, "testimonial", t)
}

// UpdateTestimonial handles PUT /api/admin/testimonials. Approving or
// rejecting a submission is a status patch.
func (h *Handler) UpdateTestimonial(w http.ResponseWriter, r *http.Request) {
	var req TestimonialRequest
	if err := decodeBody(r, &req); err != nil {
		WriteBadRequest(w, "invalid request body")
		return
	}
	if req.ID <= 0 {
		WriteBadRequest(w, "id is required")
		return
	}

	existing, err := h.queries.GetTestimonial(r.Context(), req.ID)
	if errors.Is(err, sql.ErrNoRows) {
		WriteNotFound(w, "testimonial not found")
		return
	}
	if err != nil {
		slog.Error("fetching testimonial", "id", req.ID, "error", err)
		WriteInternalError(w)
		return
	}

	params := store.UpdateTestimonialParams{
		ID:            existing.ID,
		Name:          existing.Name,
		Content:       existing.Content,
		CustomerPhoto: existing.CustomerPhoto,
		Rating:        existing.Rating,
		Status:        existing.Status,
		UpdatedAt:     time.Now().UTC(),
	}
	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			WriteBadRequest(w, "name cannot be empty")
			return
		}
		params.Name = strings.TrimSpace(*req.Name)
	}
	if req.Content != nil {
		if strings.TrimSpace(*req.Content) == "" {
			WriteBadRequest(w, "content cannot be empty")
			return
		}
		params.Content = strings.TrimSpace(*req.Content)
	}
	if req.CustomerPhoto != nil {
		params.CustomerPhoto = *req.CustomerPhoto
	}
	if req.Rating != nil {
		if *req.Rating < model.RatingMin || *req.Rating > model.RatingMax {
			WriteBadRequest(w, "rating must be between 1 and 5")
			return
		}
		params.Rating = *req.Rating
	}
	if req.Status != nil {
		if !model.ValidTestimonialStatus(*req.Status) {
			WriteBadRequest(w, "invalid status")
			return
		}
		params.Status = *req.Status
	}

	t, err := h.queries.UpdateTestimonial(r.Context(), params)
	if err != nil {
		slog.Error("updating testimonial", "id", req.ID, "error", err)
		WriteInternalError(w)
		return
	}
	WriteResource(w, http.StatusOK, "testimonial", t)
}

// DeleteTestimonial handles DELETE /api/admin/testimonials?id=N.
func (h *Handler) DeleteTestimonial(w http.ResponseWriter, r *http.Request) {
	id, err := idFromQuery(r)
	if err != nil || id <= 0 {
		WriteBadRequest(w, "invalid id")
		return
	}

	err = h.queries.DeleteTestimonial(r.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		WriteNotFound(w, "testimonial not found")
		return
	}
	if err != nil {
		slog.Error("deleting testimonial", "id", id, "error", err)
		WriteInternalError(w)
		return
	}
	WriteOK(w)
}
