// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mileusna/useragent"

	"github.com/olegiv/vitrine-go/internal/model"
	"github.com/olegiv/vitrine-go/internal/store"
)

// ContactSubmitRequest is the public contact form payload.
type ContactSubmitRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// ContactUpdateRequest is the admin triage payload.
type ContactUpdateRequest struct {
	ID              int64   `json:"id"`
	Status          *string `json:"status,omitempty"`
	ResponseMessage *string `json:"response_message,omitempty"`
}

// SubmitContact handles the public POST /api/contact. Validation happens
// before any insert, and the form can be switched off via the
// contact_form_enabled setting.
func (h *Handler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settings.Get(r.Context())
	if err != nil {
		slog.Error("loading settings", "error", err)
		WriteInternalError(w)
		return
	}
	if !settings.ContactFormEnabled {
		WriteError(w, http.StatusForbidden, "contact form is disabled")
		return
	}

	var req ContactSubmitRequest
	if err := decodeBody(r, &req); err != nil {
		WriteBadRequest(w, "invalid request body")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Message = strings.TrimSpace(req.Message)
	if req.Name == "" {
		WriteBadRequest(w, "name is required")
		return
	}
	if req.Email == "" {
		WriteBadRequest(w, "email is required")
		return
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		WriteBadRequest(w, "invalid email address")
		return
	}
	if req.Message == "" {
		WriteBadRequest(w, "message is required")
		return
	}

	now := time.Now().UTC()
	submission, err := h.queries.CreateContactSubmission(r.Context(), store.CreateContactSubmissionParams{
		Reference: uuid.New().String(),
		Name:      req.Name,
		Email:     req.Email,
		Phone:     strings.TrimSpace(req.Phone),
		Subject:   strings.TrimSpace(req.Subject),
		Message:   req.Message,
		UserAgent: summarizeUserAgent(r.UserAgent()),
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		slog.Error("creating contact submission", "error", err)
		WriteInternalError(w)
		return
	}

	slog.Info("contact submission received", "reference", submission.Reference)
	WriteResource(w, http.StatusCreated, "contact", submission)
}

// ListContactSubmissions handles GET /api/admin/contact with an optional
// status filter.
func (h *Handler) ListContactSubmissions(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status != "" && !model.ValidContactStatus(status) {
		WriteBadRequest(w, "invalid status filter")
		return
	}
	limit, offset := h.listWindow(r)

	items, err := h.queries.ListContactSubmissions(r.Context(), store.ListContactSubmissionsParams{
		Status: status,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		slog.Error("listing contact submissions", "error", err)
		WriteInternalError(w)
		return
	}
	total, err := h.queries.CountContactSubmissions(r.Context(), status)
	if err != nil {
		slog.Error("counting contact submissions", "error", err)
		WriteInternalError(w)
		return
	}

	if items == nil {
		items = []model.ContactSubmission{}
	}
	WriteList(w, "contact", items, NewPagination(total, limit, offset))
}

// ContactStatusCounts handles GET /api/admin/contact/counts, returning the
// number of submissions per status for the triage dashboard.
func (h *Handler) ContactStatusCounts(w http.ResponseWriter, r *http.Request) {
	counts, err := h.queries.CountContactSubmissionsByStatus(r.Context())
	if err != nil {
		slog.Error("counting contact submissions by status", "error", err)
		WriteInternalError(w)
		return
	}
	if counts == nil {
		counts = []model.ContactStatusCount{}
	}
	WriteResource(w, http.StatusOK, "counts", counts)
}

// UpdateContactSubmission handles PUT /api/admin/contact, patching the
// triage status and response note.
func (h *Handler) UpdateContactSubmission(w http.ResponseWriter, r *http.Request) {
	var req ContactUpdateRequest
	if err := decodeBody(r, &req); err != nil {
		WriteBadRequest(w, "invalid request body")
		return
	}
	if req.ID <= 0 {
		WriteBadRequest(w, "id is required")
		return
	}

	existing, err := h.queries.GetContactSubmission(r.Context(), req.ID)
	if errors.Is(err, sql.ErrNoRows) {
		WriteNotFound(w, "submission not found")
		return
	}
	if err != nil {
		slog.Error("fetching contact submission", "id", req.ID, "error", err)
		WriteInternalError(w)
		return
	}

	params := store.UpdateContactSubmissionParams{
		ID:              existing.ID,
		Status:          existing.Status,
		ResponseMessage: existing.ResponseMessage,
		UpdatedAt:       time.Now().UTC(),
	}
	if req.Status != nil {
		if !model.ValidContactStatus(*req.Status) {
			WriteBadRequest(w, "invalid status")
			return
		}
		params.Status = *req.Status
	}
	if req.ResponseMessage != nil {
		params.ResponseMessage = *req.ResponseMessage
	}

	submission, err := h.queries.UpdateContactSubmission(r.Context(), params)
	if err != nil {
		slog.Error("updating contact submission", "id", req.ID, "error", err)
		WriteInternalError(w)
		return
	}
	WriteResource(w, http.StatusOK, "contact", submission)
}

// DeleteContactSubmission handles DELETE /api/admin/contact?id=N.
func (h *Handler) DeleteContactSubmission(w http.ResponseWriter, r *http.Request) {
	id, err := idFromQuery(r)
	if err != nil || id <= 0 {
		WriteBadRequest(w, "invalid id")
		return
	}

	err = h.queries.DeleteContactSubmission(r.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		WriteNotFound(w, "submission not found")
		return
	}
	if err != nil {
		slog.Error("deleting contact submission", "id", id, "error", err)
		WriteInternalError(w)
		return
	}
	WriteOK(w)
}

// summarizeUserAgent condenses a raw User-Agent header into a short
// browser/OS/device summary stored for spam triage.
func summarizeUserAgent(raw string) string {
	if raw == "" {
		return ""
	}
	ua := useragent.Parse(raw)
	browser := ua.Name
	if browser == "" {
		browser = "Unknown"
	}
	os := ua.OS
	if os == "" {
		os = "Unknown"
	}
	device := "desktop"
	switch {
	case ua.Mobile:
		device = "mobile"
	case ua.Tablet:
		device = "tablet"
	case ua.Bot:
		device = "bot"
	}
	return browser + " / " + os + " / " + device
}
