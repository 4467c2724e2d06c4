// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package api provides the JSON API handlers for the public site and the
// admin back office.
package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/vitrine-go/internal/cache"
	"github.com/olegiv/vitrine-go/internal/imaging"
	"github.com/olegiv/vitrine-go/internal/middleware"
	"github.com/olegiv/vitrine-go/internal/model"
	"github.com/olegiv/vitrine-go/internal/store"
)

// MaxListLimit caps the limit query parameter on list endpoints.
const MaxListLimit = 100

// Handler holds shared dependencies for all API handlers.
type Handler struct {
	db        *store.DB
	queries   *store.Queries
	sm        *scs.SessionManager
	settings  *cache.SettingsCache
	images    *imaging.Processor
	login     *middleware.LoginProtection
	startTime time.Time
}

// NewHandler creates a new API handler.
func NewHandler(db *store.DB, sm *scs.SessionManager, settings *cache.SettingsCache,
	images *imaging.Processor, login *middleware.LoginProtection) *Handler {
	return &Handler{
		db:        db,
		queries:   store.New(db),
		sm:        sm,
		settings:  settings,
		images:    images,
		login:     login,
		startTime: time.Now(),
	}
}

// Pagination describes the window of a list response.
// HasMore is true iff offset+limit < total.
type Pagination struct {
	Total   int64 `json:"total"`
	Limit   int64 `json:"limit"`
	Offset  int64 `json:"offset"`
	HasMore bool  `json:"hasMore"`
}

// NewPagination builds pagination metadata for a list window.
func NewPagination(total, limit, offset int64) Pagination {
	return Pagination{
		Total:   total,
		Limit:   limit,
		Offset:  offset,
		HasMore: offset+limit < total,
	}
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

// WriteResource writes a success envelope carrying a single resource under
// its name, e.g. {"success":true,"service":{...}}.
func WriteResource(w http.ResponseWriter, statusCode int, name string, v any) {
	WriteJSON(w, statusCode, map[string]any{
		"success": true,
		name:      v,
	})
}

// WriteList writes a success envelope carrying a resource collection and its
// pagination metadata.
func WriteList(w http.ResponseWriter, name string, items any, p Pagination) {
	WriteJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		name:         items,
		"pagination": p,
	})
}

// WriteOK writes a bare success envelope.
func WriteOK(w http.ResponseWriter) {
	WriteJSON(w, http.StatusOK, map[string]any{"success": true})
}

// WriteError writes the error envelope {"success":false,"error":...}.
func WriteError(w http.ResponseWriter, statusCode int, message string) {
	middleware.WriteError(w, statusCode, message)
}

// WriteBadRequest writes a 400 Bad Request response.
func WriteBadRequest(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, message)
}

// WriteNotFound writes a 404 Not Found response.
func WriteNotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, message)
}

// WriteInternalError writes a generic 500 response. The underlying error is
// logged by the caller, never sent to the client.
func WriteInternalError(w http.ResponseWriter) {
	WriteError(w, http.StatusInternalServerError, "internal server error")
}

// listWindow parses limit/offset query parameters. The default limit comes
// from the items_per_page setting and the limit is clamped to MaxListLimit.
func (h *Handler) listWindow(r *http.Request) (limit, offset int64) {
	limit = int64(model.DefaultSiteSettings().ItemsPerPage)
	if s, err := h.settings.Get(r.Context()); err == nil {
		limit = int64(s.ItemsPerPage)
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 64); err == nil && v > 0 {
			limit = v
		}
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	if raw := r.URL.Query().Get("offset"); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 64); err == nil && v >= 0 {
			offset = v
		}
	}
	return limit, offset
}

// idFromQuery parses the id query parameter used by delete endpoints.
func idFromQuery(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.URL.Query().Get("id"), 10, 64)
}

// decodeBody decodes a JSON request body into dst, rejecting bodies over 1 MB.
func decodeBody(r *http.Request, dst any) error {
	return json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<20)).Decode(dst)
}
