// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"log/slog"
	"net/http"

	"github.com/olegiv/vitrine-go/internal/model"
	"github.com/olegiv/vitrine-go/internal/store"
)

// ListEvents handles GET /api/admin/events with optional level and
// category filters.
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	level := r.URL.Query().Get("level")
	category := r.URL.Query().Get("category")
	limit, offset := h.listWindow(r)

	items, err := h.queries.ListEvents(r.Context(), store.ListEventsParams{
		Level:    level,
		Category: category,
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		slog.Error("listing events", "error", err)
		WriteInternalError(w)
		return
	}
	total, err := h.queries.CountEvents(r.Context(), level, category)
	if err != nil {
		slog.Error("counting events", "error", err)
		WriteInternalError(w)
		return
	}

	if items == nil {
		items = []model.Event{}
	}
	WriteList(w, "events", items, NewPagination(total, limit, offset))
}
