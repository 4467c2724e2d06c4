// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/olegiv/vitrine-go/internal/model"
	"github.com/olegiv/vitrine-go/internal/store"
)

func seedTestEvents(t *testing.T, h *Handler) {
	t.Helper()
	ctx := context.Background()

	rows := []store.CreateEventParams{
		{Level: model.EventLevelError, Category: model.EventCategorySystem, Message: "disk full"},
		{Level: model.EventLevelWarning, Category: model.EventCategoryAuth, Message: "failed login"},
		{Level: model.EventLevelWarning, Category: model.EventCategoryAuth, Message: "failed login"},
		{Level: model.EventLevelInfo, Category: model.EventCategoryContent, Message: "article published"},
	}
	for _, row := range rows {
		row.CreatedAt = time.Now().UTC()
		if _, err := h.queries.CreateEvent(ctx, row); err != nil {
			t.Fatalf("seeding event: %v", err)
		}
	}
}

func TestListEvents(t *testing.T) {
	h := newTestHandler(t)
	seedTestEvents(t, h)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/events", nil)
	rec := httptest.NewRecorder()
	h.ListEvents(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	body := decodeEnvelope(t, rec)
	if body["pagination"].(map[string]any)["total"] != float64(4) {
		t.Errorf("total = %v, want 4", body["pagination"].(map[string]any)["total"])
	}
}

func TestListEvents_Filters(t *testing.T) {
	h := newTestHandler(t)
	seedTestEvents(t, h)

	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"by level", "?level=warning", 2},
		{"by category", "?category=system", 1},
		{"by both", "?level=warning&category=auth", 2},
		{"no match", "?level=error&category=auth", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/admin/events"+tt.query, nil)
			rec := httptest.NewRecorder()
			h.ListEvents(rec, req)

			items := decodeEnvelope(t, rec)["events"].([]any)
			if len(items) != tt.want {
				t.Errorf("len(events) = %d, want %d", len(items), tt.want)
			}
		})
	}
}
