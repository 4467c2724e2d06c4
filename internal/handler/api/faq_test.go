// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/olegiv/vitrine-go/internal/model"
)

func createTestFAQ(t *testing.T, h *Handler, payload string) map[string]any {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/admin/faq", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	h.CreateFAQ(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("creating faq item: status %d: %s", rec.Code, rec.Body.String())
	}
	return decodeEnvelope(t, rec)["faq"].(map[string]any)
}

func TestCreateFAQ_DefaultCategoryAndOrder(t *testing.T) {
	h := newTestHandler(t)

	first := createTestFAQ(t, h, `{"question":"Q1","answer":"A1"}`)
	if first["category"] != model.FAQDefaultCategory {
		t.Errorf("category = %v, want %q", first["category"], model.FAQDefaultCategory)
	}
	if first["order_index"] != float64(1) {
		t.Errorf("first order_index = %v, want 1", first["order_index"])
	}

	second := createTestFAQ(t, h, `{"question":"Q2","answer":"A2"}`)
	if second["order_index"] != float64(2) {
		t.Errorf("second order_index = %v, want 2", second["order_index"])
	}

	// A different category starts its own sequence
	other := createTestFAQ(t, h, `{"question":"Q3","answer":"A3","category":"Billing"}`)
	if other["order_index"] != float64(1) {
		t.Errorf("other category order_index = %v, want 1", other["order_index"])
	}
}

func TestCreateFAQ_MissingFields(t *testing.T) {
	h := newTestHandler(t)

	for _, payload := range []string{
		`{"answer":"A"}`,
		`{"question":"Q"}`,
		`{"question":"  ","answer":"A"}`,
	} {
		req := httptest.NewRequest(http.MethodPost, "/api/admin/faq", strings.NewReader(payload))
		rec := httptest.NewRecorder()
		h.CreateFAQ(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("payload %s: status = %d, want %d", payload, rec.Code, http.StatusBadRequest)
		}
	}
}

func TestListFAQ_CategoryFilter(t *testing.T) {
	h := newTestHandler(t)
	createTestFAQ(t, h, `{"question":"G1","answer":"A"}`)
	createTestFAQ(t, h, `{"question":"B1","answer":"A","category":"Billing"}`)
	createTestFAQ(t, h, `{"question":"B2","answer":"A","category":"Billing"}`)

	req := httptest.NewRequest(http.MethodGet, "/api/faq?category=Billing", nil)
	rec := httptest.NewRecorder()
	h.ListFAQ(rec, req)

	body := decodeEnvelope(t, rec)
	items := body["faq"].([]any)
	if len(items) != 2 {
		t.Fatalf("len(faq) = %d, want 2", len(items))
	}
	if body["pagination"].(map[string]any)["total"] != float64(2) {
		t.Errorf("total = %v, want 2", body["pagination"].(map[string]any)["total"])
	}
}

func TestUpdateFAQ_Reorder(t *testing.T) {
	h := newTestHandler(t)
	item := createTestFAQ(t, h, `{"question":"Q","answer":"A"}`)
	id := int64(item["id"].(float64))

	req := httptest.NewRequest(http.MethodPut, "/api/admin/faq", strings.NewReader(fmt.Sprintf(
		`{"id":%d,"order_index":7}`, id)))
	rec := httptest.NewRecorder()
	h.UpdateFAQ(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	updated := decodeEnvelope(t, rec)["faq"].(map[string]any)
	if updated["order_index"] != float64(7) {
		t.Errorf("order_index = %v, want 7", updated["order_index"])
	}
	if updated["question"] != "Q" {
		t.Errorf("question = %v, want unchanged", updated["question"])
	}
}

func TestDeleteFAQ_NotFound(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodDelete, "/api/admin/faq?id=777", nil)
	rec := httptest.NewRecorder()
	h.DeleteFAQ(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}
