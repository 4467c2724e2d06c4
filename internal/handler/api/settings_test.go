// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/olegiv/vitrine-go/internal/model"
)

func TestGetSettings(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/settings", nil)
	rec := httptest.NewRecorder()
	h.GetSettings(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	body := decodeEnvelope(t, rec)
	envelopeSuccess(t, body, true)

	pairs := body["settings"].([]any)
	keys := map[string]string{}
	for _, p := range pairs {
		pair := p.(map[string]any)
		keys[pair["key"].(string)] = pair["value"].(string)
	}
	if _, ok := keys[model.SettingKeySiteName]; !ok {
		t.Errorf("seeded settings missing %s: %v", model.SettingKeySiteName, keys)
	}
	if keys[model.SettingKeyContactFormEnabled] != "true" {
		t.Errorf("contact_form_enabled = %q, want \"true\"", keys[model.SettingKeyContactFormEnabled])
	}
}

func TestUpdateSettings(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPut, "/api/admin/settings", strings.NewReader(
		`[{"key":"site_name","value":"Bella Salon"},{"key":"items_per_page","value":"24"}]`))
	rec := httptest.NewRecorder()
	h.UpdateSettings(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	// The typed settings view must reflect the change after invalidation
	settings, err := h.settings.Get(context.Background())
	if err != nil {
		t.Fatalf("loading settings: %v", err)
	}
	if settings.SiteName != "Bella Salon" {
		t.Errorf("SiteName = %q, want Bella Salon", settings.SiteName)
	}
	if settings.ItemsPerPage != 24 {
		t.Errorf("ItemsPerPage = %d, want 24", settings.ItemsPerPage)
	}
}

func TestUpdateSettings_TypeValidation(t *testing.T) {
	h := newTestHandler(t)

	tests := []struct {
		name    string
		payload string
	}{
		{"bool key with non-bool value", `[{"key":"contact_form_enabled","value":"maybe"}]`},
		{"int key with non-int value", `[{"key":"items_per_page","value":"lots"}]`},
		{"empty key", `[{"key":"  ","value":"x"}]`},
		{"empty array", `[]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPut, "/api/admin/settings",
				strings.NewReader(tt.payload))
			rec := httptest.NewRecorder()
			h.UpdateSettings(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
			}
		})
	}
}

func TestUpdateSettings_NothingWrittenOnValidationFailure(t *testing.T) {
	h := newTestHandler(t)

	// First pair is valid, second is not; the batch must be rejected whole
	req := httptest.NewRequest(http.MethodPut, "/api/admin/settings", strings.NewReader(
		`[{"key":"site_name","value":"Changed"},{"key":"items_per_page","value":"NaN"}]`))
	rec := httptest.NewRecorder()
	h.UpdateSettings(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}

	row, err := h.queries.GetSetting(context.Background(), model.SettingKeySiteName)
	if err != nil {
		t.Fatalf("fetching setting: %v", err)
	}
	if row.Value == "Changed" {
		t.Error("site_name written despite batch validation failure")
	}
}
