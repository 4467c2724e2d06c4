// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/olegiv/vitrine-go/internal/model"
	"github.com/olegiv/vitrine-go/internal/store"
)

// SettingPair is the wire form of one setting. The full settings payload
// is an array of pairs, flattened into an object client-side.
type SettingPair struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// GetSettings handles GET /api/settings, returning all settings as
// key/value pairs.
func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	rows, err := h.queries.ListSettings(r.Context())
	if err != nil {
		slog.Error("listing settings", "error", err)
		WriteInternalError(w)
		return
	}

	pairs := make([]SettingPair, 0, len(rows))
	for _, row := range rows {
		pairs = append(pairs, SettingPair{Key: row.Key, Value: row.Value})
	}
	WriteResource(w, http.StatusOK, "settings", pairs)
}

// UpdateSettings handles PUT /api/admin/settings. The body is an array of
// {key, value} pairs; every value is validated against its declared type
// before anything is written, and the settings cache is invalidated after.
func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var pairs []SettingPair
	if err := decodeBody(r, &pairs); err != nil {
		WriteBadRequest(w, "invalid request body")
		return
	}
	if len(pairs) == 0 {
		WriteBadRequest(w, "no settings provided")
		return
	}

	for _, p := range pairs {
		if strings.TrimSpace(p.Key) == "" {
			WriteBadRequest(w, "setting key cannot be empty")
			return
		}
		if err := model.ValidateSettingValue(p.Key, p.Value); err != nil {
			WriteBadRequest(w, err.Error())
			return
		}
	}

	now := time.Now().UTC()
	for _, p := range pairs {
		if _, err := h.queries.UpsertSetting(r.Context(), store.UpsertSettingParams{
			Key:       p.Key,
			Value:     p.Value,
			Type:      model.SettingTypeFor(p.Key),
			UpdatedAt: now,
		}); err != nil {
			slog.Error("upserting setting", "key", p.Key, "error", err)
			WriteInternalError(w)
			return
		}
	}
	h.settings.Invalidate(r.Context())

	slog.Info("settings updated", "count", len(pairs))
	h.GetSettings(w, r)
}
