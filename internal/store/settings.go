// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"

	"github.com/olegiv/vitrine-go/internal/model"
)

// GetSetting fetches a single settings row by key.
func (q *Queries) GetSetting(ctx context.Context, key string) (model.Setting, error) {
	var s model.Setting
	err := q.queryRow(ctx,
		`SELECT key, value, type, updated_at FROM settings WHERE key = ?`, key).
		Scan(&s.Key, &s.Value, &s.Type, &s.UpdatedAt)
	return s, err
}

// ListSettings returns all settings rows ordered by key.
func (q *Queries) ListSettings(ctx context.Context) ([]model.Setting, error) {
	rows, err := q.query(ctx,
		`SELECT key, value, type, updated_at FROM settings ORDER BY key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.Setting
	for rows.Next() {
		var s model.Setting
		if err := rows.Scan(&s.Key, &s.Value, &s.Type, &s.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	return items, rows.Err()
}

// UpsertSettingParams holds fields for UpsertSetting.
type UpsertSettingParams struct {
	Key       string
	Value     string
	Type      string
	UpdatedAt time.Time
}

// UpsertSetting inserts or replaces a settings row and returns the stored
// row. ON CONFLICT has identical semantics on both backends.
func (q *Queries) UpsertSetting(ctx context.Context, arg UpsertSettingParams) (model.Setting, error) {
	var s model.Setting
	err := q.queryRow(ctx, `
		INSERT INTO settings (key, value, type, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (key) DO UPDATE
		SET value = excluded.value, type = excluded.type, updated_at = excluded.updated_at
		RETURNING key, value, type, updated_at`,
		arg.Key, arg.Value, arg.Type, arg.UpdatedAt).
		Scan(&s.Key, &s.Value, &s.Type, &s.UpdatedAt)
	return s, err
}

// SiteSettings loads all settings rows and folds them into the typed struct.
func (q *Queries) SiteSettings(ctx context.Context) (model.SiteSettings, error) {
	rows, err := q.ListSettings(ctx)
	if err != nil {
		return model.DefaultSiteSettings(), err
	}
	return model.SiteSettingsFromRows(rows)
}
