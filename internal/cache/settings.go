// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/olegiv/vitrine-go/internal/model"
)

const settingsKey = "settings:site"

// SettingsLoader loads the typed settings from the store.
type SettingsLoader func(ctx context.Context) (model.SiteSettings, error)

// SettingsCache serves the typed site settings from the cache, falling back
// to the loader on a miss. Public endpoints hit this on every request, so
// settings reads should almost never reach the database.
type SettingsCache struct {
	cache  Cacher
	loader SettingsLoader
	ttl    time.Duration
}

// NewSettingsCache wraps a Cacher with the typed settings load/invalidate cycle.
func NewSettingsCache(c Cacher, loader SettingsLoader, ttl time.Duration) *SettingsCache {
	return &SettingsCache{cache: c, loader: loader, ttl: ttl}
}

// Get returns the current site settings, from cache when possible.
func (s *SettingsCache) Get(ctx context.Context) (model.SiteSettings, error) {
	raw, err := s.cache.Get(ctx, settingsKey)
	if err == nil {
		var settings model.SiteSettings
		if err := json.Unmarshal(raw, &settings); err == nil {
			return settings, nil
		}
		// A corrupt entry is dropped and reloaded
		_ = s.cache.Delete(ctx, settingsKey)
	} else if !errors.Is(err, ErrCacheMiss) {
		slog.Warn("settings cache read failed, loading from store", "error", err)
	}

	settings, err := s.loader(ctx)
	if err != nil {
		return model.DefaultSiteSettings(), err
	}

	if raw, err := json.Marshal(settings); err == nil {
		if err := s.cache.Set(ctx, settingsKey, raw, s.ttl); err != nil {
			slog.Warn("settings cache write failed", "error", err)
		}
	}

	return settings, nil
}

// Invalidate drops the cached settings. Called after any settings update.
func (s *SettingsCache) Invalidate(ctx context.Context) {
	if err := s.cache.Delete(ctx, settingsKey); err != nil {
		slog.Warn("settings cache invalidation failed", "error", err)
	}
}
