// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/olegiv/vitrine-go/internal/cache"
	"github.com/olegiv/vitrine-go/internal/imaging"
	"github.com/olegiv/vitrine-go/internal/middleware"
	"github.com/olegiv/vitrine-go/internal/session"
	"github.com/olegiv/vitrine-go/internal/store"
)

// newTestHandler creates a Handler backed by a temporary SQLite database
// with migrations and seed data applied.
func newTestHandler(t *testing.T) *Handler {
	t.Helper()

	cfg := store.DefaultConfig()
	cfg.Path = filepath.Join(t.TempDir(), "test.db")
	db, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := store.Migrate(db); err != nil {
		t.Fatalf("migrating test database: %v", err)
	}
	if err := store.Seed(context.Background(), db); err != nil {
		t.Fatalf("seeding test database: %v", err)
	}

	c, err := cache.New(cache.Options{})
	if err != nil {
		t.Fatalf("creating cache: %v", err)
	}
	queries := store.New(db)
	settings := cache.NewSettingsCache(c, queries.SiteSettings, time.Minute)

	sm := session.New(db, true)
	images := imaging.NewProcessor(t.TempDir())
	login := middleware.NewLoginProtection(middleware.DefaultLoginProtectionConfig())

	return NewHandler(db, sm, settings, images, login)
}

// decodeEnvelope decodes a response body into a generic envelope map.
func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decoding response body: %v", err)
	}
	return body
}

// envelopeSuccess asserts the envelope success flag.
func envelopeSuccess(t *testing.T, body map[string]any, want bool) {
	t.Helper()

	got, ok := body["success"].(bool)
	if !ok {
		t.Fatalf("response has no boolean success field: %v", body)
	}
	if got != want {
		t.Errorf("success = %v, want %v", got, want)
	}
}
