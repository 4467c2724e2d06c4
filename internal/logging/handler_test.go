// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package logging

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/olegiv/vitrine-go/internal/model"
	"github.com/olegiv/vitrine-go/internal/store"
)

// testDB creates a temporary test database with migrations applied.
func testDB(t *testing.T) *store.DB {
	t.Helper()

	f, err := os.CreateTemp("", "vitrine-logging-test-*.db")
	if err != nil {
		t.Fatalf("creating temp file: %v", err)
	}
	dbPath := f.Name()
	f.Close()

	cfg := store.DefaultConfig()
	cfg.Path = dbPath
	db, err := store.Open(cfg)
	if err != nil {
		os.Remove(dbPath)
		t.Fatalf("Open: %v", err)
	}

	if err := store.Migrate(db); err != nil {
		db.Close()
		os.Remove(dbPath)
		t.Fatalf("Migrate: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
		os.Remove(dbPath)
	})

	return db
}

// discardHandler is a slog.Handler that discards all logs.
type discardHandler struct{}

func (h discardHandler) Enabled(context.Context, slog.Level) bool  { return true }
func (h discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (h discardHandler) WithAttrs([]slog.Attr) slog.Handler        { return h }
func (h discardHandler) WithGroup(string) slog.Handler             { return h }

func listEvents(t *testing.T, db *store.DB) []model.Event {
	t.Helper()
	events, err := store.New(db).ListEvents(context.Background(), store.ListEventsParams{
		Limit:  10,
		Offset: 0,
	})
	if err != nil {
		t.Fatalf("ListEvents: %v", err)
	}
	return events
}

func TestEventLogHandler_Handle_ErrorLevel(t *testing.T) {
	db := testDB(t)

	logger := slog.New(NewEventLogHandler(discardHandler{}, db))
	logger.Error("database connection failed", "host", "localhost", "port", 5432)

	events := listEvents(t, db)
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Level != model.EventLevelError {
		t.Errorf("Level = %q, want %q", events[0].Level, model.EventLevelError)
	}
	if events[0].Message != "database connection failed" {
		t.Errorf("Message = %q, want %q", events[0].Message, "database connection failed")
	}
}

func TestEventLogHandler_Handle_WarnLevel(t *testing.T) {
	db := testDB(t)

	logger := slog.New(NewEventLogHandler(discardHandler{}, db))
	logger.Warn("slow query detected", "duration_ms", 5000)

	events := listEvents(t, db)
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Level != model.EventLevelWarning {
		t.Errorf("Level = %q, want %q", events[0].Level, model.EventLevelWarning)
	}
}

func TestEventLogHandler_Handle_InfoLevel_NotCaptured(t *testing.T) {
	db := testDB(t)

	logger := slog.New(NewEventLogHandler(discardHandler{}, db))
	logger.Info("server started", "port", 8080)
	logger.Debug("processing request", "request_id", "abc123")

	if events := listEvents(t, db); len(events) != 0 {
		t.Errorf("expected 0 events below WARN, got %d", len(events))
	}
}

func TestEventLogHandler_CategoryInference(t *testing.T) {
	db := testDB(t)

	logger := slog.New(NewEventLogHandler(discardHandler{}, db))

	testCases := []struct {
		message  string
		category string
	}{
		{"user authentication failed", model.EventCategoryAuth},
		{"login attempt blocked", model.EventCategoryAuth},
		{"contact submission rejected", model.EventCategoryContact},
		{"settings reload failed", model.EventCategorySettings},
		{"news publish failed", model.EventCategoryContent},
		{"gallery thumbnail generation failed", model.EventCategoryContent},
		{"scheduled job panicked", model.EventCategoryScheduler},
		{"unknown error occurred", model.EventCategorySystem},
	}

	for _, tc := range testCases {
		if _, err := db.Exec("DELETE FROM events"); err != nil {
			t.Fatalf("clearing events: %v", err)
		}

		logger.Error(tc.message)

		events := listEvents(t, db)
		if len(events) != 1 {
			t.Errorf("message %q: expected 1 event, got %d", tc.message, len(events))
			continue
		}
		if events[0].Category != tc.category {
			t.Errorf("message %q: Category = %q, want %q", tc.message, events[0].Category, tc.category)
		}
	}
}

func TestEventLogHandler_ExplicitCategory(t *testing.T) {
	db := testDB(t)

	logger := slog.New(NewEventLogHandler(discardHandler{}, db))

	// Explicit category attribute overrides inference.
	logger.Error("something happened", "category", model.EventCategoryUser)

	events := listEvents(t, db)
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Category != model.EventCategoryUser {
		t.Errorf("Category = %q, want %q", events[0].Category, model.EventCategoryUser)
	}
}

func TestEventLogHandler_MetadataExtraction(t *testing.T) {
	db := testDB(t)

	logger := slog.New(NewEventLogHandler(discardHandler{}, db))
	logger.Error("request failed",
		"status_code", 500,
		"path", "/api/services",
		"duration_ms", 1234,
	)

	events := listEvents(t, db)
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}

	metadata := events[0].Metadata
	for _, key := range []string{"status_code", "path", "duration_ms"} {
		if !strings.Contains(metadata, key) {
			t.Errorf("Metadata should contain %q: %s", key, metadata)
		}
	}
}

func TestEventLogHandler_WithAttrsAndGroup(t *testing.T) {
	db := testDB(t)

	handler := NewEventLogHandler(discardHandler{}, db)
	wrapped := handler.WithAttrs([]slog.Attr{slog.String("component", "api")}).WithGroup("request")

	logger := slog.New(wrapped)
	logger.Error("request error", "id", "abc123")

	events := listEvents(t, db)
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Message != "request error" {
		t.Errorf("Message = %q, want %q", events[0].Message, "request error")
	}
}

func TestEventLogHandler_MultipleEvents(t *testing.T) {
	db := testDB(t)

	logger := slog.New(NewEventLogHandler(discardHandler{}, db))
	logger.Error("error 1")
	logger.Warn("warning 1")
	logger.Error("error 2")
	logger.Warn("warning 2")
	logger.Info("info 1")

	count, err := store.New(db).CountEvents(context.Background(), "", "")
	if err != nil {
		t.Fatalf("CountEvents: %v", err)
	}
	if count != 4 {
		t.Errorf("expected 4 events (2 errors + 2 warnings), got %d", count)
	}
}

func TestEventLogHandler_SpecialCharactersInMetadata(t *testing.T) {
	db := testDB(t)

	logger := slog.New(NewEventLogHandler(discardHandler{}, db))
	logger.Error("parse error",
		"input", `{"key": "value with \"quotes\""}`,
		"path", "C:\\Users\\test",
		"message", "line1\nline2\ttabbed",
	)

	events := listEvents(t, db)
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Metadata == "" {
		t.Error("Metadata should not be empty")
	}
}

func TestEscapeJSON(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{`hello`, `hello`},
		{`hello "world"`, `hello \"world\"`},
		{`path\to\file`, `path\\to\\file`},
		{"line1\nline2", `line1\nline2`},
		{"col1\tcol2", `col1\tcol2`},
		{"return\rhere", `return\rhere`},
	}

	for _, tc := range testCases {
		if result := escapeJSON(tc.input); result != tc.expected {
			t.Errorf("escapeJSON(%q) = %q, want %q", tc.input, result, tc.expected)
		}
	}
}

func TestEventLevel(t *testing.T) {
	testCases := []struct {
		level    slog.Level
		expected string
	}{
		{slog.LevelDebug, model.EventLevelInfo},
		{slog.LevelInfo, model.EventLevelInfo},
		{slog.LevelWarn, model.EventLevelWarning},
		{slog.LevelError, model.EventLevelError},
		{slog.LevelError + 4, model.EventLevelError},
	}

	for _, tc := range testCases {
		if result := eventLevel(tc.level); result != tc.expected {
			t.Errorf("eventLevel(%v) = %q, want %q", tc.level, result, tc.expected)
		}
	}
}
