// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/olegiv/vitrine-go/internal/model"
)

// memoryDB opens an in-memory database with just the tables a test needs,
// exercising Queries over a plain *sql.DB via NewWithDialect.
func memoryDB(t *testing.T, schema string) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("opening in-memory database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("creating schema: %v", err)
	}
	return db
}

func TestQueriesOverPlainDB(t *testing.T) {
	db := memoryDB(t, `
		CREATE TABLE services (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			image_url TEXT NOT NULL DEFAULT '',
			order_index INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		);
	`)
	queries := NewWithDialect(db, DialectSQLite)
	ctx := context.Background()
	now := time.Now().UTC()

	svc, err := queries.CreateService(ctx, CreateServiceParams{
		Title:     "Consultation",
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("CreateService: %v", err)
	}
	if svc.ID == 0 {
		t.Error("expected RETURNING to populate the id")
	}

	got, err := queries.GetService(ctx, svc.ID)
	if err != nil {
		t.Fatalf("GetService: %v", err)
	}
	if got.Title != "Consultation" {
		t.Errorf("Title = %q, want %q", got.Title, "Consultation")
	}
}

func TestWithTxRollback(t *testing.T) {
	db := memoryDB(t, `
		CREATE TABLE faq_items (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			question TEXT NOT NULL,
			answer TEXT NOT NULL,
			category TEXT NOT NULL DEFAULT 'General',
			order_index INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		);
	`)
	queries := NewWithDialect(db, DialectSQLite)
	ctx := context.Background()
	now := time.Now().UTC()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		t.Fatalf("BeginTx: %v", err)
	}
	if _, err := queries.WithTx(tx).CreateFAQItem(ctx, CreateFAQItemParams{
		Question:  "Q",
		Answer:    "A",
		Category:  model.FAQDefaultCategory,
		CreatedAt: now,
		UpdatedAt: now,
	}); err != nil {
		t.Fatalf("CreateFAQItem in tx: %v", err)
	}
	if err := tx.Rollback(); err != nil {
		t.Fatalf("Rollback: %v", err)
	}

	total, err := queries.CountFAQItems(ctx, "")
	if err != nil {
		t.Fatalf("CountFAQItems: %v", err)
	}
	if total != 0 {
		t.Errorf("count after rollback = %d, want 0", total)
	}
}
