// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package store implements persistence over two interchangeable backends:
// embedded SQLite for single-box deployments and pooled PostgreSQL for
// anything bigger. The backend is chosen by configuration at startup and
// the rest of the application only sees *store.DB and *store.Queries.
package store

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver for database/sql
	_ "modernc.org/sqlite"             // SQLite driver for database/sql
)

// Dialect identifies the active database backend.
type Dialect string

// Supported dialects.
const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// Config holds database backend selection and pool options.
type Config struct {
	// Driver selects the backend: "sqlite" or "postgres".
	Driver string
	// Path is the SQLite database file path. Ignored for postgres.
	Path string
	// DSN is the PostgreSQL connection string. Ignored for sqlite.
	DSN string
	// MaxOpenConns is the maximum number of open connections.
	// SQLite with WAL supports many readers but a single writer.
	MaxOpenConns int
	// MaxIdleConns is the maximum number of idle pooled connections.
	MaxIdleConns int
	// ConnMaxLifetime is the maximum amount of time a connection may be reused.
	ConnMaxLifetime time.Duration
	// ConnMaxIdleTime is the maximum amount of time a connection may be idle.
	ConnMaxIdleTime time.Duration
}

// DefaultConfig returns pool defaults that suit both backends.
func DefaultConfig() Config {
	return Config{
		Driver:          string(DialectSQLite),
		Path:            "vitrine.db",
		MaxOpenConns:    25,
		MaxIdleConns:    10,
		ConnMaxLifetime: 30 * time.Minute,
		ConnMaxIdleTime: 5 * time.Minute,
	}
}

// DB is a database handle bound to its dialect. It is constructed once in
// main and injected into everything that needs it.
type DB struct {
	*sql.DB
	dialect Dialect
}

// Dialect returns the active backend dialect.
func (d *DB) Dialect() Dialect {
	return d.dialect
}

// Open connects to the configured backend and verifies the connection.
func Open(cfg Config) (*DB, error) {
	switch Dialect(cfg.Driver) {
	case DialectSQLite:
		return openSQLite(cfg)
	case DialectPostgres:
		return openPostgres(cfg)
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}

func openSQLite(cfg Config) (*DB, error) {
	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}

	applyPool(db, cfg)

	// Configure SQLite for better performance and concurrency
	pragmas := []string{
		"PRAGMA journal_mode=WAL",   // Write-Ahead Logging for better concurrency
		"PRAGMA busy_timeout=5000",  // Wait 5s when database is locked
		"PRAGMA synchronous=NORMAL", // Good balance of safety and speed
		"PRAGMA cache_size=-64000",  // 64MB cache
		"PRAGMA foreign_keys=ON",    // Enforce foreign key constraints
		"PRAGMA temp_store=MEMORY",  // Store temp tables in memory
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("setting pragma %q: %w", pragma, err)
		}
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pinging sqlite database: %w", err)
	}

	return &DB{DB: db, dialect: DialectSQLite}, nil
}

func openPostgres(cfg Config) (*DB, error) {
	db, err := sql.Open("pgx", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("opening postgres database: %w", err)
	}

	applyPool(db, cfg)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pinging postgres database: %w", err)
	}

	return &DB{DB: db, dialect: DialectPostgres}, nil
}

func applyPool(db *sql.DB, cfg Config) {
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
}
