// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs the background jobs: publishing scheduled news
// articles and purging old contact submissions and event log entries.
package scheduler

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/olegiv/vitrine-go/internal/model"
	"github.com/olegiv/vitrine-go/internal/store"
)

// Config carries the retention windows for the daily cleanup job.
type Config struct {
	// EventRetentionDays is how long event log entries are kept.
	EventRetentionDays int
	// ContactRetentionDays is how long closed contact submissions are kept.
	ContactRetentionDays int
}

// Scheduler runs periodic maintenance jobs against the store.
type Scheduler struct {
	queries *store.Queries
	cron    *cron.Cron
	logger  *slog.Logger
	cfg     Config
}

// New creates a scheduler. Jobs are registered in Start.
func New(db *store.DB, logger *slog.Logger, cfg Config) *Scheduler {
	return &Scheduler{
		queries: store.New(db),
		cron:    cron.New(),
		logger:  logger,
		cfg:     cfg,
	}
}

// Start registers the jobs and begins running them. Scheduled articles are
// checked every minute; retention cleanup runs nightly.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("* * * * *", func() {
		if err := s.PublishDueArticles(context.Background()); err != nil {
			s.logger.Error("failed to publish scheduled articles", "error", err)
		}
	}); err != nil {
		return err
	}

	if _, err := s.cron.AddFunc("30 3 * * *", func() {
		s.RunRetention(context.Background())
	}); err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
	return nil
}

// Stop gracefully stops the scheduler, waiting for running jobs.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

// PublishDueArticles publishes draft articles whose scheduled time has
// passed and records an event per batch.
func (s *Scheduler) PublishDueArticles(ctx context.Context) error {
	now := time.Now().UTC()
	ids, err := s.queries.PublishScheduledNewsArticles(ctx, now)
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}

	s.logger.Info("published scheduled articles", "count", len(ids), "ids", ids)

	metadata, _ := json.Marshal(map[string]any{
		"article_ids":  ids,
		"published_at": now.Format(time.RFC3339),
	})
	if _, err := s.queries.CreateEvent(ctx, store.CreateEventParams{
		Level:     model.EventLevelInfo,
		Category:  model.EventCategoryScheduler,
		Message:   fmt.Sprintf("Published %d scheduled article(s)", len(ids)),
		UserID:    sql.NullInt64{}, // system action
		Metadata:  string(metadata),
		CreatedAt: now,
	}); err != nil {
		s.logger.Warn("failed to log scheduled publish event", "error", err)
	}
	return nil
}

// RunRetention purges closed contact submissions and old event log entries
// past their retention windows. A window of zero or less disables that purge.
func (s *Scheduler) RunRetention(ctx context.Context) {
	now := time.Now().UTC()

	if s.cfg.ContactRetentionDays > 0 {
		cutoff := now.AddDate(0, 0, -s.cfg.ContactRetentionDays)
		n, err := s.queries.PurgeClosedContactSubmissions(ctx, cutoff)
		switch {
		case err != nil:
			s.logger.Error("failed to purge contact submissions", "error", err)
		case n > 0:
			s.logger.Info("purged closed contact submissions", "count", n, "cutoff", cutoff)
		}
	}

	if s.cfg.EventRetentionDays > 0 {
		cutoff := now.AddDate(0, 0, -s.cfg.EventRetentionDays)
		n, err := s.queries.PruneEvents(ctx, cutoff)
		switch {
		case err != nil:
			s.logger.Error("failed to prune events", "error", err)
		case n > 0:
			s.logger.Info("pruned event log", "count", n, "cutoff", cutoff)
		}
	}
}
