// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/olegiv/vitrine-go/internal/cache"
	"github.com/olegiv/vitrine-go/internal/config"
	"github.com/olegiv/vitrine-go/internal/handler"
	"github.com/olegiv/vitrine-go/internal/handler/api"
	"github.com/olegiv/vitrine-go/internal/imaging"
	"github.com/olegiv/vitrine-go/internal/logging"
	"github.com/olegiv/vitrine-go/internal/middleware"
	"github.com/olegiv/vitrine-go/internal/model"
	"github.com/olegiv/vitrine-go/internal/scheduler"
	"github.com/olegiv/vitrine-go/internal/session"
	"github.com/olegiv/vitrine-go/internal/store"
	"github.com/olegiv/vitrine-go/internal/version"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "Vitrine - small business website backend\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  VITRINE_SESSION_SECRET    Session encryption key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  VITRINE_DB_DRIVER         Database backend: sqlite|postgres (default: sqlite)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  VITRINE_DB_PATH           SQLite database path (default: ./data/vitrine.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  VITRINE_DB_DSN            PostgreSQL DSN (required for postgres)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  VITRINE_SERVER_PORT       Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  VITRINE_ENV               Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  VITRINE_UPLOADS_DIR       Gallery uploads directory (default: ./uploads)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  VITRINE_STATIC_DIR        Prebuilt site bundle to serve (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  VITRINE_REDIS_URL         Redis URL for distributed caching (optional)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}
	if *showVersion {
		_, _ = fmt.Printf("vitrine %s (commit: %s, built: %s)\n", appVersion, appGitCommit, appBuildTime)
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env file if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	versionInfo := &version.Info{
		Version:   appVersion,
		GitCommit: appGitCommit,
		BuildTime: appBuildTime,
	}

	// Setup logger
	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Ensure the data directory exists for the embedded backend
	if !cfg.UsePostgres() {
		if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
			return fmt.Errorf("creating data directory: %w", err)
		}
	}

	slog.Info("initializing database", "driver", cfg.DBDriver)
	db, err := store.Open(store.Config{
		Driver:          cfg.DBDriver,
		Path:            cfg.DBPath,
		DSN:             cfg.DBDSN,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: 30 * time.Minute,
		ConnMaxIdleTime: 5 * time.Minute,
	})
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}()

	slog.Info("running database migrations")
	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")

	// Upgrade logger to also write WARN and ERROR logs to the event log
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	logger = slog.New(logging.NewEventLogHandler(textHandler, db))
	slog.SetDefault(logger)
	slog.Info("event log integration enabled", "min_level", "warn")

	ctx := context.Background()
	if err := store.Seed(ctx, db); err != nil {
		return fmt.Errorf("seeding database: %w", err)
	}

	// Cache layer: Redis when configured, in-memory otherwise
	cacher, err := cache.New(cache.Options{
		RedisURL:   cfg.RedisURL,
		Prefix:     cfg.CachePrefix,
		DefaultTTL: time.Duration(cfg.CacheTTL) * time.Second,
		MaxSize:    cfg.CacheMaxSize,
	})
	if err != nil {
		return fmt.Errorf("initializing cache: %w", err)
	}
	defer func() { _ = cacher.Close() }()
	if cfg.UseRedisCache() {
		slog.Info("cache initialized", "backend", "redis", "url", cfg.RedisURL)
	} else {
		slog.Info("cache initialized", "backend", "memory")
	}

	queries := store.New(db)
	settings := cache.NewSettingsCache(cacher, queries.SiteSettings, time.Duration(cfg.CacheTTL)*time.Second)

	sessionManager := session.New(db, cfg.IsDevelopment())
	slog.Info("session manager initialized")

	images := imaging.NewProcessor(cfg.UploadsDir)

	loginProtection := middleware.NewLoginProtection(middleware.DefaultLoginProtectionConfig())
	slog.Info("login protection initialized",
		"max_failed_attempts", 5,
		"lockout_duration", "15m",
	)

	// Defense-in-depth rate limiter for the public submission endpoints
	publicRateLimiter := middleware.NewRateLimiter(10.0, 20)

	apiHandler := api.NewHandler(db, sessionManager, settings, images, loginProtection)

	// Start the background scheduler (scheduled publishing, retention)
	sched := scheduler.New(db, logger, scheduler.Config{
		EventRetentionDays:   cfg.EventRetentionDays,
		ContactRetentionDays: cfg.ContactRetentionDays,
	})
	if err := sched.Start(); err != nil {
		return fmt.Errorf("starting scheduler: %w", err)
	}
	defer sched.Stop()

	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.GetHead)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment())))
	r.Use(sessionManager.LoadAndSave)

	// CSRF protection for the session-authenticated routes. The public
	// submission endpoints are exempted so the contact form and testimonial
	// widget can be embedded elsewhere.
	r.Use(middleware.SkipCSRF("/api/contact", "/api/testimonials"))
	r.Use(middleware.CSRF(middleware.DefaultCSRFConfig([]byte(cfg.SessionSecret), cfg.IsDevelopment())))
	slog.Info("CSRF protection initialized", "secure", !cfg.IsDevelopment())

	// Health check routes (detailed output for admin sessions)
	r.Get("/health", apiHandler.Health)
	r.Get("/health/live", apiHandler.Liveness)
	r.Get("/health/ready", apiHandler.Readiness)

	r.Route("/api", func(r chi.Router) {
		// Public read endpoints
		r.Get("/services", apiHandler.ListServices)
		r.Get("/gallery", apiHandler.ListGalleryItems)
		r.Get("/gallery/categories", apiHandler.ListGalleryCategories)
		r.Get("/faq", apiHandler.ListFAQ)
		r.Get("/news", apiHandler.ListPublishedNews)
		r.Get("/news/{slug}", apiHandler.GetNewsBySlug)
		r.Get("/testimonials", apiHandler.ListApprovedTestimonials)
		r.Get("/settings", apiHandler.GetSettings)

		// Public submission endpoints, rate limited per IP
		r.Group(func(r chi.Router) {
			r.Use(publicRateLimiter.Middleware())
			r.Post("/contact", apiHandler.SubmitContact)
			r.Post("/testimonials", apiHandler.SubmitTestimonial)
		})

		// Auth routes
		r.Route("/auth", func(r chi.Router) {
			r.With(loginProtection.Middleware()).Post("/login", apiHandler.Login)
			r.Post("/logout", apiHandler.Logout)
			r.With(middleware.Auth(sessionManager), middleware.LoadUser(sessionManager, db)).
				Get("/me", apiHandler.Me)
		})

		// Admin routes (session + per-resource permission)
		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.Auth(sessionManager))
			r.Use(middleware.LoadUser(sessionManager, db))

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequirePermission(model.PermManageContent))

				r.Get("/services", apiHandler.ListServices)
				r.Post("/services", apiHandler.CreateService)
				r.Put("/services", apiHandler.UpdateService)
				r.Delete("/services", apiHandler.DeleteService)

				r.Get("/gallery", apiHandler.ListGalleryItems)
				r.Post("/gallery", apiHandler.CreateGalleryItem)
				r.Put("/gallery", apiHandler.UpdateGalleryItem)
				r.Delete("/gallery", apiHandler.DeleteGalleryItem)

				r.Get("/news", apiHandler.ListNews)
				r.Post("/news", apiHandler.CreateNews)
				r.Put("/news", apiHandler.UpdateNews)
				r.Delete("/news", apiHandler.DeleteNews)

				r.Get("/testimonials", apiHandler.ListTestimonials)
				r.Post("/testimonials", apiHandler.CreateTestimonial)
				r.Put("/testimonials", apiHandler.UpdateTestimonial)
				r.Delete("/testimonials", apiHandler.DeleteTestimonial)

				r.Get("/faq", apiHandler.ListFAQ)
				r.Post("/faq", apiHandler.CreateFAQ)
				r.Put("/faq", apiHandler.UpdateFAQ)
				r.Delete("/faq", apiHandler.DeleteFAQ)
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequirePermission(model.PermManageContact))

				r.Get("/contact", apiHandler.ListContactSubmissions)
				r.Get("/contact/counts", apiHandler.ContactStatusCounts)
				r.Put("/contact", apiHandler.UpdateContactSubmission)
				r.Delete("/contact", apiHandler.DeleteContactSubmission)
			})

			// Admin-only routes
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin())

				r.Get("/settings", apiHandler.GetSettings)
				r.Put("/settings", apiHandler.UpdateSettings)

				r.Get("/users", apiHandler.ListUsers)
				r.Post("/users", apiHandler.CreateUser)
				r.Put("/users", apiHandler.UpdateUser)
				r.Delete("/users", apiHandler.DeleteUser)
				r.Get("/roles", apiHandler.ListRoles)

				r.Get("/events", apiHandler.ListEvents)
			})
		})
	})
	slog.Info("API mounted at /api", "version", versionInfo.Version)

	// Uploaded gallery files
	r.Handle("/uploads/*", handler.Uploads(cfg.UploadsDir))

	// Prebuilt site bundle, when configured
	if cfg.StaticDir != "" {
		r.NotFound(handler.SPA(cfg.StaticDir).ServeHTTP)
		slog.Info("serving static site", "dir", cfg.StaticDir)
	}

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second, // allow for gallery uploads on slow connections
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
