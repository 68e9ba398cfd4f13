// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
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
	"github.com/robfig/cron/v3"

	"github.com/olegiv/weblog-go/internal/cache"
	"github.com/olegiv/weblog-go/internal/config"
	"github.com/olegiv/weblog-go/internal/handler"
	"github.com/olegiv/weblog-go/internal/handler/api"
	"github.com/olegiv/weblog-go/internal/logging"
	"github.com/olegiv/weblog-go/internal/middleware"
	"github.com/olegiv/weblog-go/internal/render"
	"github.com/olegiv/weblog-go/internal/seo"
	"github.com/olegiv/weblog-go/internal/service"
	"github.com/olegiv/weblog-go/internal/session"
	"github.com/olegiv/weblog-go/internal/storage"
	"github.com/olegiv/weblog-go/internal/store"
	"github.com/olegiv/weblog-go/web"
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

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "weblog - multilingual weblog engine\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  WEBLOG_DB_PATH           SQLite database path (default: ./data/weblog.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  WEBLOG_SERVER_PORT       Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  WEBLOG_ENV               Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  WEBLOG_LANGUAGES         Comma-separated language codes (default: en)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  WEBLOG_DEFAULT_LANGUAGE  Default language code (default: en)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  WEBLOG_REDIS_URL         Redis URL for distributed caching (optional)\n")
	}

	flag.Parse()

	if *showVersion {
		_, _ = fmt.Printf("weblog %s (commit: %s, built: %s)\n", appVersion, appGitCommit, appBuildTime)
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

	// Ensure data directory exists
	dbDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

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

	queries := store.New(db).WithDefaultLanguage(cfg.DefaultLanguage)
	langs := cfg.LanguageSet()

	// Session manager backs the preview-mode toggle
	sessionManager := session.New(db, cfg.IsDevelopment())
	slog.Info("session manager initialized")

	// Cache backend for generated sitemaps
	cacher, err := cache.New(cache.Config{
		RedisURL:   cfg.RedisURL,
		Prefix:     cfg.CachePrefix,
		DefaultTTL: time.Duration(cfg.CacheTTL) * time.Second,
		MaxSize:    cfg.CacheMaxSize,
	})
	if err != nil {
		return fmt.Errorf("initializing cache: %w", err)
	}
	defer func() {
		if err := cacher.Close(); err != nil {
			slog.Error("error closing cache", "error", err)
		}
	}()
	if cfg.UseRedisCache() {
		slog.Info("cache initialized", "backend", "redis", "url", cfg.RedisURL)
	} else {
		slog.Info("cache initialized", "backend", "memory")
	}

	// Template renderer over the embedded templates
	renderer, err := render.New(web.Templates)
	if err != nil {
		return fmt.Errorf("initializing renderer: %w", err)
	}
	slog.Info("template renderer initialized")

	// Media storage with the deferred purge janitor
	diskStorage, err := storage.NewDiskStorage(cfg.UploadsDir)
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}
	purger := storage.NewPurger(queries, diskStorage, logger)

	// Mutation pipeline: validation, persist and purge hooks in one place
	writes := service.New(db, queries, purger, logger)
	if cfg.DoSeed {
		if err := writes.SeedDemo(context.Background()); err != nil {
			return fmt.Errorf("seeding demo content: %w", err)
		}
	}

	janitor := cron.New()
	if _, err := janitor.AddFunc("@hourly", purger.Job(100, time.Minute)); err != nil {
		return fmt.Errorf("registering purge job: %w", err)
	}
	if _, err := janitor.AddFunc("@daily", func() {
		pruneCtx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if n, err := queries.PruneEvents(pruneCtx, time.Now().AddDate(0, 0, -90)); err != nil {
			logger.Error("pruning events", "error", err.Error())
		} else if n > 0 {
			logger.Info("pruned events", "count", n)
		}
	}); err != nil {
		return fmt.Errorf("registering event prune job: %w", err)
	}
	janitor.Start()
	defer janitor.Stop()

	frontend := handler.New(queries, sessionManager, renderer, cfg, logger)
	readAPI := api.New(queries, cfg, logger)
	sitemaps := seo.NewHandler(queries, cfg, cacher, logger)

	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(sessionManager.LoadAndSave)
	r.Use(middleware.Viewer(sessionManager, cfg.PreviewKeyword))

	sitemaps.Routes(r)

	// Server-rendered frontend: default language at the root, prefixed
	// routes for every language carrying a locale prefix.
	r.Group(func(r chi.Router) {
		r.Use(middleware.Language(langs))

		frontend.Routes(r)
		for _, lang := range langs {
			if lang.URLPrefix == "" {
				continue
			}
			r.Route(lang.URLPrefix, func(r chi.Router) {
				frontend.Routes(r)
			})
		}
	})

	// Read-only JSON API
	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.APIRateLimit(cfg.APIRateLimit, cfg.APIRateBurst))
		r.Use(middleware.Language(langs))
		readAPI.Routes(r)
	})

	// Uploaded media files, cached for a week
	uploadsHandler := http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadsDir)))
	r.Handle("/uploads/*", uploadsHandler)

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
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
		return fmt.Errorf("shutting down server: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
