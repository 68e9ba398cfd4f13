// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package testutil provides shared test helpers for the weblog project.
package testutil

import (
	"database/sql"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/olegiv/weblog-go/internal/model"
	"github.com/olegiv/weblog-go/internal/store"

	_ "github.com/mattn/go-sqlite3"
)

// TestLogger creates a silent test logger that only outputs warnings and errors.
func TestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
}

// TestLoggerSilent creates a completely silent test logger (error level only).
func TestLoggerSilent() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
}

// TestDB creates a temporary test database with migrations applied.
// Returns the database and a cleanup function that should be deferred.
func TestDB(t *testing.T) (*sql.DB, func()) {
	t.Helper()

	f, err := os.CreateTemp(t.TempDir(), "weblog-test-*.db")
	if err != nil {
		t.Fatalf("creating temp file: %v", err)
	}
	dbPath := f.Name()
	_ = f.Close()

	db, err := store.NewDB(dbPath)
	if err != nil {
		_ = os.Remove(dbPath)
		t.Fatalf("NewDB: %v", err)
	}

	if err := store.Migrate(db); err != nil {
		_ = db.Close()
		_ = os.Remove(dbPath)
		t.Fatalf("Migrate: %v", err)
	}

	return db, func() {
		_ = db.Close()
		_ = os.Remove(dbPath)
	}
}

// TestQueries creates a migrated temporary database and a Queries bound to
// it. Cleanup is registered on t.
func TestQueries(t *testing.T) *store.Queries {
	t.Helper()

	db, cleanup := TestDB(t)
	t.Cleanup(cleanup)
	return store.New(db)
}

// TestMemoryDB creates an in-memory SQLite database for testing.
// Useful for tests that don't need persistent storage or migrations.
func TestMemoryDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	return db
}

// ArticleParams builds a publishable article fixture: status available,
// publish time at midnight of date, title derived from the slug. Tests
// adjust the returned struct for the case at hand.
func ArticleParams(language, slug string, date time.Time) store.CreateArticleParams {
	return store.CreateArticleParams{
		Language:    language,
		Status:      model.StatusAvailable,
		PublishDate: date,
		PublishTime: time.Date(0, 1, 1, 0, 0, 0, 0, time.UTC),
		Title:       slug,
		Slug:        slug,
	}
}

// CategoryParams builds a root category fixture in the given language.
func CategoryParams(language, slug string) store.CreateCategoryParams {
	return store.CreateCategoryParams{
		Language: language,
		Title:    slug,
		Slug:     slug,
	}
}

// UserParams builds a user fixture.
func UserParams(username string) store.CreateUserParams {
	return store.CreateUserParams{
		Username:  username,
		FirstName: username,
	}
}
