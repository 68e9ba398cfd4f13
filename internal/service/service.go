// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service is the mutation surface of the engine. Every entity
// write goes through it: a single transaction spans the cross-field
// validation and the persist, constraint races map to the same field
// errors the validators produce, and media references dropped by a write
// are handed to the purge queue.
package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/olegiv/weblog-go/internal/store"
)

// PurgeHooks receives the media references entity writes drop. Satisfied
// by storage.Purger; nil disables purge tracking.
type PurgeHooks interface {
	OnChange(ctx context.Context, old, updated []string) error
	OnDelete(ctx context.Context, refs []string) error
}

// Service composes the store, the validators and the purge hooks into
// transactional entity writes.
type Service struct {
	db      *sql.DB
	queries *store.Queries
	purger  PurgeHooks
	logger  *slog.Logger
}

// New creates a Service. purger may be nil.
func New(db *sql.DB, queries *store.Queries, purger PurgeHooks, logger *slog.Logger) *Service {
	return &Service{db: db, queries: queries, purger: purger, logger: logger}
}

// errRejected aborts the write transaction when field validation fails;
// the accumulated field errors travel back separately.
var errRejected = errors.New("input rejected")
