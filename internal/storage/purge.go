// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package storage

import (
	"context"
	"log/slog"
	"time"

	"github.com/olegiv/weblog-go/internal/model"
	"github.com/olegiv/weblog-go/internal/store"
)

// Purger tracks media references dropped by entity writes and deletes the
// files once nothing points at them anymore. Candidates go through a
// database queue so a crash between the entity write and the file
// deletion loses no cleanup work.
type Purger struct {
	queries *store.Queries
	storage Storage
	logger  *slog.Logger
}

// NewPurger wires the queue to a storage backend.
func NewPurger(queries *store.Queries, storage Storage, logger *slog.Logger) *Purger {
	return &Purger{queries: queries, storage: storage, logger: logger}
}

// OnChange enqueues the old references an update dropped: everything in
// old that no longer appears in new. Call it with the media fields of the
// entity before and after the write.
func (p *Purger) OnChange(ctx context.Context, old, updated []string) error {
	kept := make(map[string]bool, len(updated))
	for _, ref := range updated {
		kept[ref] = true
	}

	var dropped []string
	for _, ref := range old {
		if ref != "" && !kept[ref] {
			dropped = append(dropped, ref)
		}
	}
	return p.queries.EnqueuePurge(ctx, dropped...)
}

// OnDelete enqueues every media reference of a deleted entity.
func (p *Purger) OnDelete(ctx context.Context, refs []string) error {
	return p.queries.EnqueuePurge(ctx, refs...)
}

// Run processes up to batch queued references: still-referenced ones are
// dropped from the queue untouched, the rest are deleted from storage.
// Safe to run repeatedly and concurrently with writes.
func (p *Purger) Run(ctx context.Context, batch int64) error {
	entries, err := p.queries.DequeuePurgeBatch(ctx, batch)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		n, err := p.queries.CountMediaReferences(ctx, entry.Reference)
		if err != nil {
			return err
		}

		if n == 0 {
			if err := p.storage.Delete(ctx, entry.Reference); err != nil {
				p.logger.Warn("media purge failed",
					"category", model.EventCategoryMedia,
					"reference", entry.Reference,
					"error", err.Error())
				continue
			}
			p.logger.Info("media purged",
				"category", model.EventCategoryMedia,
				"reference", entry.Reference)
		}

		if err := p.queries.DeletePurgeEntry(ctx, entry.ID); err != nil {
			return err
		}
	}
	return nil
}

// Job returns a closure for the cron scheduler running a bounded purge
// pass.
func (p *Purger) Job(batch int64, timeout time.Duration) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		if err := p.Run(ctx, batch); err != nil {
			p.logger.Error("media purge pass failed",
				"category", model.EventCategoryMedia,
				"error", err.Error())
		}
	}
}
