// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"fmt"
	"time"
)

// PurgeEntry is a media reference waiting for deletion from storage.
type PurgeEntry struct {
	ID        int64
	Reference string
	QueuedAt  time.Time
}

// EnqueuePurge records media references for later deletion. Empty
// references are skipped so callers can pass old field values verbatim.
func (q *Queries) EnqueuePurge(ctx context.Context, references ...string) error {
	now := formatInstant(time.Now().UTC())
	for _, ref := range references {
		if ref == "" {
			continue
		}
		_, err := q.db.ExecContext(ctx,
			`INSERT INTO media_purge_queue (reference, queued_at) VALUES (?, ?)`,
			ref, now)
		if err != nil {
			return err
		}
	}
	return nil
}

// DequeuePurgeBatch returns up to limit queued references, oldest first.
func (q *Queries) DequeuePurgeBatch(ctx context.Context, limit int64) ([]PurgeEntry, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT id, reference, queued_at
		FROM media_purge_queue
		ORDER BY queued_at ASC, id ASC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var entries []PurgeEntry
	for rows.Next() {
		var (
			e        PurgeEntry
			queuedAt string
		)
		if err := rows.Scan(&e.ID, &e.Reference, &queuedAt); err != nil {
			return nil, err
		}
		if e.QueuedAt, err = parseInstant(queuedAt); err != nil {
			return nil, fmt.Errorf("parsing queued_at: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// DeletePurgeEntry removes a processed queue entry.
func (q *Queries) DeletePurgeEntry(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx,
		`DELETE FROM media_purge_queue WHERE id = ?`, id)
	return err
}

// CountMediaReferences counts live rows still pointing at a media
// reference, across every media-bearing column. The purge janitor skips
// references that are still in use.
func (q *Queries) CountMediaReferences(ctx context.Context, reference string) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM articles WHERE cover = ? OR image = ?) +
			(SELECT COUNT(*) FROM categories WHERE cover = ?) +
			(SELECT COUNT(*) FROM album_items WHERE media = ?)`,
		reference, reference, reference, reference).Scan(&n)
	return n, err
}
