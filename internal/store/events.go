// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/olegiv/weblog-go/internal/model"
)

// CreateEventParams holds the fields of an event log entry. A zero
// CreatedAt means now.
type CreateEventParams struct {
	Level     string
	Category  string
	Message   string
	UserID    sql.NullInt64
	Metadata  string
	CreatedAt time.Time
}

// CreateEvent appends an entry to the event log.
func (q *Queries) CreateEvent(ctx context.Context, p CreateEventParams) error {
	if p.Metadata == "" {
		p.Metadata = "{}"
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO events (level, category, message, user_id, metadata, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		p.Level, p.Category, p.Message, p.UserID, p.Metadata,
		formatInstant(p.CreatedAt))
	return err
}

// ListEventsParams selects event log entries, newest first.
type ListEventsParams struct {
	Level    string // filter by level when non-empty
	Category string // filter by category when non-empty
	Limit    int64
	Offset   int64
}

// ListEvents returns event log entries, newest first.
func (q *Queries) ListEvents(ctx context.Context, p ListEventsParams) ([]model.Event, error) {
	var conds []Cond
	if p.Level != "" {
		conds = append(conds, Cond{SQL: "level = ?", Args: []any{p.Level}})
	}
	if p.Category != "" {
		conds = append(conds, Cond{SQL: "category = ?", Args: []any{p.Category}})
	}
	where, args := And(conds)

	query := `
		SELECT id, level, category, message, user_id, metadata, created_at
		FROM events
		WHERE ` + where + `
		ORDER BY created_at DESC, id DESC`
	if p.Limit > 0 {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, p.Limit, p.Offset)
	}

	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var events []model.Event
	for rows.Next() {
		var (
			e         model.Event
			createdAt string
		)
		err := rows.Scan(&e.ID, &e.Level, &e.Category, &e.Message, &e.UserID, &e.Metadata, &createdAt)
		if err != nil {
			return nil, err
		}
		if e.CreatedAt, err = parseInstant(createdAt); err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// CountEvents counts event log entries.
func (q *Queries) CountEvents(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM events`).Scan(&n)
	return n, err
}

// PruneEvents removes entries older than the cutoff and reports how many
// were removed.
func (q *Queries) PruneEvents(ctx context.Context, olderThan time.Time) (int64, error) {
	res, err := q.db.ExecContext(ctx,
		`DELETE FROM events WHERE created_at < ?`, formatInstant(olderThan))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
