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

func scanAlbum(row rowScanner) (model.Album, error) {
	var (
		a        model.Album
		modified string
	)
	err := row.Scan(&a.ID, &a.Title, &modified)
	if err != nil {
		return model.Album{}, err
	}
	if a.Modified, err = parseInstant(modified); err != nil {
		return model.Album{}, fmt.Errorf("parsing modified: %w", err)
	}
	return a, nil
}

// CreateAlbum inserts an album.
func (q *Queries) CreateAlbum(ctx context.Context, title string) (model.Album, error) {
	now := time.Now().UTC()
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO albums (title, modified) VALUES (?, ?)`,
		title, formatInstant(now))
	if err != nil {
		return model.Album{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Album{}, err
	}
	return model.Album{ID: id, Title: title, Modified: now}, nil
}

// GetAlbumByID returns a single album.
func (q *Queries) GetAlbumByID(ctx context.Context, id int64) (model.Album, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT id, title, modified FROM albums WHERE id = ?`, id)
	return scanAlbum(row)
}

// UpdateAlbum renames an album and refreshes modified.
func (q *Queries) UpdateAlbum(ctx context.Context, id int64, title string) (model.Album, error) {
	_, err := q.db.ExecContext(ctx,
		`UPDATE albums SET title = ?, modified = ? WHERE id = ?`,
		title, formatInstant(time.Now().UTC()), id)
	if err != nil {
		return model.Album{}, err
	}
	return q.GetAlbumByID(ctx, id)
}

// DeleteAlbum removes an album with its items. Articles referencing it keep
// existing with the reference cleared at the database layer.
func (q *Queries) DeleteAlbum(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM albums WHERE id = ?`, id)
	return err
}

// CreateAlbumItemParams holds the writable item fields.
type CreateAlbumItemParams struct {
	AlbumID int64
	Title   string
	Order   int
	Media   string
}

// CreateAlbumItem inserts an item into an album.
func (q *Queries) CreateAlbumItem(ctx context.Context, p CreateAlbumItemParams) (model.AlbumItem, error) {
	now := time.Now().UTC()
	res, err := q.db.ExecContext(ctx, `
		INSERT INTO album_items (album_id, title, position, media, modified)
		VALUES (?, ?, ?, ?, ?)`,
		p.AlbumID, p.Title, p.Order, p.Media, formatInstant(now))
	if err != nil {
		return model.AlbumItem{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.AlbumItem{}, err
	}
	return model.AlbumItem{
		ID: id, AlbumID: p.AlbumID, Title: p.Title,
		Order: p.Order, Media: p.Media, Modified: now,
	}, nil
}

// DeleteAlbumItem removes a single item.
func (q *Queries) DeleteAlbumItem(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM album_items WHERE id = ?`, id)
	return err
}

// ListAlbumItems returns the items of an album in display order.
func (q *Queries) ListAlbumItems(ctx context.Context, albumID int64) ([]model.AlbumItem, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT id, album_id, title, position, media, modified
		FROM album_items
		WHERE album_id = ?
		ORDER BY position ASC, title ASC`, albumID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var items []model.AlbumItem
	for rows.Next() {
		var (
			item     model.AlbumItem
			modified string
		)
		err := rows.Scan(&item.ID, &item.AlbumID, &item.Title, &item.Order, &item.Media, &modified)
		if err != nil {
			return nil, err
		}
		if item.Modified, err = parseInstant(modified); err != nil {
			return nil, fmt.Errorf("parsing modified: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// GetArticleAlbum returns the album of an article along with its items, or
// sql.ErrNoRows when the article has none.
func (q *Queries) GetArticleAlbum(ctx context.Context, albumID sql.NullInt64) (model.Album, []model.AlbumItem, error) {
	if !albumID.Valid {
		return model.Album{}, nil, sql.ErrNoRows
	}
	album, err := q.GetAlbumByID(ctx, albumID.Int64)
	if err != nil {
		return model.Album{}, nil, err
	}
	items, err := q.ListAlbumItems(ctx, album.ID)
	if err != nil {
		return model.Album{}, nil, err
	}
	return album, items, nil
}
