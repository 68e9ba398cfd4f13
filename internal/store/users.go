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

const userColumns = `id, username, first_name, last_name, is_staff, created_at`

func scanUser(row rowScanner) (model.User, error) {
	var (
		u         model.User
		createdAt string
	)
	err := row.Scan(&u.ID, &u.Username, &u.FirstName, &u.LastName, &u.IsStaff, &createdAt)
	if err != nil {
		return model.User{}, err
	}
	if u.CreatedAt, err = parseInstant(createdAt); err != nil {
		return model.User{}, fmt.Errorf("parsing created_at: %w", err)
	}
	return u, nil
}

func collectUsers(rows *sql.Rows) ([]model.User, error) {
	defer func() { _ = rows.Close() }()

	var users []model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// CreateUserParams holds the writable user fields.
type CreateUserParams struct {
	Username  string
	FirstName string
	LastName  string
	IsStaff   bool
}

// CreateUser inserts a user.
func (q *Queries) CreateUser(ctx context.Context, p CreateUserParams) (model.User, error) {
	res, err := q.db.ExecContext(ctx, `
		INSERT INTO users (username, first_name, last_name, is_staff, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		p.Username, p.FirstName, p.LastName, boolInt(p.IsStaff),
		formatInstant(time.Now().UTC()),
	)
	if err != nil {
		return model.User{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.User{}, err
	}
	return q.GetUserByID(ctx, id)
}

// GetUserByID returns a single user.
func (q *Queries) GetUserByID(ctx context.Context, id int64) (model.User, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

// GetUserByUsername returns the user with the given username.
func (q *Queries) GetUserByUsername(ctx context.Context, username string) (model.User, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = ?`, username)
	return scanUser(row)
}

// ListActiveAuthorsParams selects active authors for a viewer at a moment.
type ListActiveAuthorsParams struct {
	Filter ArticleFilter
	Limit  int64
	Offset int64
}

// ListActiveAuthors returns the users credited on at least one article
// visible under the filter, ordered by username. The publication criteria
// are re-targeted onto the joined articles with the "a." prefix; DISTINCT
// collapses the multiple matching articles per author.
func (q *Queries) ListActiveAuthors(ctx context.Context, p ListActiveAuthorsParams) ([]model.User, error) {
	where, args := And(p.Filter.Conds("a.", q.defaultLang))

	query := `
		SELECT DISTINCT ` + prefixColumns("u", userColumns) + `
		FROM users u
		JOIN article_authors aa ON aa.user_id = u.id
		JOIN articles a ON a.id = aa.article_id
		WHERE ` + where + `
		ORDER BY u.username ASC`
	if p.Limit > 0 {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, p.Limit, p.Offset)
	}

	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return collectUsers(rows)
}

// CountActiveAuthors counts the users ListActiveAuthors would return.
func (q *Queries) CountActiveAuthors(ctx context.Context, filter ArticleFilter) (int64, error) {
	where, args := And(filter.Conds("a.", q.defaultLang))

	var n int64
	err := q.db.QueryRowContext(ctx, `
		SELECT COUNT(DISTINCT u.id)
		FROM users u
		JOIN article_authors aa ON aa.user_id = u.id
		JOIN articles a ON a.id = aa.article_id
		WHERE `+where, args...).Scan(&n)
	return n, err
}

// ListAuthorAnnotations returns one row per (author, article language) pair
// over publicly visible articles, annotated with the latest article update.
// Sitemaps use it to emit an entry per language the author writes in.
func (q *Queries) ListAuthorAnnotations(ctx context.Context, target time.Time) ([]model.Author, error) {
	where, args := And(PublicationConditions("a.", target, "", boolPtr(false)))

	rows, err := q.db.QueryContext(ctx, `
		SELECT `+prefixColumns("u", userColumns)+`,
			a.language, MAX(a.last_update)
		FROM users u
		JOIN article_authors aa ON aa.user_id = u.id
		JOIN articles a ON a.id = aa.article_id
		WHERE `+where+`
		GROUP BY u.id, a.language
		ORDER BY u.username ASC, a.language ASC`, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var authors []model.Author
	for rows.Next() {
		var (
			author     model.Author
			createdAt  string
			lastUpdate string
		)
		err := rows.Scan(
			&author.ID, &author.Username, &author.FirstName, &author.LastName,
			&author.IsStaff, &createdAt,
			&author.ArticleLanguage, &lastUpdate,
		)
		if err != nil {
			return nil, err
		}
		if author.CreatedAt, err = parseInstant(createdAt); err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		if author.ArticleLatestUpdate, err = parseInstant(lastUpdate); err != nil {
			return nil, fmt.Errorf("parsing last_update: %w", err)
		}
		authors = append(authors, author)
	}
	return authors, rows.Err()
}

func boolPtr(b bool) *bool { return &b }
