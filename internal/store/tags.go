// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/olegiv/weblog-go/internal/model"
)

const tagColumns = `id, name, slug`

func scanTag(row rowScanner) (model.Tag, error) {
	var t model.Tag
	err := row.Scan(&t.ID, &t.Name, &t.Slug)
	return t, err
}

// CreateTag inserts a tag.
func (q *Queries) CreateTag(ctx context.Context, name, slug string) (model.Tag, error) {
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO tags (name, slug) VALUES (?, ?)`, name, slug)
	if err != nil {
		return model.Tag{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Tag{}, err
	}
	return model.Tag{ID: id, Name: name, Slug: slug}, nil
}

// GetTagBySlug returns the tag with the given slug.
func (q *Queries) GetTagBySlug(ctx context.Context, slug string) (model.Tag, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+tagColumns+` FROM tags WHERE slug = ?`, slug)
	return scanTag(row)
}

// GetOrCreateTag returns the tag with the given slug, creating it when
// missing. Tags are shared across languages.
func (q *Queries) GetOrCreateTag(ctx context.Context, name, slug string) (model.Tag, error) {
	t, err := q.GetTagBySlug(ctx, slug)
	if err == nil {
		return t, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return model.Tag{}, err
	}
	return q.CreateTag(ctx, name, slug)
}

// ListActiveTagsParams selects tags used by at least one article of a
// language. The tag index deliberately filters by language only, not the
// full publication criteria, so a tag used solely by upcoming articles
// still appears in the index.
type ListActiveTagsParams struct {
	Language string
	Limit    int64
	Offset   int64
}

// ListActiveTags returns tags in use by articles of the language, with
// usage counts, ordered by name.
func (q *Queries) ListActiveTags(ctx context.Context, p ListActiveTagsParams) ([]model.ActiveTag, error) {
	cond := LanguageCondition("a.", p.Language, q.defaultLang)

	query := `
		SELECT ` + prefixColumns("t", tagColumns) + `, COUNT(a.id)
		FROM tags t
		JOIN article_tags at ON at.tag_id = t.id
		JOIN articles a ON a.id = at.article_id
		WHERE ` + cond.SQL + `
		GROUP BY t.id
		ORDER BY t.name ASC`
	args := cond.Args
	if p.Limit > 0 {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, p.Limit, p.Offset)
	}

	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var tags []model.ActiveTag
	for rows.Next() {
		var t model.ActiveTag
		if err := rows.Scan(&t.ID, &t.Name, &t.Slug, &t.ArticleCount); err != nil {
			return nil, err
		}
		t.ArticleLanguage = p.Language
		if t.ArticleLanguage == "" {
			t.ArticleLanguage = q.defaultLang
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

// CountActiveTags counts the tags ListActiveTags would return.
func (q *Queries) CountActiveTags(ctx context.Context, language string) (int64, error) {
	cond := LanguageCondition("a.", language, q.defaultLang)
	var n int64
	err := q.db.QueryRowContext(ctx, `
		SELECT COUNT(DISTINCT t.id)
		FROM tags t
		JOIN article_tags at ON at.tag_id = t.id
		JOIN articles a ON a.id = at.article_id
		WHERE `+cond.SQL, cond.Args...).Scan(&n)
	return n, err
}

// ListTagAnnotations returns one row per (tag, article language) pair over
// publicly visible articles, annotated with the latest article update.
// Unlike the index listing this applies the full publication criteria, so
// sitemaps never point at tag pages with no visible content.
func (q *Queries) ListTagAnnotations(ctx context.Context, target time.Time) ([]model.ActiveTag, error) {
	where, args := And(PublicationConditions("a.", target, "", boolPtr(false)))

	rows, err := q.db.QueryContext(ctx, `
		SELECT `+prefixColumns("t", tagColumns)+`,
			a.language, MAX(a.last_update), COUNT(a.id)
		FROM tags t
		JOIN article_tags at ON at.tag_id = t.id
		JOIN articles a ON a.id = at.article_id
		WHERE `+where+`
		GROUP BY t.id, a.language
		ORDER BY t.name ASC, a.language ASC`, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var tags []model.ActiveTag
	for rows.Next() {
		var (
			t          model.ActiveTag
			lastUpdate string
		)
		err := rows.Scan(&t.ID, &t.Name, &t.Slug, &t.ArticleLanguage, &lastUpdate, &t.ArticleCount)
		if err != nil {
			return nil, err
		}
		if t.ArticleLatestUpdate, err = parseInstant(lastUpdate); err != nil {
			return nil, fmt.Errorf("parsing last_update: %w", err)
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

// SetArticleTags replaces the article tag set.
func (q *Queries) SetArticleTags(ctx context.Context, articleID int64, tagIDs []int64) error {
	return q.replaceLinks(ctx, "article_tags", "article_id", "tag_id", articleID, tagIDs)
}

// ListArticleTags returns the tags of an article ordered by name.
func (q *Queries) ListArticleTags(ctx context.Context, articleID int64) ([]model.Tag, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT `+prefixColumns("t", tagColumns)+`
		FROM tags t
		JOIN article_tags at ON at.tag_id = t.id
		WHERE at.article_id = ?
		ORDER BY t.name ASC`, articleID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var tags []model.Tag
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}
