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

// Article list orderings. The common order puts pinned entries first and is
// what listing views use; the default order is what the named queries
// return when no ordering is imposed by the caller.
const (
	articleDefaultOrder = "publish_date DESC, publish_time DESC, title ASC"
	articleCommonOrder  = "pinned DESC, " + articleDefaultOrder
)

const articleColumns = `id, language, original_id, status, featured, pinned, private,
	publish_date, publish_time, publish_end, last_update,
	title, slug, seo_title, lead, introduction, content,
	cover_alt_text, image_alt_text, cover, image, template, album_id`

// rowScanner abstracts *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanArticle(row rowScanner) (model.Article, error) {
	var (
		a           model.Article
		publishDate string
		publishTime string
		publishEnd  sql.NullString
		lastUpdate  string
	)

	err := row.Scan(
		&a.ID, &a.Language, &a.OriginalID, &a.Status, &a.Featured, &a.Pinned, &a.Private,
		&publishDate, &publishTime, &publishEnd, &lastUpdate,
		&a.Title, &a.Slug, &a.SeoTitle, &a.Lead, &a.Introduction, &a.Content,
		&a.CoverAltText, &a.ImageAltText, &a.Cover, &a.Image, &a.Template, &a.AlbumID,
	)
	if err != nil {
		return model.Article{}, err
	}

	if a.PublishDate, err = parseDate(publishDate); err != nil {
		return model.Article{}, fmt.Errorf("parsing publish_date: %w", err)
	}
	if a.PublishTime, err = parseTimeOfDay(publishTime); err != nil {
		return model.Article{}, fmt.Errorf("parsing publish_time: %w", err)
	}
	if a.PublishEnd, err = parseNullInstant(publishEnd); err != nil {
		return model.Article{}, fmt.Errorf("parsing publish_end: %w", err)
	}
	if a.LastUpdate, err = parseInstant(lastUpdate); err != nil {
		return model.Article{}, fmt.Errorf("parsing last_update: %w", err)
	}

	return a, nil
}

func collectArticles(rows *sql.Rows) ([]model.Article, error) {
	defer func() { _ = rows.Close() }()

	var articles []model.Article
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, a)
	}
	return articles, rows.Err()
}

// CreateArticleParams holds the writable article fields.
type CreateArticleParams struct {
	Language     string
	OriginalID   sql.NullInt64
	Status       int
	Featured     bool
	Pinned       bool
	Private      bool
	PublishDate  time.Time
	PublishTime  time.Time
	PublishEnd   sql.NullTime
	Title        string
	Slug         string
	SeoTitle     string
	Lead         string
	Introduction string
	Content      string
	CoverAltText string
	ImageAltText string
	Cover        string
	Image        string
	Template     string
	AlbumID      sql.NullInt64
}

// CreateArticle inserts an article and returns it. last_update is set to
// the current instant.
func (q *Queries) CreateArticle(ctx context.Context, p CreateArticleParams) (model.Article, error) {
	now := time.Now().UTC()

	res, err := q.db.ExecContext(ctx, `
		INSERT INTO articles (
			language, original_id, status, featured, pinned, private,
			publish_date, publish_time, publish_end, last_update,
			title, slug, seo_title, lead, introduction, content,
			cover_alt_text, image_alt_text, cover, image, template, album_id
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Language, p.OriginalID, p.Status, boolInt(p.Featured), boolInt(p.Pinned), boolInt(p.Private),
		formatDate(p.PublishDate), formatTime(p.PublishTime), nullInstant(p.PublishEnd), formatInstant(now),
		p.Title, p.Slug, p.SeoTitle, p.Lead, p.Introduction, p.Content,
		p.CoverAltText, p.ImageAltText, p.Cover, p.Image, p.Template, p.AlbumID,
	)
	if err != nil {
		return model.Article{}, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return model.Article{}, err
	}
	return q.GetArticleByID(ctx, id)
}

// UpdateArticleParams holds the writable fields for an update.
type UpdateArticleParams struct {
	ID int64
	CreateArticleParams
}

// UpdateArticle rewrites every writable field and refreshes last_update.
func (q *Queries) UpdateArticle(ctx context.Context, p UpdateArticleParams) (model.Article, error) {
	now := time.Now().UTC()

	_, err := q.db.ExecContext(ctx, `
		UPDATE articles SET
			language = ?, original_id = ?, status = ?, featured = ?, pinned = ?, private = ?,
			publish_date = ?, publish_time = ?, publish_end = ?, last_update = ?,
			title = ?, slug = ?, seo_title = ?, lead = ?, introduction = ?, content = ?,
			cover_alt_text = ?, image_alt_text = ?, cover = ?, image = ?, template = ?, album_id = ?
		WHERE id = ?`,
		p.Language, p.OriginalID, p.Status, boolInt(p.Featured), boolInt(p.Pinned), boolInt(p.Private),
		formatDate(p.PublishDate), formatTime(p.PublishTime), nullInstant(p.PublishEnd), formatInstant(now),
		p.Title, p.Slug, p.SeoTitle, p.Lead, p.Introduction, p.Content,
		p.CoverAltText, p.ImageAltText, p.Cover, p.Image, p.Template, p.AlbumID,
		p.ID,
	)
	if err != nil {
		return model.Article{}, err
	}
	return q.GetArticleByID(ctx, p.ID)
}

// DeleteArticle removes an article. Translations pointing at it cascade at
// the database layer.
func (q *Queries) DeleteArticle(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM articles WHERE id = ?`, id)
	return err
}

// GetArticleByID returns a single article.
func (q *Queries) GetArticleByID(ctx context.Context, id int64) (model.Article, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+articleColumns+` FROM articles WHERE id = ?`, id)
	return scanArticle(row)
}

// GetArticleByDateSlugParams identifies an article detail URL.
type GetArticleByDateSlugParams struct {
	PublishDate time.Time
	Slug        string
	Language    string // optional
}

// GetArticleByDateSlug resolves /YYYY/MM/DD/slug detail lookups.
func (q *Queries) GetArticleByDateSlug(ctx context.Context, p GetArticleByDateSlugParams) (model.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles WHERE publish_date = ? AND slug = ?`
	args := []any{formatDate(p.PublishDate), p.Slug}
	if p.Language != "" {
		query += ` AND language = ?`
		args = append(args, p.Language)
	}
	row := q.db.QueryRowContext(ctx, query, args...)
	return scanArticle(row)
}

// ArticleFilter carries the visibility decision for article collections.
// Preview widens the result to everything in the language (drafts and
// scheduled included); otherwise the publication criteria apply at Target.
// Private pins the private flag when set (anonymous viewers pass false).
type ArticleFilter struct {
	Preview  bool
	Target   time.Time
	Language string
	Private  *bool
}

// FilterForViewer translates a viewer into the article filter used by
// listing views and the API: staff in preview mode bypass publication
// criteria, anonymous viewers never see private entries.
func FilterForViewer(v model.Viewer, language string) ArticleFilter {
	f := ArticleFilter{
		Preview:  v.PreviewAllowed(),
		Target:   v.Now,
		Language: language,
	}
	if !v.Authenticated {
		private := false
		f.Private = &private
	}
	return f
}

// Conds renders the filter as composable conditions under prefix.
func (f ArticleFilter) Conds(prefix, fallbackLang string) []Cond {
	if f.Preview {
		conds := []Cond{LanguageCondition(prefix, f.Language, fallbackLang)}
		if f.Private != nil {
			conds = append(conds, Cond{SQL: prefix + "private = ?", Args: []any{boolInt(*f.Private)}})
		}
		return conds
	}

	target := f.Target
	if target.IsZero() {
		target = time.Now()
	}
	return PublicationConditions(prefix, target, f.Language, f.Private)
}

// ListArticlesParams selects and paginates an article collection.
type ListArticlesParams struct {
	Filter     ArticleFilter
	CategoryID int64  // restrict to a category when non-zero
	AuthorID   int64  // restrict to an author when non-zero
	TagSlug    string // restrict to a tag when non-empty
	Limit      int64  // no limit when zero
	Offset     int64
}

func (p ListArticlesParams) build(selectList, orderBy string, q *Queries) (string, []any) {
	query := selectList + ` FROM articles a`
	if p.CategoryID != 0 {
		query += ` JOIN article_categories ac ON ac.article_id = a.id AND ac.category_id = ?`
	}
	if p.AuthorID != 0 {
		query += ` JOIN article_authors aa ON aa.article_id = a.id AND aa.user_id = ?`
	}
	if p.TagSlug != "" {
		query += ` JOIN article_tags at ON at.article_id = a.id
			JOIN tags t ON t.id = at.tag_id AND t.slug = ?`
	}

	where, args := And(p.Filter.Conds("a.", q.defaultLang))

	var joinArgs []any
	if p.CategoryID != 0 {
		joinArgs = append(joinArgs, p.CategoryID)
	}
	if p.AuthorID != 0 {
		joinArgs = append(joinArgs, p.AuthorID)
	}
	if p.TagSlug != "" {
		joinArgs = append(joinArgs, p.TagSlug)
	}
	args = append(joinArgs, args...)

	query += ` WHERE ` + where
	if orderBy != "" {
		query += ` ORDER BY ` + orderBy
	}
	if p.Limit > 0 {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, p.Limit, p.Offset)
	}
	return query, args
}

// ListArticles returns the articles visible under the filter, common order.
func (q *Queries) ListArticles(ctx context.Context, p ListArticlesParams) ([]model.Article, error) {
	query, args := p.build(`SELECT `+prefixColumns("a", articleColumns), prefixOrder("a", articleCommonOrder), q)
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return collectArticles(rows)
}

// CountArticles counts the articles visible under the filter.
func (q *Queries) CountArticles(ctx context.Context, p ListArticlesParams) (int64, error) {
	p.Limit = 0
	query, args := p.build(`SELECT COUNT(*)`, "", q)
	var n int64
	err := q.db.QueryRowContext(ctx, query, args...).Scan(&n)
	return n, err
}

// ListPublishedArticlesParams applies the public publication criteria.
type ListPublishedArticlesParams struct {
	Target   time.Time
	Language string
	Private  *bool
	Limit    int64
	Offset   int64
}

// ListPublishedArticles returns published entries at Target, default order.
func (q *Queries) ListPublishedArticles(ctx context.Context, p ListPublishedArticlesParams) ([]model.Article, error) {
	target := p.Target
	if target.IsZero() {
		target = time.Now()
	}
	where, args := And(PublicationConditions("", target, p.Language, p.Private))

	query := `SELECT ` + articleColumns + ` FROM articles WHERE ` + where +
		` ORDER BY ` + articleDefaultOrder
	if p.Limit > 0 {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, p.Limit, p.Offset)
	}

	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return collectArticles(rows)
}

// ListUnpublishedArticles returns the set-complement of the published
// selection for the same target and language.
func (q *Queries) ListUnpublishedArticles(ctx context.Context, p ListPublishedArticlesParams) ([]model.Article, error) {
	target := p.Target
	if target.IsZero() {
		target = time.Now()
	}
	where, args := And(PublicationConditions("", target, p.Language, p.Private))

	query := `SELECT ` + articleColumns + ` FROM articles WHERE NOT (` + where + `)`
	if p.Language != "" {
		query += ` AND language = ?`
		args = append(args, p.Language)
	}
	query += ` ORDER BY ` + articleDefaultOrder

	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return collectArticles(rows)
}

// ListArticlesForLang returns every article in a language regardless of
// publication, default order. An empty language means the default one.
func (q *Queries) ListArticlesForLang(ctx context.Context, language string) ([]model.Article, error) {
	cond := LanguageCondition("", language, q.defaultLang)
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+articleColumns+` FROM articles WHERE `+cond.SQL+
			` ORDER BY `+articleDefaultOrder, cond.Args...)
	if err != nil {
		return nil, err
	}
	return collectArticles(rows)
}

// ListArticleSiblings returns the translation set of source: for an
// original its translations, for a translation the original plus the other
// translations. An optional visibility filter restricts the set; its
// language restriction is dropped since siblings span languages.
func (q *Queries) ListArticleSiblings(ctx context.Context, source model.Article, filter *ArticleFilter) ([]model.Article, error) {
	conds := SiblingConditions(source.ID, source.OriginalID)
	if filter != nil {
		f := *filter
		f.Language = ""
		conds = append(conds, f.Conds("", q.defaultLang)...)
	}
	where, args := And(conds)
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+articleColumns+` FROM articles WHERE `+where+
			` ORDER BY language ASC`, args...)
	if err != nil {
		return nil, err
	}
	return collectArticles(rows)
}

// ListArticleTranslations returns the translations of an original article,
// optionally restricted by a visibility filter.
func (q *Queries) ListArticleTranslations(ctx context.Context, originalID int64, filter *ArticleFilter) ([]model.Article, error) {
	conds := []Cond{{SQL: "original_id = ?", Args: []any{originalID}}}
	if filter != nil {
		f := *filter
		f.Language = "" // translations are in other languages by definition
		conds = append(conds, f.Conds("", q.defaultLang)...)
	}
	where, args := And(conds)

	rows, err := q.db.QueryContext(ctx,
		`SELECT `+articleColumns+` FROM articles WHERE `+where+
			` ORDER BY `+articleDefaultOrder, args...)
	if err != nil {
		return nil, err
	}
	return collectArticles(rows)
}

// SetArticleCategories replaces the article category set.
func (q *Queries) SetArticleCategories(ctx context.Context, articleID int64, categoryIDs []int64) error {
	return q.replaceLinks(ctx, "article_categories", "article_id", "category_id", articleID, categoryIDs)
}

// ListArticleCategories returns the categories of an article sharing its
// language, ordered by title.
func (q *Queries) ListArticleCategories(ctx context.Context, articleID int64) ([]model.Category, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT `+prefixColumns("c", categoryColumns)+`
		FROM categories c
		JOIN article_categories ac ON ac.category_id = c.id
		JOIN articles a ON a.id = ac.article_id
		WHERE ac.article_id = ? AND c.language = a.language
		ORDER BY c.title ASC`, articleID)
	if err != nil {
		return nil, err
	}
	return collectCategories(rows)
}

// SetArticleAuthors replaces the article author set.
func (q *Queries) SetArticleAuthors(ctx context.Context, articleID int64, userIDs []int64) error {
	return q.replaceLinks(ctx, "article_authors", "article_id", "user_id", articleID, userIDs)
}

// ListArticleAuthors returns the authors of an article ordered by username.
func (q *Queries) ListArticleAuthors(ctx context.Context, articleID int64) ([]model.User, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT u.id, u.username, u.first_name, u.last_name, u.is_staff, u.created_at
		FROM users u
		JOIN article_authors aa ON aa.user_id = u.id
		WHERE aa.article_id = ?
		ORDER BY u.username ASC`, articleID)
	if err != nil {
		return nil, err
	}
	return collectUsers(rows)
}

// SetArticleRelated replaces the directed related-article set.
func (q *Queries) SetArticleRelated(ctx context.Context, articleID int64, relatedIDs []int64) error {
	return q.replaceLinks(ctx, "article_relations", "from_article_id", "to_article_id", articleID, relatedIDs)
}

// ListArticleRelated returns the articles the source lists as related,
// optionally restricted by a visibility filter.
func (q *Queries) ListArticleRelated(ctx context.Context, articleID int64, filter *ArticleFilter) ([]model.Article, error) {
	conds := []Cond{{SQL: "ar.from_article_id = ?", Args: []any{articleID}}}
	if filter != nil {
		conds = append(conds, filter.Conds("a.", q.defaultLang)...)
	}
	where, args := And(conds)

	rows, err := q.db.QueryContext(ctx, `
		SELECT `+prefixColumns("a", articleColumns)+`
		FROM articles a
		JOIN article_relations ar ON ar.to_article_id = a.id
		WHERE `+where+`
		ORDER BY `+prefixOrder("a", articleDefaultOrder), args...)
	if err != nil {
		return nil, err
	}
	return collectArticles(rows)
}

// ListArticlesRelatingTo returns the reverse side of the directed relation:
// every article listing the given one as related.
func (q *Queries) ListArticlesRelatingTo(ctx context.Context, articleID int64, filter *ArticleFilter) ([]model.Article, error) {
	conds := []Cond{{SQL: "ar.to_article_id = ?", Args: []any{articleID}}}
	if filter != nil {
		conds = append(conds, filter.Conds("a.", q.defaultLang)...)
	}
	where, args := And(conds)

	rows, err := q.db.QueryContext(ctx, `
		SELECT `+prefixColumns("a", articleColumns)+`
		FROM articles a
		JOIN article_relations ar ON ar.from_article_id = a.id
		WHERE `+where+`
		ORDER BY `+prefixOrder("a", articleDefaultOrder), args...)
	if err != nil {
		return nil, err
	}
	return collectArticles(rows)
}

// replaceLinks rewrites the link rows (ownerCol=ownerID) to targets.
func (q *Queries) replaceLinks(ctx context.Context, table, ownerCol, targetCol string, ownerID int64, targets []int64) error {
	if _, err := q.db.ExecContext(ctx,
		`DELETE FROM `+table+` WHERE `+ownerCol+` = ?`, ownerID); err != nil {
		return err
	}
	for _, target := range targets {
		if _, err := q.db.ExecContext(ctx,
			`INSERT INTO `+table+` (`+ownerCol+`, `+targetCol+`) VALUES (?, ?)`,
			ownerID, target); err != nil {
			return err
		}
	}
	return nil
}

// CountArticleTranslationsWithLanguage counts translations of an article
// already carrying lang. A language change colliding with one is rejected.
func (q *Queries) CountArticleTranslationsWithLanguage(ctx context.Context, originalID int64, lang string) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM articles WHERE original_id = ? AND language = ?`,
		originalID, lang).Scan(&n)
	return n, err
}

// TouchArticle refreshes last_update without changing content. Used when a
// relation set changes outside UpdateArticle.
func (q *Queries) TouchArticle(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE articles SET last_update = ? WHERE id = ?`,
		formatInstant(time.Now().UTC()), id)
	return err
}
