// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/olegiv/weblog-go/internal/model"
)

const categoryColumns = `id, language, original_id, title, slug, lead, description,
	cover_alt_text, cover, modified, template, path, depth`

// ErrInvalidMove is returned when a tree move would put a node inside its
// own subtree.
var ErrInvalidMove = errors.New("cannot move a category under its own descendant")

func scanCategory(row rowScanner) (model.Category, error) {
	var (
		c        model.Category
		modified string
	)

	err := row.Scan(
		&c.ID, &c.Language, &c.OriginalID, &c.Title, &c.Slug, &c.Lead, &c.Description,
		&c.CoverAltText, &c.Cover, &modified, &c.Template, &c.Path, &c.Depth,
	)
	if err != nil {
		return model.Category{}, err
	}

	if c.Modified, err = parseInstant(modified); err != nil {
		return model.Category{}, fmt.Errorf("parsing modified: %w", err)
	}
	return c, nil
}

func collectCategories(rows *sql.Rows) ([]model.Category, error) {
	defer func() { _ = rows.Close() }()

	var categories []model.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// CreateCategoryParams holds the writable category fields. ParentID places
// the node in the tree; a null parent creates a root.
type CreateCategoryParams struct {
	Language     string
	OriginalID   sql.NullInt64
	Title        string
	Slug         string
	Lead         string
	Description  string
	CoverAltText string
	Cover        string
	Template     string
	ParentID     sql.NullInt64
}

// CreateCategory inserts a tree node, allocating the next materialized-path
// segment under its parent.
func (q *Queries) CreateCategory(ctx context.Context, p CreateCategoryParams) (model.Category, error) {
	path, depth, err := q.nextChildPath(ctx, p.ParentID)
	if err != nil {
		return model.Category{}, err
	}

	res, err := q.db.ExecContext(ctx, `
		INSERT INTO categories (
			language, original_id, title, slug, lead, description,
			cover_alt_text, cover, modified, template, path, depth
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Language, p.OriginalID, p.Title, p.Slug, p.Lead, p.Description,
		p.CoverAltText, p.Cover, formatInstant(time.Now().UTC()), p.Template, path, depth,
	)
	if err != nil {
		return model.Category{}, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return model.Category{}, err
	}
	return q.GetCategoryByID(ctx, id)
}

// nextChildPath allocates the next free path under parentID (null for a
// new root).
func (q *Queries) nextChildPath(ctx context.Context, parentID sql.NullInt64) (string, int, error) {
	parentPath := ""
	depth := 1

	if parentID.Valid {
		parent, err := q.GetCategoryByID(ctx, parentID.Int64)
		if err != nil {
			return "", 0, fmt.Errorf("loading parent: %w", err)
		}
		parentPath = parent.Path
		depth = parent.Depth + 1
	}

	var lastPath sql.NullString
	err := q.db.QueryRowContext(ctx, `
		SELECT MAX(path) FROM categories WHERE depth = ? AND path LIKE ?`,
		depth, parentPath+"%").Scan(&lastPath)
	if err != nil {
		return "", 0, err
	}

	next := 1
	if lastPath.Valid {
		segment := lastPath.String[len(parentPath):]
		n, err := strconv.Atoi(segment)
		if err != nil {
			return "", 0, fmt.Errorf("malformed path segment %q: %w", segment, err)
		}
		next = n + 1
	}

	return parentPath + fmt.Sprintf("%0*d", model.PathStepLen, next), depth, nil
}

// UpdateCategoryParams holds the writable fields for an update. Tree
// placement is not part of it; use MoveCategory.
type UpdateCategoryParams struct {
	ID           int64
	Language     string
	OriginalID   sql.NullInt64
	Title        string
	Slug         string
	Lead         string
	Description  string
	CoverAltText string
	Cover        string
	Template     string
}

// UpdateCategory rewrites the content fields and refreshes modified.
func (q *Queries) UpdateCategory(ctx context.Context, p UpdateCategoryParams) (model.Category, error) {
	_, err := q.db.ExecContext(ctx, `
		UPDATE categories SET
			language = ?, original_id = ?, title = ?, slug = ?, lead = ?, description = ?,
			cover_alt_text = ?, cover = ?, modified = ?, template = ?
		WHERE id = ?`,
		p.Language, p.OriginalID, p.Title, p.Slug, p.Lead, p.Description,
		p.CoverAltText, p.Cover, formatInstant(time.Now().UTC()), p.Template,
		p.ID,
	)
	if err != nil {
		return model.Category{}, err
	}
	return q.GetCategoryByID(ctx, p.ID)
}

// DeleteCategory removes a node and its whole subtree. Translations of the
// removed nodes cascade at the database layer.
func (q *Queries) DeleteCategory(ctx context.Context, id int64) error {
	cat, err := q.GetCategoryByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		return err
	}

	_, err = q.db.ExecContext(ctx,
		`DELETE FROM categories WHERE path = ? OR path LIKE ?`,
		cat.Path, cat.Path+"%")
	return err
}

// GetCategoryByID returns a single category.
func (q *Queries) GetCategoryByID(ctx context.Context, id int64) (model.Category, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE id = ?`, id)
	return scanCategory(row)
}

// GetCategoryBySlugParams identifies a category by slug and language.
type GetCategoryBySlugParams struct {
	Slug     string
	Language string
}

// GetCategoryBySlug returns the category for (slug, language).
func (q *Queries) GetCategoryBySlug(ctx context.Context, p GetCategoryBySlugParams) (model.Category, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE slug = ? AND language = ?`,
		p.Slug, p.Language)
	return scanCategory(row)
}

// ListCategoriesParams selects and paginates categories of a language.
type ListCategoriesParams struct {
	Language string
	Limit    int64
	Offset   int64
}

// ListCategories returns categories of a language ordered by title. An
// empty language means the default one.
func (q *Queries) ListCategories(ctx context.Context, p ListCategoriesParams) ([]model.Category, error) {
	cond := LanguageCondition("", p.Language, q.defaultLang)
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE ` + cond.SQL + ` ORDER BY title ASC`
	args := cond.Args
	if p.Limit > 0 {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, p.Limit, p.Offset)
	}

	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return collectCategories(rows)
}

// CountCategories counts categories of a language.
func (q *Queries) CountCategories(ctx context.Context, language string) (int64, error) {
	cond := LanguageCondition("", language, q.defaultLang)
	var n int64
	err := q.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM categories WHERE `+cond.SQL, cond.Args...).Scan(&n)
	return n, err
}

// ListCategorySiblings returns the translation set of source.
func (q *Queries) ListCategorySiblings(ctx context.Context, source model.Category) ([]model.Category, error) {
	where, args := And(SiblingConditions(source.ID, source.OriginalID))
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE `+where+` ORDER BY language ASC`,
		args...)
	if err != nil {
		return nil, err
	}
	return collectCategories(rows)
}

// ListCategoryTranslations returns the translations of an original.
func (q *Queries) ListCategoryTranslations(ctx context.Context, originalID int64) ([]model.Category, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE original_id = ? ORDER BY language ASC`,
		originalID)
	if err != nil {
		return nil, err
	}
	return collectCategories(rows)
}

// TreeParams selects a tree view.
type TreeParams struct {
	ParentID  sql.NullInt64 // restrict to parent and its descendants
	Language  string        // filter by language when non-empty
	CurrentID sql.NullInt64 // the "open" node for branch mode
	Branch    bool          // restrict to roots + open branch of CurrentID
}

// Tree returns tree nodes ordered by path. Nodes whose ancestor chain
// contains a node of another language are excluded; the language rules on
// mutation keep that set empty, the filter is a safety net.
func (q *Queries) Tree(ctx context.Context, p TreeParams) ([]model.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories`
	var args []any

	if p.ParentID.Valid {
		parent, err := q.GetCategoryByID(ctx, p.ParentID.Int64)
		if err != nil {
			return nil, err
		}
		query += ` WHERE (path = ? OR path LIKE ?)`
		args = append(args, parent.Path, parent.Path+"%")
	}
	query += ` ORDER BY path ASC`

	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	nodes, err := collectCategories(rows)
	if err != nil {
		return nil, err
	}

	// Ancestor language check runs over the full scope before any language
	// or branch restriction, so a foreign-language ancestor hides its
	// subtree even when the subtree itself matches the filter.
	langByPath := make(map[string]string, len(nodes))
	for _, n := range nodes {
		langByPath[n.Path] = n.Language
	}

	var current *model.Category
	if p.Branch && p.CurrentID.Valid {
		c, err := q.GetCategoryByID(ctx, p.CurrentID.Int64)
		if err != nil {
			return nil, err
		}
		current = &c
	}

	var out []model.Category
	for _, n := range nodes {
		if !ancestorsSameLanguage(n, langByPath) {
			continue
		}
		if p.Language != "" && n.Language != p.Language {
			continue
		}
		if current != nil && !inOpenBranch(n, *current) {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}

// ancestorsSameLanguage checks the whole ancestor chain of n against its
// own language, using the preloaded path map.
func ancestorsSameLanguage(n model.Category, langByPath map[string]string) bool {
	for _, ancestorPath := range n.AncestorPaths() {
		lang, ok := langByPath[ancestorPath]
		if ok && lang != n.Language {
			return false
		}
	}
	return true
}

// inOpenBranch keeps roots, the ancestor chain of current (current
// included) and the direct children of every node on that chain.
func inOpenBranch(n, current model.Category) bool {
	if n.Depth == 1 {
		return true
	}
	// On the chain: current itself or an ancestor of it.
	if n.ID == current.ID || strings.HasPrefix(current.Path, n.Path) {
		return true
	}
	// Direct child of a chain node.
	parentPath := n.ParentPath()
	if parentPath == current.Path || strings.HasPrefix(current.Path, parentPath) {
		return n.Depth <= current.Depth+1
	}
	return false
}

// MoveCategory reparents a node, rewriting the paths of its whole subtree.
// Language consistency is checked by the validation layer inside the same
// transaction; this only refuses structurally impossible moves. The
// caller's transaction holds the write lock for the whole recomputation.
func (q *Queries) MoveCategory(ctx context.Context, id int64, newParentID sql.NullInt64) error {
	node, err := q.GetCategoryByID(ctx, id)
	if err != nil {
		return err
	}

	if newParentID.Valid {
		newParent, err := q.GetCategoryByID(ctx, newParentID.Int64)
		if err != nil {
			return err
		}
		if newParent.ID == node.ID || newParent.IsDescendantOf(&node) {
			return ErrInvalidMove
		}
	}

	newPath, newDepth, err := q.nextChildPath(ctx, newParentID)
	if err != nil {
		return err
	}

	// Rewrite the node and every descendant in one statement: splice the
	// new prefix onto the path tail, shift depth by the level delta.
	_, err = q.db.ExecContext(ctx, `
		UPDATE categories SET
			path = ? || substr(path, ?),
			depth = depth + ?
		WHERE path = ? OR path LIKE ?`,
		newPath, len(node.Path)+1, newDepth-node.Depth,
		node.Path, node.Path+"%")
	return err
}

// CountCategoryArticlesOtherLanguage counts articles referencing the
// category whose language differs from lang. Used to reject language
// changes that would break referencing articles.
func (q *Queries) CountCategoryArticlesOtherLanguage(ctx context.Context, categoryID int64, lang string) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM articles a
		JOIN article_categories ac ON ac.article_id = a.id
		WHERE ac.category_id = ? AND a.language <> ?`,
		categoryID, lang).Scan(&n)
	return n, err
}

// CountCategoryTranslationsWithLanguage counts translations of a category
// already carrying lang. A language change colliding with one is rejected.
func (q *Queries) CountCategoryTranslationsWithLanguage(ctx context.Context, originalID int64, lang string) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM categories WHERE original_id = ? AND language = ?`,
		originalID, lang).Scan(&n)
	return n, err
}

// CountDescendantsOtherLanguage counts subtree nodes (excluding the root)
// whose language differs from lang.
func (q *Queries) CountDescendantsOtherLanguage(ctx context.Context, path, lang string) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM categories
		WHERE path LIKE ? AND path <> ? AND language <> ?`,
		path+"%", path, lang).Scan(&n)
	return n, err
}
