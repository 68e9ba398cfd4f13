// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package validate

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/olegiv/weblog-go/internal/store"
)

// ArticleInput is the slice of a pending article write the cross-field
// rules look at.
type ArticleInput struct {
	ID          int64 // zero on create
	Language    string
	OriginalID  sql.NullInt64
	RelatedIDs  []int64
	CategoryIDs []int64
}

// Article checks a pending article write against the translation-graph
// rules. q must be bound to the write transaction.
func Article(ctx context.Context, q *store.Queries, in ArticleInput) (Errors, error) {
	errs := Errors{}

	if in.OriginalID.Valid {
		original, err := q.GetArticleByID(ctx, in.OriginalID.Int64)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			errs.Add("original", CodeInvalid)
		case err != nil:
			return nil, fmt.Errorf("loading original: %w", err)
		default:
			if original.Language == in.Language {
				errs.Add("language", CodeInvalid)
				errs.Add("original", CodeInvalid)
			}
			if !original.IsOriginal() {
				errs.Add("original", CodeInvalidOriginal)
			}
		}
	}

	// Editing an original: the new language must not collide with one of
	// its existing translations.
	if in.ID != 0 && !in.OriginalID.Valid {
		n, err := q.CountArticleTranslationsWithLanguage(ctx, in.ID, in.Language)
		if err != nil {
			return nil, fmt.Errorf("counting translations: %w", err)
		}
		if n > 0 {
			errs.Add("language", CodeInvalid)
		}
	}

	for _, id := range in.RelatedIDs {
		related, err := q.GetArticleByID(ctx, id)
		if errors.Is(err, sql.ErrNoRows) {
			errs.Add("related", CodeInvalidRelated)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("loading related article: %w", err)
		}
		if related.Language != in.Language {
			errs.Add("related", CodeInvalidRelated)
		}
	}

	for _, id := range in.CategoryIDs {
		category, err := q.GetCategoryByID(ctx, id)
		if errors.Is(err, sql.ErrNoRows) {
			errs.Add("categories", CodeInvalidCategories)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("loading category: %w", err)
		}
		if category.Language != in.Language {
			errs.Add("categories", CodeInvalidCategories)
		}
	}

	return errs, nil
}

// MapUniqueViolation converts a database uniqueness failure into the field
// errors the equivalent cross-field rule would produce, so constraint
// races surface the same way as validator hits. Returns nil when err is
// not a uniqueness failure.
func MapUniqueViolation(err error) Errors {
	violation, ok := store.AsUniqueViolation(err)
	if !ok {
		return nil
	}

	errs := Errors{}
	switch {
	case violation.HasColumn("articles.original_id"),
		violation.HasColumn("categories.original_id"):
		errs.Add("original", CodeUnique)
		errs.Add("language", CodeUnique)
	case violation.HasColumn("articles.slug"),
		violation.HasColumn("categories.slug"):
		errs.Add("slug", CodeUnique)
	case violation.HasColumn("categories.path"):
		errs.Add("ref_node", CodeUnique)
	default:
		for _, column := range violation.Columns {
			errs.Add(column, CodeUnique)
		}
	}
	return errs
}
