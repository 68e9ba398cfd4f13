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

// CategoryInput is the slice of a pending category write the cross-field
// rules look at. ParentID is the target parent for a create or move.
type CategoryInput struct {
	ID         int64 // zero on create
	Language   string
	OriginalID sql.NullInt64
	ParentID   sql.NullInt64
}

// Category checks a pending category write against the translation-graph
// and tree rules. q must be bound to the write transaction.
func Category(ctx context.Context, q *store.Queries, in CategoryInput) (Errors, error) {
	errs := Errors{}

	if in.OriginalID.Valid {
		original, err := q.GetCategoryByID(ctx, in.OriginalID.Int64)
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

	if in.ParentID.Valid {
		parent, err := q.GetCategoryByID(ctx, in.ParentID.Int64)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			errs.Add("ref_node", CodeInvalid)
		case err != nil:
			return nil, fmt.Errorf("loading parent: %w", err)
		default:
			if parent.Language != in.Language {
				errs.Add("ref_node", CodeInvalid)
				errs.Add("language", CodeInvalid)
			}
		}
	}

	// Edit-only rules: the language must stay compatible with everything
	// already hanging off the node.
	if in.ID != 0 {
		if !in.OriginalID.Valid {
			n, err := q.CountCategoryTranslationsWithLanguage(ctx, in.ID, in.Language)
			if err != nil {
				return nil, fmt.Errorf("counting translations: %w", err)
			}
			if n > 0 {
				errs.Add("language", CodeInvalid)
			}
		}

		n, err := q.CountCategoryArticlesOtherLanguage(ctx, in.ID, in.Language)
		if err != nil {
			return nil, fmt.Errorf("counting referencing articles: %w", err)
		}
		if n > 0 {
			errs.Add("language", CodeInvalidLanguage)
		}

		current, err := q.GetCategoryByID(ctx, in.ID)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("loading category: %w", err)
		}
		if err == nil {
			n, err := q.CountDescendantsOtherLanguage(ctx, current.Path, in.Language)
			if err != nil {
				return nil, fmt.Errorf("counting descendants: %w", err)
			}
			if n > 0 {
				errs.Add("language", CodeInvalidLanguage)
			}
		}
	}

	return errs, nil
}
