// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/olegiv/weblog-go/internal/model"
	"github.com/olegiv/weblog-go/internal/store"
	"github.com/olegiv/weblog-go/internal/validate"
)

// CategoryWrite is a pending category create or update. A zero ID
// creates; ParentID is the target placement, and an update landing under
// a different parent moves the whole subtree.
type CategoryWrite struct {
	ID int64
	store.CreateCategoryParams
}

// SaveCategory validates and persists a category write in one
// transaction, so the path allocation and subtree moves run under the
// write lock. A non-empty Errors return means nothing was written.
func (s *Service) SaveCategory(ctx context.Context, w CategoryWrite) (model.Category, validate.Errors, error) {
	var (
		saved     model.Category
		fieldErrs validate.Errors
	)

	err := s.queries.InTx(ctx, s.db, func(q *store.Queries) error {
		var old model.Category
		if w.ID != 0 {
			prev, err := q.GetCategoryByID(ctx, w.ID)
			if err != nil {
				return fmt.Errorf("loading category: %w", err)
			}
			old = prev
		}

		errs, err := validate.Category(ctx, q, validate.CategoryInput{
			ID:         w.ID,
			Language:   w.Language,
			OriginalID: w.OriginalID,
			ParentID:   w.ParentID,
		})
		if err != nil {
			return err
		}
		if len(errs) > 0 {
			fieldErrs = errs
			return errRejected
		}

		if w.ID == 0 {
			saved, err = q.CreateCategory(ctx, w.CreateCategoryParams)
			if err != nil {
				if errs := validate.MapUniqueViolation(err); errs != nil {
					fieldErrs = errs
					return errRejected
				}
				return err
			}
			return nil
		}

		saved, err = q.UpdateCategory(ctx, store.UpdateCategoryParams{
			ID:           w.ID,
			Language:     w.Language,
			OriginalID:   w.OriginalID,
			Title:        w.Title,
			Slug:         w.Slug,
			Lead:         w.Lead,
			Description:  w.Description,
			CoverAltText: w.CoverAltText,
			Cover:        w.Cover,
			Template:     w.Template,
		})
		if err != nil {
			if errs := validate.MapUniqueViolation(err); errs != nil {
				fieldErrs = errs
				return errRejected
			}
			return err
		}

		if !categoryMoved(ctx, q, old, w.ParentID) {
			return nil
		}
		if err := q.MoveCategory(ctx, w.ID, w.ParentID); err != nil {
			if errors.Is(err, store.ErrInvalidMove) {
				fieldErrs = validate.Errors{}
				fieldErrs.Add("ref_node", validate.CodeInvalid)
				return errRejected
			}
			return err
		}
		saved, err = q.GetCategoryByID(ctx, w.ID)
		return err
	})
	if errors.Is(err, errRejected) {
		return model.Category{}, fieldErrs, nil
	}
	if err != nil {
		return model.Category{}, nil, err
	}

	return saved, nil, nil
}

// categoryMoved reports whether the write targets a different parent than
// the node currently has.
func categoryMoved(ctx context.Context, q *store.Queries, old model.Category, parentID sql.NullInt64) bool {
	if !parentID.Valid {
		return !old.IsRoot()
	}
	parent, err := q.GetCategoryByID(ctx, parentID.Int64)
	if err != nil {
		// Validation already resolved the parent inside this transaction.
		return false
	}
	return parent.Path != old.ParentPath()
}

// DeleteCategory removes a node with its subtree and queues the covers of
// every removed node for purging. Deleting a missing node is a no-op.
func (s *Service) DeleteCategory(ctx context.Context, id int64) error {
	node, err := s.queries.GetCategoryByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return err
	}

	subtree, err := s.queries.Tree(ctx, store.TreeParams{
		ParentID: sql.NullInt64{Int64: node.ID, Valid: true},
	})
	if err != nil {
		return err
	}

	if err := s.queries.DeleteCategory(ctx, id); err != nil {
		return err
	}

	if s.purger != nil {
		refs := make([]string, 0, len(subtree))
		for i := range subtree {
			refs = append(refs, subtree[i].Cover)
		}
		return s.purger.OnDelete(ctx, refs)
	}
	return nil
}
