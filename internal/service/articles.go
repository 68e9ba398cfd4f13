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

// ArticleWrite is a pending article create or update. A zero ID creates;
// the relation slices replace the current sets.
type ArticleWrite struct {
	ID int64
	store.CreateArticleParams
	AuthorIDs   []int64
	CategoryIDs []int64
	TagIDs      []int64
	RelatedIDs  []int64
}

// SaveArticle validates and persists an article write in one transaction.
// A non-empty Errors return means the input was rejected and nothing was
// written; uniqueness races surface there too.
func (s *Service) SaveArticle(ctx context.Context, w ArticleWrite) (model.Article, validate.Errors, error) {
	var (
		saved     model.Article
		old       model.Article
		fieldErrs validate.Errors
	)

	err := s.queries.InTx(ctx, s.db, func(q *store.Queries) error {
		if w.ID != 0 {
			prev, err := q.GetArticleByID(ctx, w.ID)
			if err != nil {
				return fmt.Errorf("loading article: %w", err)
			}
			old = prev
		}

		errs, err := validate.Article(ctx, q, validate.ArticleInput{
			ID:          w.ID,
			Language:    w.Language,
			OriginalID:  w.OriginalID,
			RelatedIDs:  w.RelatedIDs,
			CategoryIDs: w.CategoryIDs,
		})
		if err != nil {
			return err
		}
		if len(errs) > 0 {
			fieldErrs = errs
			return errRejected
		}

		if w.ID == 0 {
			saved, err = q.CreateArticle(ctx, w.CreateArticleParams)
		} else {
			saved, err = q.UpdateArticle(ctx, store.UpdateArticleParams{
				ID:                  w.ID,
				CreateArticleParams: w.CreateArticleParams,
			})
		}
		if err != nil {
			if errs := validate.MapUniqueViolation(err); errs != nil {
				fieldErrs = errs
				return errRejected
			}
			return err
		}

		if err := q.SetArticleAuthors(ctx, saved.ID, w.AuthorIDs); err != nil {
			return err
		}
		if err := q.SetArticleCategories(ctx, saved.ID, w.CategoryIDs); err != nil {
			return err
		}
		if err := q.SetArticleTags(ctx, saved.ID, w.TagIDs); err != nil {
			return err
		}
		return q.SetArticleRelated(ctx, saved.ID, w.RelatedIDs)
	})
	if errors.Is(err, errRejected) {
		return model.Article{}, fieldErrs, nil
	}
	if err != nil {
		return model.Article{}, nil, err
	}

	if s.purger != nil && w.ID != 0 {
		if err := s.purger.OnChange(ctx, articleMediaRefs(&old), articleMediaRefs(&saved)); err != nil {
			return saved, nil, fmt.Errorf("enqueueing dropped media: %w", err)
		}
	}
	return saved, nil, nil
}

// DeleteArticle removes an article and queues its media references for
// purging. Deleting a missing article is a no-op.
func (s *Service) DeleteArticle(ctx context.Context, id int64) error {
	article, err := s.queries.GetArticleByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return err
	}

	if err := s.queries.DeleteArticle(ctx, id); err != nil {
		return err
	}

	if s.purger != nil {
		return s.purger.OnDelete(ctx, articleMediaRefs(&article))
	}
	return nil
}

func articleMediaRefs(a *model.Article) []string {
	return []string{a.Cover, a.Image}
}
