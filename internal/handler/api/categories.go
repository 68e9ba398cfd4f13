// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/olegiv/weblog-go/internal/store"
)

// ListCategories returns the resume-tier category list for the negotiated
// language, ordered by title.
func (a *API) ListCategories(w http.ResponseWriter, r *http.Request) {
	lang := a.language(r)
	limit, offset := limitOffset(r)

	total, err := a.queries.CountCategories(r.Context(), lang.Code)
	if err != nil {
		a.serverError(w, "counting categories", err)
		return
	}

	categories, err := a.queries.ListCategories(r.Context(), store.ListCategoriesParams{
		Language: lang.Code,
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		a.serverError(w, "listing categories", err)
		return
	}

	results := make([]CategoryResume, 0, len(categories))
	for i := range categories {
		results = append(results, a.categoryResume(&categories[i]))
	}

	a.writeJSON(w, http.StatusOK, ListResponse{
		Count: total, Limit: limit, Offset: offset, Results: results,
	})
}

// GetCategory returns the full-tier category detail with its translations
// and direct children embedded. Lookup is by id and, in language-safe
// mode, skips the language filter.
func (a *API) GetCategory(w http.ResponseWriter, r *http.Request) {
	category, err := a.queries.GetCategoryByID(r.Context(), idParam(r))
	if errors.Is(err, sql.ErrNoRows) {
		a.notFound(w)
		return
	}
	if err != nil {
		a.serverError(w, "loading category", err)
		return
	}

	if !a.cfg.APIDetailLanguageSafe && category.Language != a.language(r).Code {
		a.notFound(w)
		return
	}

	full := CategoryFull{
		CategoryResume: a.categoryResume(&category),
		Description:    category.Description,
		Original:       nullID(category.OriginalID.Int64, category.OriginalID.Valid),
	}

	siblings, err := a.queries.ListCategorySiblings(r.Context(), category)
	if err != nil {
		a.serverError(w, "loading category translations", err)
		return
	}
	full.Translations = make([]CategoryMinimal, 0, len(siblings))
	for i := range siblings {
		full.Translations = append(full.Translations, a.categoryMinimal(&siblings[i]))
	}

	children, err := a.queries.Tree(r.Context(), store.TreeParams{
		ParentID: sql.NullInt64{Int64: category.ID, Valid: true},
		Language: category.Language,
	})
	if err != nil {
		a.serverError(w, "loading category children", err)
		return
	}
	full.Children = make([]CategoryMinimal, 0, len(children))
	for i := range children {
		if children[i].Depth == category.Depth+1 {
			full.Children = append(full.Children, a.categoryMinimal(&children[i]))
		}
	}

	a.writeJSON(w, http.StatusOK, full)
}
