// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/weblog-go/internal/middleware"
	"github.com/olegiv/weblog-go/internal/store"
)

// CategoryIndex renders the category listing with the full tree for the
// request language.
func (h *Handler) CategoryIndex(w http.ResponseWriter, r *http.Request) {
	lang := h.language(r)

	total, err := h.queries.CountCategories(r.Context(), lang.Code)
	if err != nil {
		h.serverError(w, "counting categories", err)
		return
	}

	pagination := BuildPagination(pageParam(r), total, h.cfg.CategoryPagination, lang.LocalizeURL("/categories/"))

	categories, err := h.queries.ListCategories(r.Context(), store.ListCategoriesParams{
		Language: lang.Code,
		Limit:    pagination.PerPage,
		Offset:   pagination.Offset(),
	})
	if err != nil {
		h.serverError(w, "listing categories", err)
		return
	}

	tree, err := h.queries.Tree(r.Context(), store.TreeParams{Language: lang.Code})
	if err != nil {
		h.serverError(w, "loading category tree", err)
		return
	}

	data := h.baseData(r, "Categories")
	data["Categories"] = h.categoryViews(categories)
	data["Tree"] = h.categoryViews(tree)
	data["Pagination"] = pagination
	h.render(w, "category_index", data)
}

// CategoryDetail renders a category and the articles visible in it.
func (h *Handler) CategoryDetail(w http.ResponseWriter, r *http.Request) {
	viewer := middleware.GetViewer(r)
	lang := h.language(r)

	category, err := h.queries.GetCategoryBySlug(r.Context(), store.GetCategoryBySlugParams{
		Slug:     chi.URLParam(r, "slug"),
		Language: lang.Code,
	})
	if errors.Is(err, sql.ErrNoRows) {
		h.notFound(w)
		return
	}
	if err != nil {
		h.serverError(w, "loading category", err)
		return
	}

	params := store.ListArticlesParams{
		Filter:     store.FilterForViewer(viewer, lang.Code),
		CategoryID: category.ID,
	}

	total, err := h.queries.CountArticles(r.Context(), params)
	if err != nil {
		h.serverError(w, "counting category articles", err)
		return
	}

	pagination := BuildPagination(pageParam(r), total, h.cfg.ArticlePagination, h.CategoryURL(&category))
	params.Limit = pagination.PerPage
	params.Offset = pagination.Offset()

	articles, err := h.queries.ListArticles(r.Context(), params)
	if err != nil {
		h.serverError(w, "listing category articles", err)
		return
	}

	data := h.baseData(r, category.Title)
	data["Category"] = h.categoryView(&category)
	data["Articles"] = h.articleViews(articles, viewer.Now)
	data["Pagination"] = pagination
	h.render(w, "category_detail", data)
}
