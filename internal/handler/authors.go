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

// AuthorIndex renders the authors with at least one visible article.
func (h *Handler) AuthorIndex(w http.ResponseWriter, r *http.Request) {
	viewer := middleware.GetViewer(r)
	lang := h.language(r)

	filter := store.FilterForViewer(viewer, lang.Code)

	total, err := h.queries.CountActiveAuthors(r.Context(), filter)
	if err != nil {
		h.serverError(w, "counting authors", err)
		return
	}

	pagination := BuildPagination(pageParam(r), total, h.cfg.AuthorPagination, lang.LocalizeURL("/authors/"))

	authors, err := h.queries.ListActiveAuthors(r.Context(), store.ListActiveAuthorsParams{
		Filter: filter,
		Limit:  pagination.PerPage,
		Offset: pagination.Offset(),
	})
	if err != nil {
		h.serverError(w, "listing authors", err)
		return
	}

	data := h.baseData(r, "Authors")
	data["Authors"] = authorViews(authors)
	data["Pagination"] = pagination
	h.render(w, "author_index", data)
}

// AuthorDetail renders an author and their visible articles.
func (h *Handler) AuthorDetail(w http.ResponseWriter, r *http.Request) {
	viewer := middleware.GetViewer(r)
	lang := h.language(r)

	author, err := h.queries.GetUserByUsername(r.Context(), chi.URLParam(r, "username"))
	if errors.Is(err, sql.ErrNoRows) {
		h.notFound(w)
		return
	}
	if err != nil {
		h.serverError(w, "loading author", err)
		return
	}

	params := store.ListArticlesParams{
		Filter:   store.FilterForViewer(viewer, lang.Code),
		AuthorID: author.ID,
	}

	total, err := h.queries.CountArticles(r.Context(), params)
	if err != nil {
		h.serverError(w, "counting author articles", err)
		return
	}

	pagination := BuildPagination(pageParam(r), total, h.cfg.ArticlePagination,
		lang.LocalizeURL("/authors/"+author.Username+"/"))
	params.Limit = pagination.PerPage
	params.Offset = pagination.Offset()

	articles, err := h.queries.ListArticles(r.Context(), params)
	if err != nil {
		h.serverError(w, "listing author articles", err)
		return
	}

	data := h.baseData(r, author.FullName())
	data["Author"] = authorView(&author)
	data["Articles"] = h.articleViews(articles, viewer.Now)
	data["Pagination"] = pagination
	h.render(w, "author_detail", data)
}
