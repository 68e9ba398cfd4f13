// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/weblog-go/internal/middleware"
	"github.com/olegiv/weblog-go/internal/model"
	"github.com/olegiv/weblog-go/internal/store"
)

// ArticleIndex renders the paginated article listing, pinned entries
// first.
func (h *Handler) ArticleIndex(w http.ResponseWriter, r *http.Request) {
	viewer := middleware.GetViewer(r)
	lang := h.language(r)

	filter := store.FilterForViewer(viewer, lang.Code)
	params := store.ListArticlesParams{Filter: filter}

	total, err := h.queries.CountArticles(r.Context(), params)
	if err != nil {
		h.serverError(w, "counting articles", err)
		return
	}

	pagination := BuildPagination(pageParam(r), total, h.cfg.ArticlePagination, lang.LocalizeURL("/"))
	params.Limit = pagination.PerPage
	params.Offset = pagination.Offset()

	articles, err := h.queries.ListArticles(r.Context(), params)
	if err != nil {
		h.serverError(w, "listing articles", err)
		return
	}

	data := h.baseData(r, "Articles")
	data["Articles"] = h.articleViews(articles, viewer.Now)
	data["Pagination"] = pagination
	h.render(w, "article_index", data)
}

// articleVisible decides detail visibility: staff in preview mode see
// everything, private entries need an authenticated viewer, everything
// else follows the publication predicate.
func articleVisible(v model.Viewer, a *model.Article) bool {
	if a.Private && !v.Authenticated {
		return false
	}
	if v.PreviewAllowed() {
		return true
	}
	return a.IsPublished(v.Now)
}

// ArticleDetail renders a single article. Missing and invisible articles
// are indistinguishable.
func (h *Handler) ArticleDetail(w http.ResponseWriter, r *http.Request) {
	viewer := middleware.GetViewer(r)
	lang := h.language(r)

	date, err := time.Parse("2006/01/02", fmt.Sprintf("%s/%s/%s",
		chi.URLParam(r, "year"), chi.URLParam(r, "month"), chi.URLParam(r, "day")))
	if err != nil {
		h.notFound(w)
		return
	}

	article, err := h.queries.GetArticleByDateSlug(r.Context(), store.GetArticleByDateSlugParams{
		PublishDate: date,
		Slug:        chi.URLParam(r, "slug"),
		Language:    lang.Code,
	})
	if errors.Is(err, sql.ErrNoRows) {
		h.notFound(w)
		return
	}
	if err != nil {
		h.serverError(w, "loading article", err)
		return
	}

	if !articleVisible(viewer, &article) {
		h.notFound(w)
		return
	}

	data := h.baseData(r, article.Title)
	data["Article"] = h.articleView(&article, viewer.Now)

	authors, err := h.queries.ListArticleAuthors(r.Context(), article.ID)
	if err != nil {
		h.serverError(w, "loading article authors", err)
		return
	}
	data["Authors"] = authorViews(authors)

	categories, err := h.queries.ListArticleCategories(r.Context(), article.ID)
	if err != nil {
		h.serverError(w, "loading article categories", err)
		return
	}
	data["Categories"] = h.categoryViews(categories)

	tags, err := h.queries.ListArticleTags(r.Context(), article.ID)
	if err != nil {
		h.serverError(w, "loading article tags", err)
		return
	}
	data["Tags"] = tags

	// Related and translations stay viewer-filtered so a draft translation
	// never leaks through a published article.
	relatedFilter := store.FilterForViewer(viewer, article.Language)
	related, err := h.queries.ListArticleRelated(r.Context(), article.ID, &relatedFilter)
	if err != nil {
		h.serverError(w, "loading related articles", err)
		return
	}
	data["Related"] = h.articleViews(related, viewer.Now)

	siblingFilter := store.FilterForViewer(viewer, "")
	siblings, err := h.queries.ListArticleSiblings(r.Context(), article, &siblingFilter)
	if err != nil {
		h.serverError(w, "loading article translations", err)
		return
	}
	data["Translations"] = h.articleViews(siblings, viewer.Now)

	if article.AlbumID.Valid {
		album, items, err := h.queries.GetArticleAlbum(r.Context(), article.AlbumID)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			h.serverError(w, "loading article album", err)
			return
		}
		if err == nil {
			data["Album"] = album
			data["AlbumItems"] = items
		}
	}

	h.render(w, "article_detail", data)
}
