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

// TagIndex renders the tags in use for the request language. Returns 404
// when the tag index is disabled by configuration.
func (h *Handler) TagIndex(w http.ResponseWriter, r *http.Request) {
	if !h.cfg.EnableTagIndex {
		h.notFound(w)
		return
	}

	lang := h.language(r)

	total, err := h.queries.CountActiveTags(r.Context(), lang.Code)
	if err != nil {
		h.serverError(w, "counting tags", err)
		return
	}

	pagination := BuildPagination(pageParam(r), total, h.cfg.TagPagination, lang.LocalizeURL("/tags/"))

	tags, err := h.queries.ListActiveTags(r.Context(), store.ListActiveTagsParams{
		Language: lang.Code,
		Limit:    pagination.PerPage,
		Offset:   pagination.Offset(),
	})
	if err != nil {
		h.serverError(w, "listing tags", err)
		return
	}

	views := make([]TagView, 0, len(tags))
	for i := range tags {
		views = append(views, tagView(&tags[i]))
	}

	data := h.baseData(r, "Tags")
	data["Tags"] = views
	data["Pagination"] = pagination
	h.render(w, "tag_index", data)
}

// TagDetail renders a tag and the visible articles carrying it. Detail
// pages stay reachable even when the index is disabled.
func (h *Handler) TagDetail(w http.ResponseWriter, r *http.Request) {
	viewer := middleware.GetViewer(r)
	lang := h.language(r)

	tag, err := h.queries.GetTagBySlug(r.Context(), chi.URLParam(r, "slug"))
	if errors.Is(err, sql.ErrNoRows) {
		h.notFound(w)
		return
	}
	if err != nil {
		h.serverError(w, "loading tag", err)
		return
	}

	params := store.ListArticlesParams{
		Filter:  store.FilterForViewer(viewer, lang.Code),
		TagSlug: tag.Slug,
	}

	total, err := h.queries.CountArticles(r.Context(), params)
	if err != nil {
		h.serverError(w, "counting tag articles", err)
		return
	}

	pagination := BuildPagination(pageParam(r), total, h.cfg.ArticlePagination,
		lang.LocalizeURL("/tags/"+tag.Slug+"/"))
	params.Limit = pagination.PerPage
	params.Offset = pagination.Offset()

	articles, err := h.queries.ListArticles(r.Context(), params)
	if err != nil {
		h.serverError(w, "listing tag articles", err)
		return
	}

	data := h.baseData(r, tag.Name)
	data["Tag"] = tag
	data["Articles"] = h.articleViews(articles, viewer.Now)
	data["Pagination"] = pagination
	h.render(w, "tag_detail", data)
}
