// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/olegiv/weblog-go/internal/middleware"
	"github.com/olegiv/weblog-go/internal/model"
	"github.com/olegiv/weblog-go/internal/store"
)

// ListArticles returns the resume-tier article list, filtered by viewer
// visibility and the negotiated language.
func (a *API) ListArticles(w http.ResponseWriter, r *http.Request) {
	viewer := middleware.GetViewer(r)
	lang := a.language(r)

	limit, offset := limitOffset(r)
	params := store.ListArticlesParams{
		Filter: store.FilterForViewer(viewer, lang.Code),
		Limit:  limit,
		Offset: offset,
	}

	total, err := a.queries.CountArticles(r.Context(), params)
	if err != nil {
		a.serverError(w, "counting articles", err)
		return
	}

	articles, err := a.queries.ListArticles(r.Context(), params)
	if err != nil {
		a.serverError(w, "listing articles", err)
		return
	}

	results := make([]ArticleResume, 0, len(articles))
	for i := range articles {
		resume, err := a.articleResume(r, &articles[i], viewer.Now)
		if err != nil {
			a.serverError(w, "serializing article", err)
			return
		}
		results = append(results, resume)
	}

	a.writeJSON(w, http.StatusOK, ListResponse{
		Count: total, Limit: limit, Offset: offset, Results: results,
	})
}

// GetArticle returns the full-tier article detail. Lookup is by id and,
// in language-safe mode, skips the language filter so translations are
// reachable regardless of the negotiated language.
func (a *API) GetArticle(w http.ResponseWriter, r *http.Request) {
	viewer := middleware.GetViewer(r)

	article, err := a.queries.GetArticleByID(r.Context(), idParam(r))
	if errors.Is(err, sql.ErrNoRows) {
		a.notFound(w)
		return
	}
	if err != nil {
		a.serverError(w, "loading article", err)
		return
	}

	if !a.cfg.APIDetailLanguageSafe && article.Language != a.language(r).Code {
		a.notFound(w)
		return
	}
	if !articleVisible(viewer, &article) {
		a.notFound(w)
		return
	}

	full, err := a.articleFull(r, &article, viewer)
	if err != nil {
		a.serverError(w, "serializing article", err)
		return
	}
	a.writeJSON(w, http.StatusOK, full)
}

// articleVisible mirrors the site's detail visibility rule.
func articleVisible(v model.Viewer, art *model.Article) bool {
	if art.Private && !v.Authenticated {
		return false
	}
	if v.PreviewAllowed() {
		return true
	}
	return art.IsPublished(v.Now)
}

func (a *API) articleResume(r *http.Request, art *model.Article, now time.Time) (ArticleResume, error) {
	tags, err := a.queries.ListArticleTags(r.Context(), art.ID)
	if err != nil {
		return ArticleResume{}, err
	}
	tagNames := make([]string, 0, len(tags))
	for _, t := range tags {
		tagNames = append(tagNames, t.Name)
	}

	users, err := a.queries.ListArticleAuthors(r.Context(), art.ID)
	if err != nil {
		return ArticleResume{}, err
	}
	authors := make([]Author, 0, len(users))
	for i := range users {
		authors = append(authors, authorPayload(&users[i]))
	}

	return ArticleResume{
		ArticleMinimal: a.articleMinimal(art, now),
		Lead:           art.Lead,
		Introduction:   art.Introduction,
		Cover:          art.Cover,
		CoverAltText:   art.CoverAltText,
		Tags:           tagNames,
		Authors:        authors,
	}, nil
}

func (a *API) articleFull(r *http.Request, art *model.Article, viewer model.Viewer) (ArticleFull, error) {
	resume, err := a.articleResume(r, art, viewer.Now)
	if err != nil {
		return ArticleFull{}, err
	}

	full := ArticleFull{
		ArticleResume: resume,
		SeoTitle:      art.SeoTitle,
		Content:       art.Content,
		Image:         art.Image,
		ImageAltText:  art.ImageAltText,
		LastUpdate:    art.LastUpdate.Format(time.RFC3339),
		Original:      nullID(art.OriginalID.Int64, art.OriginalID.Valid),
	}
	if art.PublishEnd.Valid {
		end := art.PublishEnd.Time.Format(time.RFC3339)
		full.PublishEnd = &end
	}

	categories, err := a.queries.ListArticleCategories(r.Context(), art.ID)
	if err != nil {
		return ArticleFull{}, err
	}
	full.Categories = make([]CategoryResume, 0, len(categories))
	for i := range categories {
		full.Categories = append(full.Categories, a.categoryResume(&categories[i]))
	}

	relatedFilter := store.FilterForViewer(viewer, art.Language)
	related, err := a.queries.ListArticleRelated(r.Context(), art.ID, &relatedFilter)
	if err != nil {
		return ArticleFull{}, err
	}
	full.Related = a.articleMinimals(related, viewer.Now)

	siblingFilter := store.FilterForViewer(viewer, "")
	siblings, err := a.queries.ListArticleSiblings(r.Context(), *art, &siblingFilter)
	if err != nil {
		return ArticleFull{}, err
	}
	full.Translations = a.articleMinimals(siblings, viewer.Now)

	if art.AlbumID.Valid {
		album, items, err := a.queries.GetArticleAlbum(r.Context(), art.AlbumID)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return ArticleFull{}, err
		}
		if err == nil {
			embedded := &Album{ID: album.ID, Title: album.Title}
			for _, item := range items {
				embedded.Items = append(embedded.Items, AlbumItem{
					ID: item.ID, Title: item.Title, Order: item.Order, Media: item.Media,
				})
			}
			full.Album = embedded
		}
	}

	return full, nil
}
