// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"fmt"
	"time"

	"github.com/olegiv/weblog-go/internal/model"
)

// ArticleMinimal is the lightest article payload, used for embedded
// relations.
type ArticleMinimal struct {
	ID              int64    `json:"id"`
	URL             string   `json:"url"`
	Title           string   `json:"title"`
	Language        string   `json:"language"`
	PublishDatetime string   `json:"publish_datetime"`
	States          []string `json:"states"`
}

// ArticleResume is the list-tier article payload.
type ArticleResume struct {
	ArticleMinimal
	Lead         string   `json:"lead"`
	Introduction string   `json:"introduction"`
	Cover        string   `json:"cover"`
	CoverAltText string   `json:"cover_alt_text"`
	Tags         []string `json:"tags"`
	Authors      []Author `json:"authors"`
}

// ArticleFull is the detail-tier article payload with embedded relations.
type ArticleFull struct {
	ArticleResume
	SeoTitle     string           `json:"seo_title"`
	Content      string           `json:"content"`
	Image        string           `json:"image"`
	ImageAltText string           `json:"image_alt_text"`
	LastUpdate   string           `json:"last_update"`
	PublishEnd   *string          `json:"publish_end"`
	Original     *int64           `json:"original"`
	Categories   []CategoryResume `json:"categories"`
	Related      []ArticleMinimal `json:"related"`
	Translations []ArticleMinimal `json:"translations"`
	Album        *Album           `json:"album"`
}

// CategoryMinimal is the embedded-tier category payload.
type CategoryMinimal struct {
	ID       int64  `json:"id"`
	URL      string `json:"url"`
	Title    string `json:"title"`
	Language string `json:"language"`
	Slug     string `json:"slug"`
}

// CategoryResume is the list-tier category payload.
type CategoryResume struct {
	CategoryMinimal
	Lead  string `json:"lead"`
	Cover string `json:"cover"`
	Depth int    `json:"depth"`
}

// CategoryFull is the detail-tier category payload.
type CategoryFull struct {
	CategoryResume
	Description  string            `json:"description"`
	Original     *int64            `json:"original"`
	Translations []CategoryMinimal `json:"translations"`
	Children     []CategoryMinimal `json:"children"`
}

// Author is the author payload; authors have a single tier beyond the
// embedded name.
type Author struct {
	ID       int64  `json:"id"`
	URL      string `json:"url"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

// Album is the embedded album payload on article detail.
type Album struct {
	ID    int64       `json:"id"`
	Title string      `json:"title"`
	Items []AlbumItem `json:"items"`
}

// AlbumItem is an album entry, in display order.
type AlbumItem struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Order int    `json:"order"`
	Media string `json:"media"`
}

func (a *API) articleURL(art *model.Article) string {
	path := fmt.Sprintf("/%s/%s/", art.PublishDate.Format("2006/01/02"), art.Slug)
	if lang, ok := a.langs.ByCode(art.Language); ok {
		return lang.LocalizeURL(path)
	}
	return path
}

func (a *API) categoryURL(c *model.Category) string {
	path := "/categories/" + c.Slug + "/"
	if lang, ok := a.langs.ByCode(c.Language); ok {
		return lang.LocalizeURL(path)
	}
	return path
}

func (a *API) articleMinimal(art *model.Article, now time.Time) ArticleMinimal {
	return ArticleMinimal{
		ID:              art.ID,
		URL:             a.articleURL(art),
		Title:           art.Title,
		Language:        art.Language,
		PublishDatetime: art.PublishDatetime().Format(time.RFC3339),
		States:          model.ComputeStates(art, &now, a.cfg.StateNames()),
	}
}

func (a *API) articleMinimals(articles []model.Article, now time.Time) []ArticleMinimal {
	out := make([]ArticleMinimal, 0, len(articles))
	for i := range articles {
		out = append(out, a.articleMinimal(&articles[i], now))
	}
	return out
}

func (a *API) categoryMinimal(c *model.Category) CategoryMinimal {
	return CategoryMinimal{
		ID:       c.ID,
		URL:      a.categoryURL(c),
		Title:    c.Title,
		Language: c.Language,
		Slug:     c.Slug,
	}
}

func (a *API) categoryResume(c *model.Category) CategoryResume {
	return CategoryResume{
		CategoryMinimal: a.categoryMinimal(c),
		Lead:            c.Lead,
		Cover:           c.Cover,
		Depth:           c.Depth,
	}
}

func authorPayload(u *model.User) Author {
	return Author{
		ID:       u.ID,
		URL:      "/authors/" + u.Username + "/",
		Username: u.Username,
		Name:     u.FullName(),
	}
}

func nullID(id int64, valid bool) *int64 {
	if !valid {
		return nil
	}
	return &id
}
