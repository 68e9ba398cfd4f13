// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"fmt"
	"html/template"
	"time"

	"github.com/olegiv/weblog-go/internal/model"
)

// ArticleView is an article with computed fields for template rendering.
type ArticleView struct {
	ID              int64
	Language        string
	Title           string
	Slug            string
	URL             string
	PublishDate     string
	PublishDatetime string
	States          []string
	Lead            string
	Introduction    template.HTML
	Content         template.HTML
	Cover           string
	CoverAltText    string
	Image           string
	ImageAltText    string
}

// CategoryView is a category for template rendering.
type CategoryView struct {
	ID          int64
	Language    string
	Title       string
	Slug        string
	Lead        string
	Description template.HTML
	Depth       int
	URL         string
}

// AuthorView is an author for template rendering.
type AuthorView struct {
	ID       int64
	Username string
	Name     string
	URL      string
}

// TagView is a tag for template rendering.
type TagView struct {
	ID           int64
	Name         string
	Slug         string
	ArticleCount int64
	URL          string
}

// ArticleURL builds the canonical detail path of an article, localized
// with its language's URL prefix.
func (h *Handler) ArticleURL(a *model.Article) string {
	path := fmt.Sprintf("/%s/%s/", a.PublishDate.Format("2006/01/02"), a.Slug)
	if lang, ok := h.langs.ByCode(a.Language); ok {
		return lang.LocalizeURL(path)
	}
	return path
}

// CategoryURL builds the detail path of a category.
func (h *Handler) CategoryURL(c *model.Category) string {
	path := "/categories/" + c.Slug + "/"
	if lang, ok := h.langs.ByCode(c.Language); ok {
		return lang.LocalizeURL(path)
	}
	return path
}

func (h *Handler) articleView(a *model.Article, now time.Time) ArticleView {
	return ArticleView{
		ID:              a.ID,
		Language:        a.Language,
		Title:           a.Title,
		Slug:            a.Slug,
		URL:             h.ArticleURL(a),
		PublishDate:     a.PublishDate.Format("2006-01-02"),
		PublishDatetime: a.PublishDatetime().Format(time.RFC3339),
		States:          model.ComputeStates(a, &now, h.cfg.StateNames()),
		Lead:            a.Lead,
		Introduction:    template.HTML(a.Introduction),
		Content:         template.HTML(a.Content),
		Cover:           a.Cover,
		CoverAltText:    a.CoverAltText,
		Image:           a.Image,
		ImageAltText:    a.ImageAltText,
	}
}

func (h *Handler) articleViews(articles []model.Article, now time.Time) []ArticleView {
	views := make([]ArticleView, 0, len(articles))
	for i := range articles {
		views = append(views, h.articleView(&articles[i], now))
	}
	return views
}

func (h *Handler) categoryView(c *model.Category) CategoryView {
	return CategoryView{
		ID:          c.ID,
		Language:    c.Language,
		Title:       c.Title,
		Slug:        c.Slug,
		Lead:        c.Lead,
		Description: template.HTML(c.Description),
		Depth:       c.Depth,
		URL:         h.CategoryURL(c),
	}
}

func (h *Handler) categoryViews(categories []model.Category) []CategoryView {
	views := make([]CategoryView, 0, len(categories))
	for i := range categories {
		views = append(views, h.categoryView(&categories[i]))
	}
	return views
}

func authorView(u *model.User) AuthorView {
	return AuthorView{
		ID:       u.ID,
		Username: u.Username,
		Name:     u.FullName(),
		URL:      "/authors/" + u.Username + "/",
	}
}

func authorViews(users []model.User) []AuthorView {
	views := make([]AuthorView, 0, len(users))
	for i := range users {
		views = append(views, authorView(&users[i]))
	}
	return views
}

func tagView(t *model.ActiveTag) TagView {
	return TagView{
		ID:           t.ID,
		Name:         t.Name,
		Slug:         t.Slug,
		ArticleCount: t.ArticleCount,
		URL:          "/tags/" + t.Slug + "/",
	}
}
