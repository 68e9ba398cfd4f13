// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/weblog-go/internal/cache"
	"github.com/olegiv/weblog-go/internal/config"
	"github.com/olegiv/weblog-go/internal/model"
	"github.com/olegiv/weblog-go/internal/store"
)

// Handler serves the per-section sitemaps. Generated XML is cached by
// section and host, so a write to the content invalidates lazily via TTL.
type Handler struct {
	queries *store.Queries
	cfg     *config.Config
	langs   model.Languages
	cache   cache.Cacher
	logger  *slog.Logger
}

// NewHandler creates a sitemap handler.
func NewHandler(queries *store.Queries, cfg *config.Config, cacher cache.Cacher, logger *slog.Logger) *Handler {
	return &Handler{
		queries: queries,
		cfg:     cfg,
		langs:   cfg.LanguageSet(),
		cache:   cacher,
		logger:  logger,
	}
}

// Routes registers the sitemap routes on r.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/sitemap-article.xml", h.serve("article", h.articleEntries))
	r.Get("/sitemap-category.xml", h.serve("category", h.categoryEntries))
	r.Get("/sitemap-author.xml", h.serve("author", h.authorEntries))
	r.Get("/sitemap-tag.xml", h.serve("tag", h.tagEntries))
}

type fillFunc func(ctx context.Context, b *Builder, opts config.SitemapOptions) error

// serve wraps a section filler with caching and XML serialization. The
// cache key carries the host because locations embed it.
func (h *Handler) serve(section string, fill fillFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		key := "sitemap:" + section + ":" + r.Host

		if data, err := h.cache.Get(ctx, key); err == nil {
			writeXML(w, data)
			return
		}

		opts := h.cfg.SitemapOptionsFor(section)
		b := NewBuilder(opts.Protocol, r.Host)
		if err := fill(ctx, b, opts); err != nil {
			h.logger.Error("building sitemap", "section", section, "error", err.Error())
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		b.Truncate(opts.Limit)

		data, err := b.Build()
		if err != nil {
			h.logger.Error("serializing sitemap", "section", section, "error", err.Error())
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		if err := h.cache.Set(ctx, key, data, 0); err != nil {
			h.logger.Warn("caching sitemap", "section", section, "error", err.Error())
		}
		writeXML(w, data)
	}
}

func writeXML(w http.ResponseWriter, data []byte) {
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// articleEntries lists publicly published articles. In flat mode every
// entry appears individually; in translated mode only originals appear,
// each carrying alternate links for its published translations.
func (h *Handler) articleEntries(ctx context.Context, b *Builder, opts config.SitemapOptions) error {
	private := false
	articles, err := h.queries.ListPublishedArticles(ctx, store.ListPublishedArticlesParams{
		Target:  time.Now(),
		Private: &private,
	})
	if err != nil {
		return err
	}

	freq := ChangeFreq(opts.Changefreq)

	if !opts.Translations {
		for i := range articles {
			a := &articles[i]
			b.AddPath(h.articlePath(a), a.LastUpdate, freq, articlePriority(a, opts))
		}
		return nil
	}

	translations := make(map[int64][]model.Article)
	for i := range articles {
		if articles[i].OriginalID.Valid {
			key := articles[i].OriginalID.Int64
			translations[key] = append(translations[key], articles[i])
		}
	}

	for i := range articles {
		a := &articles[i]
		if !a.IsOriginal() {
			continue
		}
		u := URL{
			Loc:        b.Loc(h.articlePath(a)),
			LastMod:    a.LastUpdate.UTC().Format(time.RFC3339),
			ChangeFreq: freq,
			Priority:   FormatPriority(articlePriority(a, opts)),
		}
		for _, t := range translations[a.ID] {
			u.Alternates = append(u.Alternates, Alternate{
				Rel:      "alternate",
				Hreflang: t.Language,
				Href:     b.Loc(h.articlePath(&t)),
			})
		}
		b.Add(u)
	}
	return nil
}

// categoryEntries lists the categories of every configured language. The
// translated mode keeps originals only, with alternates for their
// translations.
func (h *Handler) categoryEntries(ctx context.Context, b *Builder, opts config.SitemapOptions) error {
	freq := ChangeFreq(opts.Changefreq)

	for _, lang := range h.langs {
		categories, err := h.queries.ListCategories(ctx, store.ListCategoriesParams{
			Language: lang.Code,
		})
		if err != nil {
			return err
		}

		for i := range categories {
			c := &categories[i]

			if !opts.Translations {
				b.AddPath(h.categoryPath(c), c.Modified, freq, opts.Priority)
				continue
			}
			if !c.IsOriginal() {
				continue
			}

			u := URL{
				Loc:        b.Loc(h.categoryPath(c)),
				LastMod:    c.Modified.UTC().Format(time.RFC3339),
				ChangeFreq: freq,
				Priority:   FormatPriority(opts.Priority),
			}
			siblings, err := h.queries.ListCategoryTranslations(ctx, c.ID)
			if err != nil {
				return err
			}
			for j := range siblings {
				u.Alternates = append(u.Alternates, Alternate{
					Rel:      "alternate",
					Hreflang: siblings[j].Language,
					Href:     b.Loc(h.categoryPath(&siblings[j])),
				})
			}
			b.Add(u)
		}
	}
	return nil
}

// authorEntries lists the union over languages of the active author sets,
// one entry per (author, language), lastmod from the latest article update.
func (h *Handler) authorEntries(ctx context.Context, b *Builder, opts config.SitemapOptions) error {
	authors, err := h.queries.ListAuthorAnnotations(ctx, time.Now())
	if err != nil {
		return err
	}
	for i := range authors {
		a := &authors[i]
		path := h.localize("/authors/"+a.Username+"/", a.ArticleLanguage)
		b.AddPath(path, a.ArticleLatestUpdate, ChangeFreq(opts.Changefreq), opts.Priority)
	}
	return nil
}

// tagEntries lists the union over languages of the active tag sets.
func (h *Handler) tagEntries(ctx context.Context, b *Builder, opts config.SitemapOptions) error {
	tags, err := h.queries.ListTagAnnotations(ctx, time.Now())
	if err != nil {
		return err
	}
	for i := range tags {
		t := &tags[i]
		path := h.localize("/tags/"+t.Slug+"/", t.ArticleLanguage)
		b.AddPath(path, t.ArticleLatestUpdate, ChangeFreq(opts.Changefreq), opts.Priority)
	}
	return nil
}

func (h *Handler) articlePath(a *model.Article) string {
	path := "/" + a.PublishDate.Format("2006/01/02") + "/" + a.Slug + "/"
	return h.localize(path, a.Language)
}

func (h *Handler) categoryPath(c *model.Category) string {
	return h.localize("/categories/"+c.Slug+"/", c.Language)
}

func (h *Handler) localize(path, language string) string {
	if lang, ok := h.langs.ByCode(language); ok {
		return lang.LocalizeURL(path)
	}
	return path
}

// articlePriority resolves the entry priority: pinned articles win over
// featured ones, both over the section default. Zero overrides fall back.
func articlePriority(a *model.Article, opts config.SitemapOptions) float64 {
	if a.Pinned && opts.PinnedPriority > 0 {
		return opts.PinnedPriority
	}
	if a.Featured && opts.FeaturedPriority > 0 {
		return opts.FeaturedPriority
	}
	return opts.Priority
}
