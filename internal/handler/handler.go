// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler provides the HTTP handlers for the public site.
package handler

import (
	"log/slog"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"

	"github.com/olegiv/weblog-go/internal/config"
	"github.com/olegiv/weblog-go/internal/middleware"
	"github.com/olegiv/weblog-go/internal/model"
	"github.com/olegiv/weblog-go/internal/render"
	"github.com/olegiv/weblog-go/internal/store"
)

// Handler carries the dependencies of the public site handlers.
type Handler struct {
	queries  *store.Queries
	sessions *scs.SessionManager
	renderer *render.Renderer
	cfg      *config.Config
	langs    model.Languages
	logger   *slog.Logger
}

// New creates a Handler.
func New(queries *store.Queries, sessions *scs.SessionManager, renderer *render.Renderer, cfg *config.Config, logger *slog.Logger) *Handler {
	return &Handler{
		queries:  queries,
		sessions: sessions,
		renderer: renderer,
		cfg:      cfg,
		langs:    cfg.LanguageSet(),
		logger:   logger,
	}
}

// Routes registers the public site routes on r. The same set is mounted
// under each configured locale prefix by the caller.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.ArticleIndex)
	r.Get("/{year:[0-9]{4}}/{month:[0-9]{2}}/{day:[0-9]{2}}/{slug}/", h.ArticleDetail)

	r.Get("/categories/", h.CategoryIndex)
	r.Get("/categories/{slug}/", h.CategoryDetail)

	r.Get("/authors/", h.AuthorIndex)
	r.Get("/authors/{username}/", h.AuthorDetail)

	r.Get("/tags/", h.TagIndex)
	r.Get("/tags/{slug}/", h.TagDetail)

	r.Get("/preview/enable/", h.PreviewEnable)
	r.Get("/preview/disable/", h.PreviewDisable)
}

// language resolves the request language code, falling back to the
// configured default.
func (h *Handler) language(r *http.Request) model.Language {
	if lang, ok := middleware.GetLanguage(r); ok {
		return lang
	}
	return h.langs.Default()
}

// baseData builds the context keys every template expects.
func (h *Handler) baseData(r *http.Request, title string) map[string]any {
	v := middleware.GetViewer(r)
	lang := h.language(r)

	return map[string]any{
		"Title":              title,
		"Lang":               lang.Code,
		"Year":               v.Now.Year(),
		"CurrentPath":        r.URL.Path,
		"TagIndexEnabled":    h.cfg.EnableTagIndex,
		h.cfg.PreviewVarname: v.PreviewOn,
	}
}
