// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package api provides the read-only JSON API: paginated list and detail
// endpoints for articles, categories and authors. List responses use the
// resume serializer tier, detail uses full, embedded relations use
// minimal.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/weblog-go/internal/config"
	"github.com/olegiv/weblog-go/internal/middleware"
	"github.com/olegiv/weblog-go/internal/model"
	"github.com/olegiv/weblog-go/internal/store"
)

// API carries the dependencies of the read API handlers.
type API struct {
	queries *store.Queries
	cfg     *config.Config
	langs   model.Languages
	logger  *slog.Logger
}

// New creates an API.
func New(queries *store.Queries, cfg *config.Config, logger *slog.Logger) *API {
	return &API{
		queries: queries,
		cfg:     cfg,
		langs:   cfg.LanguageSet(),
		logger:  logger,
	}
}

// Routes registers the read API routes on r.
func (a *API) Routes(r chi.Router) {
	r.Get("/article/", a.ListArticles)
	r.Get("/article/{id:[0-9]+}/", a.GetArticle)

	r.Get("/category/", a.ListCategories)
	r.Get("/category/{id:[0-9]+}/", a.GetCategory)

	r.Get("/author/", a.ListAuthors)
	r.Get("/author/{id:[0-9]+}/", a.GetAuthor)
}

// ListResponse is the common paginated list envelope.
type ListResponse struct {
	Count   int64 `json:"count"`
	Limit   int64 `json:"limit"`
	Offset  int64 `json:"offset"`
	Results any   `json:"results"`
}

const (
	defaultLimit = 20
	maxLimit     = 100
)

// limitOffset reads pagination query parameters with bounds applied.
func limitOffset(r *http.Request) (int64, int64) {
	limit := int64(defaultLimit)
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	var offset int64
	if raw := r.URL.Query().Get("offset"); raw != "" {
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil && n > 0 {
			offset = n
		}
	}
	return limit, offset
}

// language resolves the negotiated request language.
func (a *API) language(r *http.Request) model.Language {
	if lang, ok := middleware.GetLanguage(r); ok {
		return lang
	}
	return a.langs.Default()
}

func (a *API) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		a.logger.Error("encoding API response", "error", err.Error())
	}
}

func (a *API) notFound(w http.ResponseWriter) {
	middleware.WriteAPIError(w, http.StatusNotFound, "not_found", "Not found", nil)
}

func (a *API) serverError(w http.ResponseWriter, context string, err error) {
	a.logger.Error(context, "error", err.Error())
	middleware.WriteAPIError(w, http.StatusInternalServerError, "internal_error", "Internal server error", nil)
}

func idParam(r *http.Request) int64 {
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id
}
