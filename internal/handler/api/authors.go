// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/olegiv/weblog-go/internal/middleware"
	"github.com/olegiv/weblog-go/internal/store"
)

// ListAuthors returns the authors with at least one article visible to the
// viewer in the negotiated language.
func (a *API) ListAuthors(w http.ResponseWriter, r *http.Request) {
	viewer := middleware.GetViewer(r)
	lang := a.language(r)
	limit, offset := limitOffset(r)

	filter := store.FilterForViewer(viewer, lang.Code)

	total, err := a.queries.CountActiveAuthors(r.Context(), filter)
	if err != nil {
		a.serverError(w, "counting authors", err)
		return
	}

	users, err := a.queries.ListActiveAuthors(r.Context(), store.ListActiveAuthorsParams{
		Filter: filter,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		a.serverError(w, "listing authors", err)
		return
	}

	results := make([]Author, 0, len(users))
	for i := range users {
		results = append(results, authorPayload(&users[i]))
	}

	a.writeJSON(w, http.StatusOK, ListResponse{
		Count: total, Limit: limit, Offset: offset, Results: results,
	})
}

// GetAuthor returns a single author. Authors without visible articles are
// hidden like missing ones.
func (a *API) GetAuthor(w http.ResponseWriter, r *http.Request) {
	viewer := middleware.GetViewer(r)

	user, err := a.queries.GetUserByID(r.Context(), idParam(r))
	if errors.Is(err, sql.ErrNoRows) {
		a.notFound(w)
		return
	}
	if err != nil {
		a.serverError(w, "loading author", err)
		return
	}

	// Active check: the author must have at least one visible article in
	// any language.
	filter := store.FilterForViewer(viewer, "")
	count, err := a.queries.CountArticles(r.Context(), store.ListArticlesParams{
		Filter:   filter,
		AuthorID: user.ID,
	})
	if err != nil {
		a.serverError(w, "counting author articles", err)
		return
	}
	if count == 0 {
		a.notFound(w)
		return
	}

	a.writeJSON(w, http.StatusOK, authorPayload(&user))
}
