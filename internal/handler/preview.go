// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"strings"

	"github.com/olegiv/weblog-go/internal/middleware"
	"github.com/olegiv/weblog-go/internal/session"
	"github.com/olegiv/weblog-go/internal/util"
)

// PreviewEnable turns preview mode on for the session and redirects to
// next.
func (h *Handler) PreviewEnable(w http.ResponseWriter, r *http.Request) {
	h.togglePreview(w, r, true)
}

// PreviewDisable turns preview mode off for the session and redirects to
// next.
func (h *Handler) PreviewDisable(w http.ResponseWriter, r *http.Request) {
	h.togglePreview(w, r, false)
}

// togglePreview guards the preview toggle: staff only, and the redirect
// target must be a relative path that is not the toggler itself.
func (h *Handler) togglePreview(w http.ResponseWriter, r *http.Request, on bool) {
	viewer := middleware.GetViewer(r)

	if !viewer.Authenticated {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	if !viewer.Staff {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	next := r.URL.Query().Get("next")
	if next == "" || !util.IsLocalURL(next) {
		h.badRequest(w, "next must be a relative path")
		return
	}
	if strings.HasPrefix(strings.TrimPrefix(next, "/"), "preview/") {
		h.badRequest(w, "next must not point at the preview toggler")
		return
	}

	session.SetPreview(r.Context(), h.sessions, h.cfg.PreviewKeyword, on)
	http.Redirect(w, r, next, http.StatusSeeOther)
}
