// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import "net/http"

// notFound hides missing and invisible entities behind the same response,
// so existence of drafts and private entries does not leak.
func (h *Handler) notFound(w http.ResponseWriter) {
	http.Error(w, "Not Found", http.StatusNotFound)
}

func (h *Handler) badRequest(w http.ResponseWriter, msg string) {
	http.Error(w, msg, http.StatusBadRequest)
}

func (h *Handler) serverError(w http.ResponseWriter, context string, err error) {
	h.logger.Error(context, "error", err.Error())
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

// render writes a template, logging and masking any failure.
func (h *Handler) render(w http.ResponseWriter, name string, data map[string]any) {
	if err := h.renderer.Render(w, http.StatusOK, name, data); err != nil {
		h.serverError(w, "rendering "+name, err)
	}
}
