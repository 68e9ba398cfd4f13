// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"fmt"
	"net/http"
	"strconv"
)

// Pagination holds pagination data for templates.
type Pagination struct {
	CurrentPage int64
	TotalPages  int64
	TotalItems  int64
	PerPage     int64
	HasPrev     bool
	HasNext     bool
	BaseURL     string
}

// BuildPagination computes page links for a listing. perPage of 0 means
// pagination is disabled: everything on one page.
func BuildPagination(currentPage, totalItems, perPage int64, baseURL string) Pagination {
	if perPage <= 0 {
		return Pagination{CurrentPage: 1, TotalPages: 1, TotalItems: totalItems, BaseURL: baseURL}
	}

	totalPages := (totalItems + perPage - 1) / perPage
	if totalPages < 1 {
		totalPages = 1
	}
	if currentPage < 1 {
		currentPage = 1
	}
	if currentPage > totalPages {
		currentPage = totalPages
	}

	return Pagination{
		CurrentPage: currentPage,
		TotalPages:  totalPages,
		TotalItems:  totalItems,
		PerPage:     perPage,
		HasPrev:     currentPage > 1,
		HasNext:     currentPage < totalPages,
		BaseURL:     baseURL,
	}
}

// PrevURL returns the URL for the previous page.
func (p Pagination) PrevURL() string {
	return fmt.Sprintf("%s?page=%d", p.BaseURL, p.CurrentPage-1)
}

// NextURL returns the URL for the next page.
func (p Pagination) NextURL() string {
	return fmt.Sprintf("%s?page=%d", p.BaseURL, p.CurrentPage+1)
}

// ShouldShow returns true if pagination should be displayed.
func (p Pagination) ShouldShow() bool {
	return p.TotalPages > 1
}

// Offset returns the query offset for the current page.
func (p Pagination) Offset() int64 {
	if p.PerPage <= 0 {
		return 0
	}
	return (p.CurrentPage - 1) * p.PerPage
}

// pageParam reads the ?page= query parameter, defaulting to 1.
func pageParam(r *http.Request) int64 {
	raw := r.URL.Query().Get("page")
	if raw == "" {
		return 1
	}
	page, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || page < 1 {
		return 1
	}
	return page
}
