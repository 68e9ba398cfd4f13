// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import "strings"

// UniqueViolation describes a UNIQUE constraint failure in a form the
// validation layer can map to field errors.
type UniqueViolation struct {
	Columns []string // qualified, e.g. "articles.slug"
	wrapped error
}

func (v *UniqueViolation) Error() string { return v.wrapped.Error() }
func (v *UniqueViolation) Unwrap() error { return v.wrapped }

// HasColumn reports whether the violated constraint covers the qualified
// column.
func (v *UniqueViolation) HasColumn(qualified string) bool {
	for _, c := range v.Columns {
		if c == qualified {
			return true
		}
	}
	return false
}

// AsUniqueViolation inspects a write error for a UNIQUE constraint failure.
// The driver reports them as plain text listing the covered columns
// ("UNIQUE constraint failed: articles.slug, articles.language").
func AsUniqueViolation(err error) (*UniqueViolation, bool) {
	if err == nil {
		return nil, false
	}
	msg := err.Error()
	const marker = "UNIQUE constraint failed: "
	idx := strings.Index(msg, marker)
	if idx < 0 {
		return nil, false
	}

	list := msg[idx+len(marker):]
	if end := strings.IndexAny(list, "(\n"); end >= 0 {
		list = list[:end]
	}

	var columns []string
	for _, c := range strings.Split(list, ",") {
		if c = strings.TrimSpace(c); c != "" {
			columns = append(columns, c)
		}
	}
	return &UniqueViolation{Columns: columns, wrapped: err}, true
}
