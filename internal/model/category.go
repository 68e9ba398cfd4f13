// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"strings"
	"time"
)

// PathStepLen is the fixed width of one materialized-path segment.
// A category path is the concatenation of zero-padded segments, one per
// tree level, so "subtree of X" is a single range predicate on the path.
const PathStepLen = 6

// Category is a tree node holding articles of a single language.
type Category struct {
	ID           int64         `json:"id"`
	Language     string        `json:"language"`
	OriginalID   sql.NullInt64 `json:"original_id"`
	Title        string        `json:"title"`
	Slug         string        `json:"slug"`
	Lead         string        `json:"lead"`
	Description  string        `json:"description"`
	CoverAltText string        `json:"cover_alt_text"`
	Cover        string        `json:"cover"`
	Modified     time.Time     `json:"modified"`
	Template     string        `json:"template"`
	Path         string        `json:"path"`
	Depth        int           `json:"depth"`
}

// IsOriginal returns true when the category is not a translation.
func (c *Category) IsOriginal() bool {
	return !c.OriginalID.Valid
}

// IsRoot returns true for top-level tree nodes.
func (c *Category) IsRoot() bool {
	return c.Depth == 1
}

// ParentPath returns the materialized path of the parent node, or "" for a
// root node.
func (c *Category) ParentPath() string {
	if len(c.Path) <= PathStepLen {
		return ""
	}
	return c.Path[:len(c.Path)-PathStepLen]
}

// IsDescendantOf reports whether c lives in the subtree rooted at other.
func (c *Category) IsDescendantOf(other *Category) bool {
	return c.ID != other.ID && strings.HasPrefix(c.Path, other.Path)
}

// AncestorPaths returns the paths of all ancestors, nearest root first.
func (c *Category) AncestorPaths() []string {
	var paths []string
	for i := PathStepLen; i < len(c.Path); i += PathStepLen {
		paths = append(paths, c.Path[:i])
	}
	return paths
}
