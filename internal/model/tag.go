// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Tag is a label shared by articles across all languages. A tag has no
// language of its own; its language is inferred from the articles that
// reference it.
type Tag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// ActiveTag is a tag annotated with the language it was discovered for and
// the latest update of its related articles (used by sitemaps).
type ActiveTag struct {
	Tag
	ArticleLanguage     string    `json:"article_language"`
	ArticleLatestUpdate time.Time `json:"article_latest_update"`
	ArticleCount        int64     `json:"article_count"`
}
