// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Album is a media container attached to articles.
type Album struct {
	ID       int64     `json:"id"`
	Title    string    `json:"title"`
	Modified time.Time `json:"modified"`
}

// AlbumItem belongs to exactly one album. Items are listed ordered by
// (position, title).
type AlbumItem struct {
	ID       int64     `json:"id"`
	AlbumID  int64     `json:"album_id"`
	Title    string    `json:"title"`
	Order    int       `json:"order"`
	Media    string    `json:"media"`
	Modified time.Time `json:"modified"`
}
