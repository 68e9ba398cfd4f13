// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// User is the identity record behind an Author. Credentials live in the
// external authentication system; only capability bits are kept here.
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	IsStaff   bool      `json:"is_staff"`
	CreatedAt time.Time `json:"created_at"`
}

// FullName returns "first last", falling back to the username.
func (u *User) FullName() string {
	if u.FirstName == "" && u.LastName == "" {
		return u.Username
	}
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// Author is a read projection of a user enriched with per-language
// annotations discovered from its articles (used by sitemaps).
type Author struct {
	User
	ArticleLanguage     string    `json:"article_language,omitempty"`
	ArticleLatestUpdate time.Time `json:"article_latest_update,omitempty"`
}
