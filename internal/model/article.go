// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"time"
)

// Article statuses. Values are ordered so that "below available" means
// not publishable regardless of dates.
const (
	StatusDraft     = 0
	StatusAvailable = 10
)

// Article is a weblog entry in a single language. An article either is an
// original (OriginalID is null) or points at the original it translates.
type Article struct {
	ID           int64         `json:"id"`
	Language     string        `json:"language"`
	OriginalID   sql.NullInt64 `json:"original_id"`
	Status       int           `json:"status"`
	Featured     bool          `json:"featured"`
	Pinned       bool          `json:"pinned"`
	Private      bool          `json:"private"`
	PublishDate  time.Time     `json:"publish_date"` // date component, UTC midnight
	PublishTime  time.Time     `json:"publish_time"` // time-of-day on the zero date
	PublishEnd   sql.NullTime  `json:"publish_end"`
	LastUpdate   time.Time     `json:"last_update"`
	Title        string        `json:"title"`
	Slug         string        `json:"slug"`
	SeoTitle     string        `json:"seo_title"`
	Lead         string        `json:"lead"`
	Introduction string        `json:"introduction"`
	Content      string        `json:"content"`
	CoverAltText string        `json:"cover_alt_text"`
	ImageAltText string        `json:"image_alt_text"`
	Cover        string        `json:"cover"`
	Image        string        `json:"image"`
	Template     string        `json:"template"`
	AlbumID      sql.NullInt64 `json:"album_id"`
}

// IsOriginal returns true when the article is not a translation.
func (a *Article) IsOriginal() bool {
	return !a.OriginalID.Valid
}

// IsDraft returns true if the article status is below available.
func (a *Article) IsDraft() bool {
	return a.Status < StatusAvailable
}

// PublishDatetime combines publish date and time-of-day into a single UTC
// instant. The two fields stay split in storage so the unique constraint on
// (publish_date, slug, language) holds while filtering keeps instant
// precision.
func (a *Article) PublishDatetime() time.Time {
	d := a.PublishDate
	t := a.PublishTime
	return time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
}

// IsPublished reports whether the article is visible at now: it must be
// available, already started and not yet ended.
func (a *Article) IsPublished(now time.Time) bool {
	states := ComputeStates(a, &now, DefaultStateNames())
	return contains(states, StateAvailable) &&
		!contains(states, StateDraft) &&
		!contains(states, StateNotYet) &&
		!contains(states, StatePassed)
}

func contains(states []string, s string) bool {
	for _, v := range states {
		if v == s {
			return true
		}
	}
	return false
}
