// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"database/sql"
	"strings"
	"time"

	"github.com/olegiv/weblog-go/internal/model"
)

// Cond is a composable filter fragment: a SQL boolean expression plus its
// placeholder arguments. Fragments are plain data so they can be re-targeted
// through relations by prefixing column references with a joined table
// alias (for example "a." when filtering authors by their articles).
type Cond struct {
	SQL  string
	Args []any
}

// And joins conditions into a single WHERE body and flattened args.
func And(conds []Cond) (string, []any) {
	if len(conds) == 0 {
		return "1=1", nil
	}
	parts := make([]string, 0, len(conds))
	var args []any
	for _, c := range conds {
		parts = append(parts, c.SQL)
		args = append(args, c.Args...)
	}
	return strings.Join(parts, " AND "), args
}

// PublicationConditions builds the publication criteria against target:
// status is available, optional language and private filters, the compound
// date/time start clause and the open-ended or future end clause.
//
// The start clause deliberately keeps publish_date and publish_time as two
// comparisons instead of one combined instant: the date column alone backs
// the (publish_date, slug, language) unique constraint while the pair still
// gives instant-precision filtering.
func PublicationConditions(prefix string, target time.Time, language string, private *bool) []Cond {
	target = target.UTC()
	targetDate := formatDate(target)
	targetTime := formatTime(target)
	targetInstant := formatInstant(target)

	conds := []Cond{
		{SQL: prefix + "status = ?", Args: []any{model.StatusAvailable}},
	}

	if language != "" {
		conds = append(conds, Cond{SQL: prefix + "language = ?", Args: []any{language}})
	}

	if private != nil {
		conds = append(conds, Cond{SQL: prefix + "private = ?", Args: []any{boolInt(*private)}})
	}

	conds = append(conds,
		Cond{
			SQL: "(" + prefix + "publish_date < ? OR (" +
				prefix + "publish_date = ? AND " + prefix + "publish_time <= ?))",
			Args: []any{targetDate, targetDate, targetTime},
		},
		Cond{
			SQL:  "(" + prefix + "publish_end > ? OR " + prefix + "publish_end IS NULL)",
			Args: []any{targetInstant},
		},
	)

	return conds
}

// LanguageCondition builds the simple language filter. An empty language
// falls back to fallback (the configured default).
func LanguageCondition(prefix, language, fallback string) Cond {
	if language == "" {
		language = fallback
	}
	return Cond{SQL: prefix + "language = ?", Args: []any{language}}
}

// SiblingConditions builds the lookup for the translation set of a source
// entity. For an original it selects its translations; for a translation it
// selects the original plus the other translations, excluding the source.
func SiblingConditions(id int64, originalID sql.NullInt64) []Cond {
	if !originalID.Valid {
		return []Cond{{SQL: "original_id = ?", Args: []any{id}}}
	}

	return []Cond{{
		SQL:  "(id = ? OR (original_id = ? AND id <> ?))",
		Args: []any{originalID.Int64, originalID.Int64, id},
	}}
}
