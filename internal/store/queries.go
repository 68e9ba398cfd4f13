// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package store is the persistence layer: database setup, migrations and a
// hand-written query set over database/sql. Queries methods take typed
// Params structs and return model entities.
package store

import (
	"context"
	"database/sql"
	"strings"
	"time"
)

// Storage layouts for the split publication fields. Dates, times of day and
// instants are stored as text in formats whose lexicographic order matches
// chronological order.
const (
	DateLayout     = "2006-01-02"
	TimeLayout     = "15:04:05"
	DateTimeLayout = "2006-01-02T15:04:05Z07:00"
)

// DBTX is the common interface of *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Queries provides typed access to the database.
type Queries struct {
	db          DBTX
	defaultLang string
}

// New creates a Queries bound to db. The default language starts as "en"
// and can be overridden with WithDefaultLanguage.
func New(db DBTX) *Queries {
	return &Queries{db: db, defaultLang: "en"}
}

// WithTx returns a Queries bound to the given transaction.
func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx, defaultLang: q.defaultLang}
}

// WithDefaultLanguage returns a Queries using code as the fallback language
// for language-filtered queries called without an explicit language.
func (q *Queries) WithDefaultLanguage(code string) *Queries {
	return &Queries{db: q.db, defaultLang: code}
}

// DefaultLanguage returns the configured fallback language code.
func (q *Queries) DefaultLanguage() string {
	return q.defaultLang
}

// formatDate renders the date component for storage.
func formatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// formatTime renders the time-of-day component for storage, normalized to
// UTC like the other layouts.
func formatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// formatInstant renders an absolute instant for storage, always in UTC.
func formatInstant(t time.Time) string {
	return t.UTC().Format(DateTimeLayout)
}

func parseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

func parseTimeOfDay(s string) (time.Time, error) {
	return time.ParseInLocation(TimeLayout, s, time.UTC)
}

func parseInstant(s string) (time.Time, error) {
	return time.Parse(DateTimeLayout, s)
}

func parseNullInstant(s sql.NullString) (sql.NullTime, error) {
	if !s.Valid {
		return sql.NullTime{}, nil
	}
	t, err := parseInstant(s.String)
	if err != nil {
		return sql.NullTime{}, err
	}
	return sql.NullTime{Time: t, Valid: true}, nil
}

func nullInstant(t sql.NullTime) sql.NullString {
	if !t.Valid {
		return sql.NullString{}
	}
	return sql.NullString{String: formatInstant(t.Time), Valid: true}
}

// boolInt converts a bool to its stored integer form.
func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// prefixColumns prepends alias+"." to every column in a comma-separated
// column list, so a select list can be reused under a table alias.
func prefixColumns(alias, columns string) string {
	parts := strings.Split(columns, ",")
	for i, part := range parts {
		parts[i] = alias + "." + strings.TrimSpace(part)
	}
	return strings.Join(parts, ", ")
}

// prefixOrder prepends alias+"." to every "column DIR" term of an ORDER BY
// body.
func prefixOrder(alias, orderBy string) string {
	parts := strings.Split(orderBy, ",")
	for i, part := range parts {
		parts[i] = alias + "." + strings.TrimSpace(part)
	}
	return strings.Join(parts, ", ")
}
