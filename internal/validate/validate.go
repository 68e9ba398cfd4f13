// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package validate runs the cross-field rules guarding the translation
// graph and the category tree. Validators accumulate every applicable code
// per write instead of stopping at the first failure, and run inside the
// same transaction as the mutation they guard.
package validate

import (
	"fmt"
	"sort"
	"strings"
)

// Stable machine-readable codes attached to fields on failure.
const (
	CodeInvalid           = "invalid"
	CodeInvalidLanguage   = "invalid-language"
	CodeInvalidOriginal   = "invalid-original"
	CodeInvalidRelated    = "invalid-related"
	CodeInvalidCategories = "invalid-categories"
	CodeUnique            = "unique"
)

// Errors maps field names to the codes they failed with. A nil or empty
// map means the input passed.
type Errors map[string][]string

// Add appends a code to a field, skipping exact duplicates.
func (e Errors) Add(field, code string) {
	for _, existing := range e[field] {
		if existing == code {
			return
		}
	}
	e[field] = append(e[field], code)
}

// Merge folds other into e.
func (e Errors) Merge(other Errors) {
	for field, codes := range other {
		for _, code := range codes {
			e.Add(field, code)
		}
	}
}

// Error renders the map for logs; the structured form travels separately.
func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(e[field], ", ")))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// OrNil returns e as an error, or nil when nothing failed.
func (e Errors) OrNil() error {
	if len(e) == 0 {
		return nil
	}
	return e
}
