// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Language represents a content language enabled for the site.
type Language struct {
	Code      string `json:"code"`       // ISO 639-1: en, ru, de, fr
	Name      string `json:"name"`       // English, Russian, German, French
	IsDefault bool   `json:"is_default"` // only one can be default
	URLPrefix string `json:"url_prefix"` // locale prefix used in localized URLs, e.g. "/fr"
}

// Languages is the ordered set of configured languages.
type Languages []Language

// Default returns the default language. Falls back to the first configured
// language when none is flagged.
func (l Languages) Default() Language {
	for _, lang := range l {
		if lang.IsDefault {
			return lang
		}
	}
	if len(l) > 0 {
		return l[0]
	}
	return Language{}
}

// Codes returns the configured language codes in order.
func (l Languages) Codes() []string {
	codes := make([]string, 0, len(l))
	for _, lang := range l {
		codes = append(codes, lang.Code)
	}
	return codes
}

// Has reports whether code is a configured language.
func (l Languages) Has(code string) bool {
	for _, lang := range l {
		if lang.Code == code {
			return true
		}
	}
	return false
}

// ByCode returns the language for code and whether it exists.
func (l Languages) ByCode(code string) (Language, bool) {
	for _, lang := range l {
		if lang.Code == code {
			return lang, true
		}
	}
	return Language{}, false
}

// LocalizeURL prefixes path with the language URL prefix, if any.
func (lang Language) LocalizeURL(path string) string {
	if lang.URLPrefix == "" {
		return path
	}
	return lang.URLPrefix + path
}
