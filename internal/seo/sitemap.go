// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package seo builds the XML sitemaps: one urlset document per content
// section, with optional xhtml alternate links for translated entries.
package seo

import (
	"encoding/xml"
	"strconv"
	"time"
)

// XMLNamespace is the sitemap XML namespace.
const XMLNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// XHTMLNamespace is the namespace of the alternate-language links.
const XHTMLNamespace = "http://www.w3.org/1999/xhtml"

// ChangeFreq represents the change frequency of a URL.
type ChangeFreq string

// Valid change frequency values.
const (
	ChangeFreqAlways  ChangeFreq = "always"
	ChangeFreqHourly  ChangeFreq = "hourly"
	ChangeFreqDaily   ChangeFreq = "daily"
	ChangeFreqWeekly  ChangeFreq = "weekly"
	ChangeFreqMonthly ChangeFreq = "monthly"
	ChangeFreqYearly  ChangeFreq = "yearly"
	ChangeFreqNever   ChangeFreq = "never"
)

// Alternate is an xhtml:link entry pointing at a translation of the URL.
type Alternate struct {
	Rel      string `xml:"rel,attr"`
	Hreflang string `xml:"hreflang,attr"`
	Href     string `xml:"href,attr"`
}

// URL represents a single url entry in the sitemap.
type URL struct {
	Loc        string      `xml:"loc"`
	LastMod    string      `xml:"lastmod,omitempty"`
	ChangeFreq ChangeFreq  `xml:"changefreq,omitempty"`
	Priority   string      `xml:"priority,omitempty"`
	Alternates []Alternate `xml:"xhtml:link"`
}

// URLSet represents the complete sitemap document. The xhtml namespace is
// only declared when alternate links are present.
type URLSet struct {
	XMLName xml.Name `xml:"urlset"`
	XMLNS   string   `xml:"xmlns,attr"`
	XHTML   string   `xml:"xmlns:xhtml,attr,omitempty"`
	URLs    []URL    `xml:"url"`
}

// Builder accumulates url entries and serializes the urlset.
type Builder struct {
	base string
	urls []URL
}

// NewBuilder creates a builder for the given scheme and host; entry
// locations are the base joined with absolute paths.
func NewBuilder(protocol, host string) *Builder {
	return &Builder{
		base: protocol + "://" + host,
		urls: make([]URL, 0),
	}
}

// Loc returns the absolute location for a site path.
func (b *Builder) Loc(path string) string {
	return b.base + path
}

// Add appends a url entry.
func (b *Builder) Add(u URL) {
	b.urls = append(b.urls, u)
}

// AddPath appends an entry for a site path with the usual annotations. A
// zero lastMod is omitted.
func (b *Builder) AddPath(path string, lastMod time.Time, freq ChangeFreq, priority float64) {
	u := URL{
		Loc:        b.Loc(path),
		ChangeFreq: freq,
		Priority:   FormatPriority(priority),
	}
	if !lastMod.IsZero() {
		u.LastMod = lastMod.UTC().Format(time.RFC3339)
	}
	b.urls = append(b.urls, u)
}

// Len returns the number of accumulated entries.
func (b *Builder) Len() int {
	return len(b.urls)
}

// Truncate drops entries beyond limit. A non-positive limit keeps all.
func (b *Builder) Truncate(limit int) {
	if limit > 0 && len(b.urls) > limit {
		b.urls = b.urls[:limit]
	}
}

// Build generates the sitemap XML.
func (b *Builder) Build() ([]byte, error) {
	doc := URLSet{
		XMLNS: XMLNamespace,
		URLs:  b.urls,
	}
	for i := range b.urls {
		if len(b.urls[i].Alternates) > 0 {
			doc.XHTML = XHTMLNamespace
			break
		}
	}

	output := []byte(xml.Header)
	xmlBytes, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(output, xmlBytes...), nil
}

// FormatPriority renders a priority value the way sitemaps expect ("0.5").
func FormatPriority(p float64) string {
	return strconv.FormatFloat(p, 'f', 1, 64)
}
