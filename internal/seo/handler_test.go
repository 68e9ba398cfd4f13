package seo

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/weblog-go/internal/cache"
	"github.com/olegiv/weblog-go/internal/config"
	"github.com/olegiv/weblog-go/internal/store"
	"github.com/olegiv/weblog-go/internal/testutil"
)

func testConfig() *config.Config {
	return &config.Config{
		Languages:         []string{"en", "fr", "de"},
		DefaultLanguage:   "en",
		LocalePrefixes:    map[string]string{"fr": "/fr", "de": "/de"},
		SitemapProtocol:   "https",
		SitemapLimit:      50000,
		SitemapChangefreq: "monthly",
		SitemapPriority:   0.5,
	}
}

func newTestHandler(t *testing.T, cfg *config.Config) (*Handler, *store.Queries, *cache.MemoryCache) {
	t.Helper()

	queries := testutil.TestQueries(t)
	cacher := cache.NewMemoryCache(cache.MemoryOptions{DefaultTTL: time.Minute})
	t.Cleanup(func() { _ = cacher.Close() })

	return NewHandler(queries, cfg, cacher, testutil.TestLoggerSilent()), queries, cacher
}

func fetch(t *testing.T, h *Handler, path string) string {
	t.Helper()

	r := chi.NewRouter()
	h.Routes(r)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "http://example.com"+path, nil))
	if w.Code != http.StatusOK {
		t.Fatalf("GET %s = %d, body %s", path, w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/xml; charset=utf-8" {
		t.Errorf("Content-Type = %q", ct)
	}
	return w.Body.String()
}

// seedTranslationSet creates a published original with fr and de
// translations, plus a scheduled entry that must never appear.
func seedTranslationSet(t *testing.T, q *store.Queries) {
	t.Helper()
	ctx := context.Background()
	lastWeek := time.Now().UTC().AddDate(0, 0, -7)

	cheese, err := q.CreateArticle(ctx, testutil.ArticleParams("en", "cheese", lastWeek))
	if err != nil {
		t.Fatalf("CreateArticle: %v", err)
	}
	for _, tr := range []struct{ lang, slug string }{{"fr", "fromage"}, {"de", "kaese"}} {
		p := testutil.ArticleParams(tr.lang, tr.slug, lastWeek)
		p.OriginalID = sql.NullInt64{Int64: cheese.ID, Valid: true}
		if _, err := q.CreateArticle(ctx, p); err != nil {
			t.Fatalf("CreateArticle(%s): %v", tr.slug, err)
		}
	}

	if _, err := q.CreateArticle(ctx, testutil.ArticleParams("en", "tomorrow", time.Now().UTC().AddDate(0, 0, 1))); err != nil {
		t.Fatalf("CreateArticle(scheduled): %v", err)
	}
}

func TestArticleSitemapFlat(t *testing.T) {
	h, q, _ := newTestHandler(t, testConfig())
	seedTranslationSet(t, q)

	doc := fetch(t, h, "/sitemap-article.xml")

	for _, loc := range []string{
		"https://example.com/fr/", // locale prefix on the fr entry
		"/cheese/</loc>",
		"/fromage/</loc>",
		"/kaese/</loc>",
	} {
		if !strings.Contains(doc, loc) {
			t.Errorf("missing %q in:\n%s", loc, doc)
		}
	}
	if got := strings.Count(doc, "<url>"); got != 3 {
		t.Errorf("url count = %d, want 3 (scheduled entry excluded)", got)
	}
	if strings.Contains(doc, "xhtml") {
		t.Error("flat mode should not emit alternates")
	}
	if !strings.Contains(doc, "<changefreq>monthly</changefreq>") {
		t.Error("shared changefreq missing")
	}
}

func TestArticleSitemapTranslated(t *testing.T) {
	cfg := testConfig()
	cfg.SitemapSectionOptions = map[string]string{"article.translations": "true"}
	h, q, _ := newTestHandler(t, cfg)
	seedTranslationSet(t, q)

	doc := fetch(t, h, "/sitemap-article.xml")

	if got := strings.Count(doc, "<url>"); got != 1 {
		t.Fatalf("url count = %d, want 1 (originals only):\n%s", got, doc)
	}
	if !strings.Contains(doc, `xmlns:xhtml="http://www.w3.org/1999/xhtml"`) {
		t.Error("xhtml namespace missing")
	}
	if got := strings.Count(doc, `rel="alternate"`); got != 2 {
		t.Errorf("alternate count = %d, want 2", got)
	}
	if !strings.Contains(doc, `hreflang="fr" href="https://example.com/fr/`) {
		t.Errorf("fr alternate missing in:\n%s", doc)
	}
	if !strings.Contains(doc, `hreflang="de"`) {
		t.Error("de alternate missing")
	}
}

func TestArticleSitemapPriorityOverrides(t *testing.T) {
	cfg := testConfig()
	cfg.SitemapSectionOptions = map[string]string{
		"article.pinned_priority":   "1.0",
		"article.featured_priority": "0.8",
	}
	h, q, _ := newTestHandler(t, cfg)

	ctx := context.Background()
	lastWeek := time.Now().UTC().AddDate(0, 0, -7)

	pinned := testutil.ArticleParams("en", "pinned", lastWeek)
	pinned.Pinned = true
	featured := testutil.ArticleParams("en", "featured", lastWeek)
	featured.Featured = true
	plain := testutil.ArticleParams("en", "plain", lastWeek)

	for _, p := range []store.CreateArticleParams{pinned, featured, plain} {
		if _, err := q.CreateArticle(ctx, p); err != nil {
			t.Fatalf("CreateArticle(%s): %v", p.Slug, err)
		}
	}

	doc := fetch(t, h, "/sitemap-article.xml")

	for _, want := range []string{
		"<priority>1.0</priority>",
		"<priority>0.8</priority>",
		"<priority>0.5</priority>",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("missing %s in:\n%s", want, doc)
		}
	}
}

func TestSitemapServedFromCache(t *testing.T) {
	h, q, cacher := newTestHandler(t, testConfig())
	seedTranslationSet(t, q)

	first := fetch(t, h, "/sitemap-article.xml")

	// A later write does not show up until the cached copy expires.
	if _, err := q.CreateArticle(context.Background(),
		testutil.ArticleParams("en", "late", time.Now().UTC().AddDate(0, 0, -1))); err != nil {
		t.Fatalf("CreateArticle: %v", err)
	}
	second := fetch(t, h, "/sitemap-article.xml")
	if first != second {
		t.Error("second fetch should come from the cache")
	}

	if err := cacher.Clear(context.Background()); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	third := fetch(t, h, "/sitemap-article.xml")
	if !strings.Contains(third, "/late/") {
		t.Error("rebuilt sitemap should include the new entry")
	}
}

func TestCategorySitemapTranslated(t *testing.T) {
	cfg := testConfig()
	cfg.SitemapSectionOptions = map[string]string{"category.translations": "true"}
	h, q, _ := newTestHandler(t, cfg)

	ctx := context.Background()
	comics, err := q.CreateCategory(ctx, testutil.CategoryParams("en", "comics"))
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	frParams := testutil.CategoryParams("fr", "bandes-dessinees")
	frParams.OriginalID = sql.NullInt64{Int64: comics.ID, Valid: true}
	if _, err := q.CreateCategory(ctx, frParams); err != nil {
		t.Fatalf("CreateCategory(fr): %v", err)
	}

	doc := fetch(t, h, "/sitemap-category.xml")

	if got := strings.Count(doc, "<url>"); got != 1 {
		t.Fatalf("url count = %d, want 1:\n%s", got, doc)
	}
	if !strings.Contains(doc, "<loc>https://example.com/categories/comics/</loc>") {
		t.Errorf("original loc missing in:\n%s", doc)
	}
	if !strings.Contains(doc, `hreflang="fr" href="https://example.com/fr/categories/bandes-dessinees/"`) {
		t.Errorf("fr alternate missing in:\n%s", doc)
	}
}

func TestAuthorAndTagSitemaps(t *testing.T) {
	h, q, _ := newTestHandler(t, testConfig())

	ctx := context.Background()
	lastWeek := time.Now().UTC().AddDate(0, 0, -7)

	author, err := q.CreateUser(ctx, testutil.UserParams("picsou"))
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	tag, err := q.GetOrCreateTag(ctx, "Ducks", "ducks")
	if err != nil {
		t.Fatalf("GetOrCreateTag: %v", err)
	}

	for _, lang := range []string{"en", "fr"} {
		article, err := q.CreateArticle(ctx, testutil.ArticleParams(lang, "piece-"+lang, lastWeek))
		if err != nil {
			t.Fatalf("CreateArticle(%s): %v", lang, err)
		}
		if err := q.SetArticleAuthors(ctx, article.ID, []int64{author.ID}); err != nil {
			t.Fatalf("SetArticleAuthors: %v", err)
		}
		if err := q.SetArticleTags(ctx, article.ID, []int64{tag.ID}); err != nil {
			t.Fatalf("SetArticleTags: %v", err)
		}
	}

	authors := fetch(t, h, "/sitemap-author.xml")
	if !strings.Contains(authors, "<loc>https://example.com/authors/picsou/</loc>") ||
		!strings.Contains(authors, "<loc>https://example.com/fr/authors/picsou/</loc>") {
		t.Errorf("author sitemap should carry one entry per language:\n%s", authors)
	}

	tags := fetch(t, h, "/sitemap-tag.xml")
	if !strings.Contains(tags, "<loc>https://example.com/tags/ducks/</loc>") ||
		!strings.Contains(tags, "<loc>https://example.com/fr/tags/ducks/</loc>") {
		t.Errorf("tag sitemap should carry one entry per language:\n%s", tags)
	}
}
