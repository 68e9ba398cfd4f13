package store

import (
	"testing"
	"time"
)

func TestGetOrCreateTag(t *testing.T) {
	_, cleanup, ctx, q := testSetup(t)
	defer cleanup()

	first, err := q.GetOrCreateTag(ctx, "Adventure", "adventure")
	if err != nil {
		t.Fatalf("GetOrCreateTag: %v", err)
	}
	second, err := q.GetOrCreateTag(ctx, "Adventure Again", "adventure")
	if err != nil {
		t.Fatalf("GetOrCreateTag(second): %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("second call created a new tag: %d != %d", second.ID, first.ID)
	}
	if second.Name != "Adventure" {
		t.Errorf("Name = %q, want the original name", second.Name)
	}
}

// The tag index filters by language only, so tags used exclusively by
// scheduled articles still show up there. The sitemap listing applies the
// full publication criteria and drops them.
func TestActiveTagsVersusAnnotations(t *testing.T) {
	_, cleanup, ctx, q := testSetup(t)
	defer cleanup()

	now := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)
	tomorrow := now.AddDate(0, 0, 1)

	ducks, err := q.GetOrCreateTag(ctx, "Ducks", "ducks")
	if err != nil {
		t.Fatalf("GetOrCreateTag: %v", err)
	}
	upcoming, err := q.GetOrCreateTag(ctx, "Upcoming", "upcoming")
	if err != nil {
		t.Fatalf("GetOrCreateTag: %v", err)
	}

	published := mustCreateArticle(t, ctx, q, articleParams("en", "published", yesterday))
	alsoLive := mustCreateArticle(t, ctx, q, articleParams("en", "also-live", yesterday))
	scheduled := mustCreateArticle(t, ctx, q, articleParams("en", "scheduled", tomorrow))
	french := mustCreateArticle(t, ctx, q, articleParams("fr", "publie", yesterday))

	setTags := func(articleID int64, tagIDs ...int64) {
		t.Helper()
		if err := q.SetArticleTags(ctx, articleID, tagIDs); err != nil {
			t.Fatalf("SetArticleTags: %v", err)
		}
	}
	setTags(published.ID, ducks.ID)
	setTags(alsoLive.ID, ducks.ID)
	setTags(scheduled.ID, upcoming.ID)
	setTags(french.ID, ducks.ID)

	active, err := q.ListActiveTags(ctx, ListActiveTagsParams{Language: "en"})
	if err != nil {
		t.Fatalf("ListActiveTags: %v", err)
	}
	if len(active) != 2 {
		t.Fatalf("active en tags = %d, want 2 (scheduled usage counts in the index)", len(active))
	}
	if active[0].Slug != "ducks" || active[0].ArticleCount != 2 {
		t.Errorf("first tag = %s/%d, want ducks/2", active[0].Slug, active[0].ArticleCount)
	}
	if active[1].Slug != "upcoming" || active[1].ArticleCount != 1 {
		t.Errorf("second tag = %s/%d, want upcoming/1", active[1].Slug, active[1].ArticleCount)
	}

	n, err := q.CountActiveTags(ctx, "en")
	if err != nil {
		t.Fatalf("CountActiveTags: %v", err)
	}
	if n != 2 {
		t.Errorf("CountActiveTags = %d, want 2", n)
	}

	annotations, err := q.ListTagAnnotations(ctx, now)
	if err != nil {
		t.Fatalf("ListTagAnnotations: %v", err)
	}
	// ducks appears once per language; upcoming is filtered out entirely.
	if len(annotations) != 2 {
		t.Fatalf("annotations = %d, want 2", len(annotations))
	}
	for _, a := range annotations {
		if a.Slug != "ducks" {
			t.Errorf("annotated tag = %q, want ducks", a.Slug)
		}
		if a.ArticleLatestUpdate.IsZero() {
			t.Errorf("latest update for %s is zero", a.ArticleLanguage)
		}
	}
	if annotations[0].ArticleLanguage != "en" || annotations[1].ArticleLanguage != "fr" {
		t.Errorf("annotation languages = %s, %s, want en, fr",
			annotations[0].ArticleLanguage, annotations[1].ArticleLanguage)
	}
}

func TestArticleTagsOrderedByName(t *testing.T) {
	_, cleanup, ctx, q := testSetup(t)
	defer cleanup()

	zebra, _ := q.GetOrCreateTag(ctx, "Zebra", "zebra")
	apple, _ := q.GetOrCreateTag(ctx, "Apple", "apple")

	a := mustCreateArticle(t, ctx, q, articleParams("en", "piece", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)))
	if err := q.SetArticleTags(ctx, a.ID, []int64{zebra.ID, apple.ID}); err != nil {
		t.Fatalf("SetArticleTags: %v", err)
	}

	tags, err := q.ListArticleTags(ctx, a.ID)
	if err != nil {
		t.Fatalf("ListArticleTags: %v", err)
	}
	if len(tags) != 2 || tags[0].Name != "Apple" || tags[1].Name != "Zebra" {
		t.Errorf("tags = %v, want [Apple Zebra]", tags)
	}
}
