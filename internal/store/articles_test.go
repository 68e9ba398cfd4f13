package store

import (
	"database/sql"
	"errors"
	"testing"
	"time"
)

func TestCreateArticleRoundtrip(t *testing.T) {
	_, cleanup, ctx, q := testSetup(t)
	defer cleanup()

	end := time.Date(2026, 6, 1, 18, 30, 0, 0, time.UTC)
	created := mustCreateArticle(t, ctx, q, CreateArticleParams{
		Language:     "en",
		Status:       10,
		Featured:     true,
		PublishDate:  time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC),
		PublishTime:  timeOfDay(9, 15),
		PublishEnd:   sql.NullTime{Time: end, Valid: true},
		Title:        "Hello",
		Slug:         "hello",
		Lead:         "lead",
		Introduction: "intro",
		Content:      "body",
	})

	got, err := q.GetArticleByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetArticleByID: %v", err)
	}

	if got.Language != "en" || got.Slug != "hello" || !got.Featured {
		t.Errorf("unexpected fields: %+v", got)
	}
	if got.PublishDate.Format(DateLayout) != "2026-05-10" {
		t.Errorf("PublishDate = %v", got.PublishDate)
	}
	if got.PublishTime.Format(TimeLayout) != "09:15:00" {
		t.Errorf("PublishTime = %v", got.PublishTime)
	}
	if !got.PublishEnd.Valid || !got.PublishEnd.Time.Equal(end) {
		t.Errorf("PublishEnd = %+v, want %v", got.PublishEnd, end)
	}
	if got.LastUpdate.IsZero() {
		t.Error("LastUpdate should be set on create")
	}

	want := time.Date(2026, 5, 10, 9, 15, 0, 0, time.UTC)
	if !got.PublishDatetime().Equal(want) {
		t.Errorf("PublishDatetime = %v, want %v", got.PublishDatetime(), want)
	}
}

func TestGetArticleByDateSlug(t *testing.T) {
	_, cleanup, ctx, q := testSetup(t)
	defer cleanup()

	date := time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)
	en := mustCreateArticle(t, ctx, q, articleParams("en", "cheese", date))
	fr := mustCreateArticle(t, ctx, q, articleParams("fr", "cheese", date))

	got, err := q.GetArticleByDateSlug(ctx, GetArticleByDateSlugParams{
		PublishDate: date, Slug: "cheese", Language: "fr",
	})
	if err != nil {
		t.Fatalf("GetArticleByDateSlug: %v", err)
	}
	if got.ID != fr.ID {
		t.Errorf("got article %d, want %d", got.ID, fr.ID)
	}

	got, err = q.GetArticleByDateSlug(ctx, GetArticleByDateSlugParams{
		PublishDate: date, Slug: "cheese", Language: "en",
	})
	if err != nil {
		t.Fatalf("GetArticleByDateSlug(en): %v", err)
	}
	if got.ID != en.ID {
		t.Errorf("got article %d, want %d", got.ID, en.ID)
	}

	_, err = q.GetArticleByDateSlug(ctx, GetArticleByDateSlugParams{
		PublishDate: date.AddDate(0, 0, 1), Slug: "cheese", Language: "en",
	})
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("wrong date should miss, got %v", err)
	}
}

// Publication boundaries: an article published exactly at the target
// instant is visible, one whose publish_end equals the target is not.
func TestPublicationBoundaries(t *testing.T) {
	_, cleanup, ctx, q := testSetup(t)
	defer cleanup()

	target := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)
	day := time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)

	exact := articleParams("en", "exact", day)
	exact.PublishTime = timeOfDay(12, 0)
	mustCreateArticle(t, ctx, q, exact)

	future := articleParams("en", "future", day)
	future.PublishTime = time.Date(0, 1, 1, 12, 0, 1, 0, time.UTC)
	mustCreateArticle(t, ctx, q, future)

	// Earlier date with a later time of day still counts as published:
	// the date comparison dominates.
	yesterday := articleParams("en", "yesterday-late", day.AddDate(0, 0, -1))
	yesterday.PublishTime = timeOfDay(23, 59)
	mustCreateArticle(t, ctx, q, yesterday)

	ended := articleParams("en", "ended", day.AddDate(0, 0, -2))
	ended.PublishEnd = sql.NullTime{Time: target, Valid: true}
	mustCreateArticle(t, ctx, q, ended)

	ending := articleParams("en", "ending", day.AddDate(0, 0, -2))
	ending.PublishEnd = sql.NullTime{Time: target.Add(time.Second), Valid: true}
	mustCreateArticle(t, ctx, q, ending)

	got, err := q.ListPublishedArticles(ctx, ListPublishedArticlesParams{
		Target: target, Language: "en",
	})
	if err != nil {
		t.Fatalf("ListPublishedArticles: %v", err)
	}

	want := map[string]bool{"exact": true, "yesterday-late": true, "ending": true}
	if len(got) != len(want) {
		t.Fatalf("published = %v, want %v", slugs(got), want)
	}
	for _, a := range got {
		if !want[a.Slug] {
			t.Errorf("unexpected published article %q", a.Slug)
		}
	}

	unpublished, err := q.ListUnpublishedArticles(ctx, ListPublishedArticlesParams{
		Target: target, Language: "en",
	})
	if err != nil {
		t.Fatalf("ListUnpublishedArticles: %v", err)
	}
	if len(unpublished) != 2 {
		t.Errorf("unpublished = %v, want future and ended", slugs(unpublished))
	}
}

func TestListArticlesViewerFilters(t *testing.T) {
	_, cleanup, ctx, q := testSetup(t)
	defer cleanup()

	now := time.Now().UTC()
	past := now.AddDate(0, 0, -3)

	mustCreateArticle(t, ctx, q, articleParams("en", "published", past))

	draft := articleParams("en", "draft", past)
	draft.Status = 0
	mustCreateArticle(t, ctx, q, draft)

	scheduled := articleParams("en", "scheduled", now.AddDate(0, 0, 2))
	mustCreateArticle(t, ctx, q, scheduled)

	private := articleParams("en", "private", past)
	private.Private = true
	mustCreateArticle(t, ctx, q, private)

	mustCreateArticle(t, ctx, q, articleParams("fr", "publie", past))

	noPrivate := false

	// Anonymous viewer: published public entries in the language only.
	got, err := q.ListArticles(ctx, ListArticlesParams{
		Filter: ArticleFilter{Target: now, Language: "en", Private: &noPrivate},
	})
	if err != nil {
		t.Fatalf("ListArticles: %v", err)
	}
	if !equalStrings(slugs(got), []string{"published"}) {
		t.Errorf("anonymous listing = %v", slugs(got))
	}

	// Authenticated viewer additionally sees private published entries.
	got, err = q.ListArticles(ctx, ListArticlesParams{
		Filter: ArticleFilter{Target: now, Language: "en"},
	})
	if err != nil {
		t.Fatalf("ListArticles: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("authenticated listing = %v", slugs(got))
	}

	// Preview mode widens to everything in the language.
	got, err = q.ListArticles(ctx, ListArticlesParams{
		Filter: ArticleFilter{Preview: true, Language: "en"},
	})
	if err != nil {
		t.Fatalf("ListArticles(preview): %v", err)
	}
	if len(got) != 4 {
		t.Errorf("preview listing = %v", slugs(got))
	}

	n, err := q.CountArticles(ctx, ListArticlesParams{
		Filter: ArticleFilter{Preview: true, Language: "en"},
	})
	if err != nil {
		t.Fatalf("CountArticles: %v", err)
	}
	if n != 4 {
		t.Errorf("CountArticles = %d, want 4", n)
	}
}

func TestArticleSiblingsAndTranslations(t *testing.T) {
	_, cleanup, ctx, q := testSetup(t)
	defer cleanup()

	date := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	cheese := mustCreateArticle(t, ctx, q, articleParams("en", "cheese", date))

	fromage := articleParams("fr", "fromage", date)
	fromage.OriginalID = ref(cheese.ID)
	frArticle := mustCreateArticle(t, ctx, q, fromage)

	kaese := articleParams("de", "kaese", date)
	kaese.OriginalID = ref(cheese.ID)
	kaese.Status = 0 // draft translation
	mustCreateArticle(t, ctx, q, kaese)

	// Siblings of the original are its translations.
	got, err := q.ListArticleSiblings(ctx, cheese, nil)
	if err != nil {
		t.Fatalf("ListArticleSiblings: %v", err)
	}
	if !equalStrings(slugs(got), []string{"kaese", "fromage"}) {
		t.Errorf("siblings of original = %v", slugs(got))
	}

	// Siblings of a translation: the original plus the other translations.
	got, err = q.ListArticleSiblings(ctx, frArticle, nil)
	if err != nil {
		t.Fatalf("ListArticleSiblings(translation): %v", err)
	}
	if !equalStrings(slugs(got), []string{"kaese", "cheese"}) {
		t.Errorf("siblings of translation = %v", slugs(got))
	}

	// A visibility filter drops the draft; its language restriction is
	// ignored since siblings span languages.
	noPrivate := false
	filter := ArticleFilter{Target: time.Now(), Language: "en", Private: &noPrivate}
	got, err = q.ListArticleSiblings(ctx, cheese, &filter)
	if err != nil {
		t.Fatalf("ListArticleSiblings(filtered): %v", err)
	}
	if !equalStrings(slugs(got), []string{"fromage"}) {
		t.Errorf("filtered siblings = %v", slugs(got))
	}

	got, err = q.ListArticleTranslations(ctx, cheese.ID, nil)
	if err != nil {
		t.Fatalf("ListArticleTranslations: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("translations = %v", slugs(got))
	}
}

func TestArticleRelations(t *testing.T) {
	_, cleanup, ctx, q := testSetup(t)
	defer cleanup()

	date := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	a := mustCreateArticle(t, ctx, q, articleParams("en", "a", date))
	b := mustCreateArticle(t, ctx, q, articleParams("en", "b", date))
	c := mustCreateArticle(t, ctx, q, articleParams("en", "c", date))

	if err := q.SetArticleRelated(ctx, a.ID, []int64{b.ID, c.ID}); err != nil {
		t.Fatalf("SetArticleRelated: %v", err)
	}

	got, err := q.ListArticleRelated(ctx, a.ID, nil)
	if err != nil {
		t.Fatalf("ListArticleRelated: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("related = %v", slugs(got))
	}

	// The relation is directed: b does not point back at a.
	got, err = q.ListArticleRelated(ctx, b.ID, nil)
	if err != nil {
		t.Fatalf("ListArticleRelated(b): %v", err)
	}
	if len(got) != 0 {
		t.Errorf("related of b = %v, want none", slugs(got))
	}

	incoming, err := q.ListArticlesRelatingTo(ctx, b.ID, nil)
	if err != nil {
		t.Fatalf("ListArticlesRelatingTo: %v", err)
	}
	if !equalStrings(slugs(incoming), []string{"a"}) {
		t.Errorf("incoming of b = %v", slugs(incoming))
	}

	// Replacing the set drops stale links.
	if err := q.SetArticleRelated(ctx, a.ID, []int64{c.ID}); err != nil {
		t.Fatalf("SetArticleRelated(replace): %v", err)
	}
	got, err = q.ListArticleRelated(ctx, a.ID, nil)
	if err != nil {
		t.Fatalf("ListArticleRelated(replaced): %v", err)
	}
	if !equalStrings(slugs(got), []string{"c"}) {
		t.Errorf("related after replace = %v", slugs(got))
	}
}

func TestArticleUniqueViolations(t *testing.T) {
	_, cleanup, ctx, q := testSetup(t)
	defer cleanup()

	date := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	mustCreateArticle(t, ctx, q, articleParams("en", "cheese", date))

	_, err := q.CreateArticle(ctx, articleParams("en", "cheese", date))
	if err == nil {
		t.Fatal("duplicate (date, slug, language) should fail")
	}
	v, ok := AsUniqueViolation(err)
	if !ok {
		t.Fatalf("AsUniqueViolation: not recognized: %v", err)
	}
	if !v.HasColumn("articles.slug") || !v.HasColumn("articles.language") {
		t.Errorf("violation columns = %v", v.Columns)
	}

	// One translation per language and original.
	original := mustCreateArticle(t, ctx, q, articleParams("en", "original", date))
	first := articleParams("fr", "premier", date)
	first.OriginalID = ref(original.ID)
	mustCreateArticle(t, ctx, q, first)

	second := articleParams("fr", "deuxieme", date)
	second.OriginalID = ref(original.ID)
	_, err = q.CreateArticle(ctx, second)
	if err == nil {
		t.Fatal("duplicate (original, language) should fail")
	}
	v, ok = AsUniqueViolation(err)
	if !ok {
		t.Fatalf("AsUniqueViolation: not recognized: %v", err)
	}
	if !v.HasColumn("articles.original_id") {
		t.Errorf("violation columns = %v", v.Columns)
	}
}

func TestListArticlesByRelationTargets(t *testing.T) {
	_, cleanup, ctx, q := testSetup(t)
	defer cleanup()

	now := time.Now().UTC()
	date := now.AddDate(0, 0, -1)

	author := mustCreateUser(t, ctx, q, "picsou")
	cat := mustCreateCategory(t, ctx, q, CreateCategoryParams{Language: "en", Title: "Comics", Slug: "comics"})
	tag, err := q.GetOrCreateTag(ctx, "Ducks", "ducks")
	if err != nil {
		t.Fatalf("GetOrCreateTag: %v", err)
	}

	a := mustCreateArticle(t, ctx, q, articleParams("en", "tagged", date))
	mustCreateArticle(t, ctx, q, articleParams("en", "plain", date))

	if err := q.SetArticleAuthors(ctx, a.ID, []int64{author.ID}); err != nil {
		t.Fatalf("SetArticleAuthors: %v", err)
	}
	if err := q.SetArticleCategories(ctx, a.ID, []int64{cat.ID}); err != nil {
		t.Fatalf("SetArticleCategories: %v", err)
	}
	if err := q.SetArticleTags(ctx, a.ID, []int64{tag.ID}); err != nil {
		t.Fatalf("SetArticleTags: %v", err)
	}

	filter := ArticleFilter{Target: now, Language: "en"}

	byAuthor, err := q.ListArticles(ctx, ListArticlesParams{Filter: filter, AuthorID: author.ID})
	if err != nil {
		t.Fatalf("ListArticles(author): %v", err)
	}
	if !equalStrings(slugs(byAuthor), []string{"tagged"}) {
		t.Errorf("by author = %v", slugs(byAuthor))
	}

	byCategory, err := q.ListArticles(ctx, ListArticlesParams{Filter: filter, CategoryID: cat.ID})
	if err != nil {
		t.Fatalf("ListArticles(category): %v", err)
	}
	if !equalStrings(slugs(byCategory), []string{"tagged"}) {
		t.Errorf("by category = %v", slugs(byCategory))
	}

	byTag, err := q.ListArticles(ctx, ListArticlesParams{Filter: filter, TagSlug: "ducks"})
	if err != nil {
		t.Fatalf("ListArticles(tag): %v", err)
	}
	if !equalStrings(slugs(byTag), []string{"tagged"}) {
		t.Errorf("by tag = %v", slugs(byTag))
	}
}

func TestArticleCommonOrderPinnedFirst(t *testing.T) {
	_, cleanup, ctx, q := testSetup(t)
	defer cleanup()

	now := time.Now().UTC()

	older := articleParams("en", "older-pinned", now.AddDate(0, 0, -5))
	older.Pinned = true
	mustCreateArticle(t, ctx, q, older)
	mustCreateArticle(t, ctx, q, articleParams("en", "newer", now.AddDate(0, 0, -1)))

	got, err := q.ListArticles(ctx, ListArticlesParams{
		Filter: ArticleFilter{Target: now, Language: "en"},
	})
	if err != nil {
		t.Fatalf("ListArticles: %v", err)
	}
	if !equalStrings(slugs(got), []string{"older-pinned", "newer"}) {
		t.Errorf("order = %v, want pinned first", slugs(got))
	}
}

func TestPublishTimeStoredUTC(t *testing.T) {
	_, cleanup, ctx, q := testSetup(t)
	defer cleanup()

	// A zoned time of day lands in storage as its UTC equivalent, so the
	// publication comparison sees consistent values.
	cet := time.FixedZone("CET", 3600)
	created := mustCreateArticle(t, ctx, q, CreateArticleParams{
		Language:    "en",
		Status:      10,
		PublishDate: time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC),
		PublishTime: time.Date(0, 1, 1, 10, 0, 0, 0, cet),
		Title:       "zoned",
		Slug:        "zoned",
	})

	if got := created.PublishTime.Format(TimeLayout); got != "09:00:00" {
		t.Errorf("PublishTime = %s, want 09:00:00", got)
	}
}
