package store

import (
	"testing"
	"time"
)

func TestGetUserByUsername(t *testing.T) {
	_, cleanup, ctx, q := testSetup(t)
	defer cleanup()

	created, err := q.CreateUser(ctx, CreateUserParams{
		Username:  "picsou",
		FirstName: "Balthazar",
		LastName:  "Picsou",
		IsStaff:   true,
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	u, err := q.GetUserByUsername(ctx, "picsou")
	if err != nil {
		t.Fatalf("GetUserByUsername: %v", err)
	}
	if u.ID != created.ID {
		t.Errorf("ID = %d, want %d", u.ID, created.ID)
	}
	if !u.IsStaff {
		t.Error("IsStaff = false, want true")
	}
	if u.CreatedAt.IsZero() {
		t.Error("CreatedAt is zero")
	}
}

func TestListActiveAuthors(t *testing.T) {
	_, cleanup, ctx, q := testSetup(t)
	defer cleanup()

	picsou := mustCreateUser(t, ctx, q, "picsou")
	donald := mustCreateUser(t, ctx, q, "donald")
	flairsou := mustCreateUser(t, ctx, q, "flairsou")
	mustCreateUser(t, ctx, q, "idle")

	now := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)
	tomorrow := now.AddDate(0, 0, 1)

	published := mustCreateArticle(t, ctx, q, articleParams("en", "published", yesterday))
	scheduled := mustCreateArticle(t, ctx, q, articleParams("en", "scheduled", tomorrow))
	french := mustCreateArticle(t, ctx, q, articleParams("fr", "publie", yesterday))

	setAuthors := func(articleID int64, userIDs ...int64) {
		t.Helper()
		if err := q.SetArticleAuthors(ctx, articleID, userIDs); err != nil {
			t.Fatalf("SetArticleAuthors: %v", err)
		}
	}
	setAuthors(published.ID, picsou.ID, donald.ID)
	setAuthors(scheduled.ID, donald.ID, flairsou.ID)
	setAuthors(french.ID, flairsou.ID)

	// Authors credited only on a scheduled article do not count yet.
	filter := ArticleFilter{Target: now, Language: "en", Private: boolPtr(false)}
	authors, err := q.ListActiveAuthors(ctx, ListActiveAuthorsParams{Filter: filter})
	if err != nil {
		t.Fatalf("ListActiveAuthors: %v", err)
	}
	got := make([]string, 0, len(authors))
	for _, a := range authors {
		got = append(got, a.Username)
	}
	if !equalStrings(got, []string{"donald", "picsou"}) {
		t.Errorf("active en authors = %v, want [donald picsou]", got)
	}

	n, err := q.CountActiveAuthors(ctx, filter)
	if err != nil {
		t.Fatalf("CountActiveAuthors: %v", err)
	}
	if n != 2 {
		t.Errorf("CountActiveAuthors = %d, want 2", n)
	}

	filter.Language = "fr"
	authors, err = q.ListActiveAuthors(ctx, ListActiveAuthorsParams{Filter: filter})
	if err != nil {
		t.Fatalf("ListActiveAuthors(fr): %v", err)
	}
	if len(authors) != 1 || authors[0].Username != "flairsou" {
		t.Errorf("active fr authors = %v, want [flairsou]", authors)
	}

	// After the scheduled article goes live its authors join the set.
	filter = ArticleFilter{Target: tomorrow.Add(time.Hour), Language: "en", Private: boolPtr(false)}
	n, err = q.CountActiveAuthors(ctx, filter)
	if err != nil {
		t.Fatalf("CountActiveAuthors(later): %v", err)
	}
	if n != 3 {
		t.Errorf("CountActiveAuthors after schedule = %d, want 3", n)
	}
}

func TestListAuthorAnnotations(t *testing.T) {
	_, cleanup, ctx, q := testSetup(t)
	defer cleanup()

	flairsou := mustCreateUser(t, ctx, q, "flairsou")

	now := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)

	cheese := mustCreateArticle(t, ctx, q, articleParams("en", "cheese", yesterday))
	fromage := mustCreateArticle(t, ctx, q, articleParams("fr", "fromage", yesterday))
	for _, id := range []int64{cheese.ID, fromage.ID} {
		if err := q.SetArticleAuthors(ctx, id, []int64{flairsou.ID}); err != nil {
			t.Fatalf("SetArticleAuthors: %v", err)
		}
	}

	annotations, err := q.ListAuthorAnnotations(ctx, now)
	if err != nil {
		t.Fatalf("ListAuthorAnnotations: %v", err)
	}
	if len(annotations) != 2 {
		t.Fatalf("annotations = %d, want 2 (one per language)", len(annotations))
	}
	if annotations[0].ArticleLanguage != "en" || annotations[1].ArticleLanguage != "fr" {
		t.Errorf("languages = %s, %s, want en, fr",
			annotations[0].ArticleLanguage, annotations[1].ArticleLanguage)
	}
	for _, a := range annotations {
		if a.Username != "flairsou" {
			t.Errorf("username = %q, want flairsou", a.Username)
		}
		if a.ArticleLatestUpdate.IsZero() {
			t.Errorf("latest update for %s is zero", a.ArticleLanguage)
		}
	}
}
