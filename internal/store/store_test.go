package store

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	"github.com/olegiv/weblog-go/internal/model"
)

// testDB creates a temporary test database.
func testDB(t *testing.T) (*sql.DB, func()) {
	t.Helper()

	f, err := os.CreateTemp(t.TempDir(), "weblog-test-*.db")
	if err != nil {
		t.Fatalf("creating temp file: %v", err)
	}
	dbPath := f.Name()
	_ = f.Close()

	db, err := NewDB(dbPath)
	if err != nil {
		os.Remove(dbPath)
		t.Fatalf("NewDB: %v", err)
	}

	if err := Migrate(db); err != nil {
		db.Close()
		os.Remove(dbPath)
		t.Fatalf("Migrate: %v", err)
	}

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}

	return db, cleanup
}

func testSetup(t *testing.T) (*sql.DB, func(), context.Context, *Queries) {
	t.Helper()
	db, cleanup := testDB(t)
	return db, cleanup, context.Background(), New(db)
}

// articleParams builds a publishable article at midnight of date.
func articleParams(lang, slug string, date time.Time) CreateArticleParams {
	return CreateArticleParams{
		Language:    lang,
		Status:      model.StatusAvailable,
		PublishDate: date,
		PublishTime: timeOfDay(0, 0),
		Title:       slug,
		Slug:        slug,
	}
}

func mustCreateArticle(t *testing.T, ctx context.Context, q *Queries, p CreateArticleParams) model.Article {
	t.Helper()
	a, err := q.CreateArticle(ctx, p)
	if err != nil {
		t.Fatalf("CreateArticle(%s): %v", p.Slug, err)
	}
	return a
}

func mustCreateCategory(t *testing.T, ctx context.Context, q *Queries, p CreateCategoryParams) model.Category {
	t.Helper()
	c, err := q.CreateCategory(ctx, p)
	if err != nil {
		t.Fatalf("CreateCategory(%s): %v", p.Slug, err)
	}
	return c
}

func mustCreateUser(t *testing.T, ctx context.Context, q *Queries, username string) model.User {
	t.Helper()
	u, err := q.CreateUser(ctx, CreateUserParams{Username: username})
	if err != nil {
		t.Fatalf("CreateUser(%s): %v", username, err)
	}
	return u
}

func slugs(articles []model.Article) []string {
	out := make([]string, 0, len(articles))
	for _, a := range articles {
		out = append(out, a.Slug)
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func ref(id int64) sql.NullInt64 {
	return sql.NullInt64{Int64: id, Valid: true}
}

func timeOfDay(hour, minute int) time.Time {
	return time.Date(0, 1, 1, hour, minute, 0, 0, time.UTC)
}
