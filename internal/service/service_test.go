package service

import (
	"context"
	"testing"

	"github.com/olegiv/weblog-go/internal/storage"
	"github.com/olegiv/weblog-go/internal/store"
	"github.com/olegiv/weblog-go/internal/testutil"
)

func testService(t *testing.T) (*Service, *store.Queries, context.Context) {
	t.Helper()

	db, cleanup := testutil.TestDB(t)
	t.Cleanup(cleanup)
	queries := store.New(db)

	disk, err := storage.NewDiskStorage(t.TempDir())
	if err != nil {
		t.Fatalf("NewDiskStorage: %v", err)
	}
	purger := storage.NewPurger(queries, disk, testutil.TestLoggerSilent())

	return New(db, queries, purger, testutil.TestLoggerSilent()), queries, context.Background()
}

// queuedRefs drains the purge queue into a set.
func queuedRefs(t *testing.T, ctx context.Context, q *store.Queries) map[string]bool {
	t.Helper()

	entries, err := q.DequeuePurgeBatch(ctx, 100)
	if err != nil {
		t.Fatalf("DequeuePurgeBatch: %v", err)
	}
	refs := make(map[string]bool, len(entries))
	for _, e := range entries {
		refs[e.Reference] = true
	}
	return refs
}

func hasCode(errs map[string][]string, field, code string) bool {
	for _, c := range errs[field] {
		if c == code {
			return true
		}
	}
	return false
}
