package store

import (
	"testing"
	"time"
)

func TestEventLog(t *testing.T) {
	_, cleanup, ctx, q := testSetup(t)
	defer cleanup()

	old := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	recent := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

	entries := []CreateEventParams{
		{Level: "warn", Category: "system", Message: "old warning", CreatedAt: old},
		{Level: "error", Category: "system", Message: "recent error", CreatedAt: recent},
		{Level: "warn", Category: "content", Message: "recent warning", CreatedAt: recent.Add(time.Hour)},
	}
	for _, p := range entries {
		if err := q.CreateEvent(ctx, p); err != nil {
			t.Fatalf("CreateEvent(%s): %v", p.Message, err)
		}
	}

	// Zero CreatedAt means now; metadata defaults to an empty object.
	if err := q.CreateEvent(ctx, CreateEventParams{Level: "info", Category: "system", Message: "just now"}); err != nil {
		t.Fatalf("CreateEvent(now): %v", err)
	}

	all, err := q.ListEvents(ctx, ListEventsParams{})
	if err != nil {
		t.Fatalf("ListEvents: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("events = %d, want 4", len(all))
	}
	if all[0].Message != "just now" || all[3].Message != "old warning" {
		t.Errorf("order = [%s ... %s], want newest first", all[0].Message, all[3].Message)
	}
	if all[0].Metadata != "{}" {
		t.Errorf("default metadata = %q, want {}", all[0].Metadata)
	}

	warns, err := q.ListEvents(ctx, ListEventsParams{Level: "warn"})
	if err != nil {
		t.Fatalf("ListEvents(warn): %v", err)
	}
	if len(warns) != 2 {
		t.Errorf("warn events = %d, want 2", len(warns))
	}

	system, err := q.ListEvents(ctx, ListEventsParams{Level: "warn", Category: "system"})
	if err != nil {
		t.Fatalf("ListEvents(warn, system): %v", err)
	}
	if len(system) != 1 || system[0].Message != "old warning" {
		t.Errorf("warn system events = %v, want [old warning]", system)
	}

	limited, err := q.ListEvents(ctx, ListEventsParams{Limit: 2, Offset: 1})
	if err != nil {
		t.Fatalf("ListEvents(limit): %v", err)
	}
	if len(limited) != 2 || limited[0].Message != "recent warning" {
		t.Errorf("paged events = %v, want [recent warning, recent error]", limited)
	}

	pruned, err := q.PruneEvents(ctx, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("PruneEvents: %v", err)
	}
	if pruned != 1 {
		t.Errorf("pruned = %d, want 1", pruned)
	}
	n, err := q.CountEvents(ctx)
	if err != nil {
		t.Fatalf("CountEvents: %v", err)
	}
	if n != 3 {
		t.Errorf("remaining events = %d, want 3", n)
	}
}
