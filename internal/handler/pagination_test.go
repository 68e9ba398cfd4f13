package handler

import (
	"net/http/httptest"
	"testing"
)

func TestBuildPagination(t *testing.T) {
	p := BuildPagination(2, 45, 10, "/articles/")
	if p.TotalPages != 5 {
		t.Errorf("TotalPages = %d, want 5", p.TotalPages)
	}
	if !p.HasPrev || !p.HasNext {
		t.Errorf("page 2 of 5 should have both neighbours, got prev=%v next=%v", p.HasPrev, p.HasNext)
	}
	if p.Offset() != 10 {
		t.Errorf("Offset = %d, want 10", p.Offset())
	}
	if p.PrevURL() != "/articles/?page=1" || p.NextURL() != "/articles/?page=3" {
		t.Errorf("links = %s / %s", p.PrevURL(), p.NextURL())
	}
	if !p.ShouldShow() {
		t.Error("multi-page listing should show pagination")
	}
}

func TestBuildPaginationClamping(t *testing.T) {
	// Past the end clamps to the last page.
	p := BuildPagination(99, 45, 10, "/articles/")
	if p.CurrentPage != 5 || p.HasNext {
		t.Errorf("clamped page = %d (next=%v), want 5 (false)", p.CurrentPage, p.HasNext)
	}

	// Below the start clamps to the first.
	p = BuildPagination(0, 45, 10, "/articles/")
	if p.CurrentPage != 1 || p.HasPrev {
		t.Errorf("clamped page = %d (prev=%v), want 1 (false)", p.CurrentPage, p.HasPrev)
	}

	// An empty listing still has one page.
	p = BuildPagination(1, 0, 10, "/articles/")
	if p.TotalPages != 1 || p.ShouldShow() {
		t.Errorf("empty listing pages = %d, should not show", p.TotalPages)
	}
}

func TestBuildPaginationDisabled(t *testing.T) {
	p := BuildPagination(3, 500, 0, "/articles/")
	if p.TotalPages != 1 || p.CurrentPage != 1 {
		t.Errorf("disabled pagination = %+v, want a single page", p)
	}
	if p.Offset() != 0 {
		t.Errorf("Offset = %d, want 0", p.Offset())
	}
	if p.ShouldShow() {
		t.Error("disabled pagination should not show")
	}
}

func TestPageParam(t *testing.T) {
	cases := []struct {
		query string
		want  int64
	}{
		{"", 1},
		{"?page=3", 3},
		{"?page=0", 1},
		{"?page=-2", 1},
		{"?page=abc", 1},
	}
	for _, tc := range cases {
		r := httptest.NewRequest("GET", "/articles/"+tc.query, nil)
		if got := pageParam(r); got != tc.want {
			t.Errorf("pageParam(%q) = %d, want %d", tc.query, got, tc.want)
		}
	}
}
