package util

import "testing"

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Hello World", "hello-world"},
		{"Éloge du camembert", "eloge-du-camembert"},
		{"Über Käse!", "uber-kase"},
		{"Привет мир", "privet-mir"},
		{"  spaces   everywhere  ", "spaces-everywhere"},
		{"C++ & Go: a tale", "c-go-a-tale"},
		{"---already--hyphenated---", "already-hyphenated"},
		{"", ""},
	}

	for _, tc := range cases {
		if got := Slugify(tc.in); got != tc.want {
			t.Errorf("Slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestIsValidSlug(t *testing.T) {
	valid := []string{"hello", "hello-world", "a1-b2", "2026"}
	for _, s := range valid {
		if !IsValidSlug(s) {
			t.Errorf("IsValidSlug(%q) = false, want true", s)
		}
	}

	invalid := []string{"", "Hello", "hello world", "-leading", "trailing-", "double--hyphen", "accentué"}
	for _, s := range invalid {
		if IsValidSlug(s) {
			t.Errorf("IsValidSlug(%q) = true, want false", s)
		}
	}
}
