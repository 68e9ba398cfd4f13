package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/olegiv/weblog-go/internal/model"
)

func testLanguages() model.Languages {
	return model.Languages{
		{Code: "en", Name: "English", IsDefault: true},
		{Code: "fr", Name: "French", URLPrefix: "/fr"},
		{Code: "de", Name: "German", URLPrefix: "/de"},
	}
}

func resolve(t *testing.T, target string, header http.Header) model.Language {
	t.Helper()

	var got model.Language
	handler := Language(testLanguages())(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		lang, ok := GetLanguage(r)
		if !ok {
			t.Fatal("language missing from context")
		}
		if code := GetLanguageCode(r); code != lang.Code {
			t.Errorf("GetLanguageCode = %q, want %q", code, lang.Code)
		}
		got = lang
	}))

	r := httptest.NewRequest(http.MethodGet, target, nil)
	for k, vs := range header {
		for _, v := range vs {
			r.Header.Add(k, v)
		}
	}
	handler.ServeHTTP(httptest.NewRecorder(), r)
	return got
}

func TestLanguageResolutionOrder(t *testing.T) {
	cases := []struct {
		name   string
		target string
		header http.Header
		want   string
	}{
		{"default", "/articles/", nil, "en"},
		{"url prefix", "/fr/articles/", nil, "fr"},
		{"url prefix exact", "/de", nil, "de"},
		{"prefix beats query", "/fr/articles/?lang=de", nil, "fr"},
		{"query parameter", "/articles/?lang=de", nil, "de"},
		{"query case insensitive", "/articles/?lang=FR", nil, "fr"},
		{"query unknown falls through", "/articles/?lang=xx", nil, "en"},
		{
			"accept-language", "/articles/",
			http.Header{"Accept-Language": []string{"de-DE,de;q=0.9,en;q=0.5"}},
			"de",
		},
		{
			"query beats accept-language", "/articles/?lang=fr",
			http.Header{"Accept-Language": []string{"de"}},
			"fr",
		},
		{
			"accept-language unknown", "/articles/",
			http.Header{"Accept-Language": []string{"zz"}},
			"en",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := resolve(t, tc.target, tc.header); got.Code != tc.want {
				t.Errorf("language = %s, want %s", got.Code, tc.want)
			}
		})
	}
}

func TestLanguagePrefixNoFalseMatch(t *testing.T) {
	// "/frost/" shares the prefix bytes but not the path segment.
	if got := resolve(t, "/frost/", nil); got.Code != "en" {
		t.Errorf("language = %s, want en", got.Code)
	}
}
