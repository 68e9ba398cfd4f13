package middleware

import (
	"context"
	"net/http"
	"strings"

	"golang.org/x/text/language"

	"github.com/olegiv/weblog-go/internal/model"
)

// Context keys for language data.
const (
	ContextKeyLanguage     ContextKey = "language"
	ContextKeyLanguageCode ContextKey = "language_code"
)

// Language creates middleware that resolves the request language.
// Priority order:
// 1. URL locale prefix configured for a language (e.g. /fr/...)
// 2. Query parameter ?lang=XX (explicit language switch)
// 3. Accept-Language header, matched against the configured languages
// 4. Default language
func Language(langs model.Languages) func(http.Handler) http.Handler {
	tags := make([]language.Tag, 0, len(langs))
	for _, l := range langs {
		tags = append(tags, language.Make(l.Code))
	}
	matcher := language.NewMatcher(tags)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang := resolveLanguage(r, langs, matcher)

			ctx := context.WithValue(r.Context(), ContextKeyLanguage, lang)
			ctx = context.WithValue(ctx, ContextKeyLanguageCode, lang.Code)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func resolveLanguage(r *http.Request, langs model.Languages, matcher language.Matcher) model.Language {
	// 1. URL locale prefix.
	for _, l := range langs {
		if l.URLPrefix == "" {
			continue
		}
		if r.URL.Path == l.URLPrefix || strings.HasPrefix(r.URL.Path, l.URLPrefix+"/") {
			return l
		}
	}

	// 2. Explicit switch.
	if code := r.URL.Query().Get("lang"); code != "" {
		if l, ok := langs.ByCode(strings.ToLower(code)); ok {
			return l
		}
	}

	// 3. Accept-Language negotiation.
	if accept := r.Header.Get("Accept-Language"); accept != "" {
		if wanted, _, err := language.ParseAcceptLanguage(accept); err == nil {
			_, index, conf := matcher.Match(wanted...)
			if conf > language.No && index < len(langs) {
				return langs[index]
			}
		}
	}

	// 4. Default.
	return langs.Default()
}

// GetLanguage retrieves the negotiated language from the request context.
func GetLanguage(r *http.Request) (model.Language, bool) {
	l, ok := r.Context().Value(ContextKeyLanguage).(model.Language)
	return l, ok
}

// GetLanguageCode retrieves the negotiated language code, empty when the
// middleware did not run.
func GetLanguageCode(r *http.Request) string {
	code, _ := r.Context().Value(ContextKeyLanguageCode).(string)
	return code
}
