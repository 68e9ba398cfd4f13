package handler

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/weblog-go/internal/config"
	"github.com/olegiv/weblog-go/internal/middleware"
	"github.com/olegiv/weblog-go/internal/model"
	"github.com/olegiv/weblog-go/internal/render"
	"github.com/olegiv/weblog-go/internal/testutil"
	"github.com/olegiv/weblog-go/web"
)

func testConfig() *config.Config {
	return &config.Config{
		Languages:          []string{"en", "fr"},
		DefaultLanguage:    "en",
		LocalePrefixes:     map[string]string{"fr": "/fr"},
		ArticlePagination:  10,
		CategoryPagination: 20,
		AuthorPagination:   20,
		TagPagination:      40,
		EnableTagIndex:     true,
		PreviewKeyword:     "preview",
		PreviewVarname:     "preview_mode",
	}
}

func newTestHandler(t *testing.T, cfg *config.Config) (*Handler, *scs.SessionManager) {
	t.Helper()

	renderer, err := render.New(web.Templates)
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}

	sessions := scs.New()
	return New(testutil.TestQueries(t), sessions, renderer, cfg, testutil.TestLoggerSilent()), sessions
}

// withViewer injects a fixed viewer, standing in for the session-backed
// viewer middleware.
func withViewer(v model.Viewer, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), middleware.ContextKeyViewer, v)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func staffViewer() model.Viewer {
	return model.Viewer{Now: time.Now().UTC(), Authenticated: true, Staff: true}
}
