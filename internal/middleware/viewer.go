// Package middleware provides HTTP middleware for viewer context,
// language negotiation and API request handling.
package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/weblog-go/internal/model"
	"github.com/olegiv/weblog-go/internal/session"
)

// ContextKey is the type for middleware context keys.
type ContextKey string

// ContextKeyViewer is the context key for the resolved viewer.
const ContextKeyViewer ContextKey = "viewer"

// Viewer resolves the request's viewer from the session: authentication,
// staff capability and the preview toggle. The preview bit only takes
// effect for staff; a stale session flag on a demoted account is ignored.
func Viewer(sm *scs.SessionManager, previewKeyword string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			v := model.Viewer{
				Now:           time.Now().UTC(),
				Authenticated: session.UserID(ctx, sm) != 0,
				Staff:         session.IsStaff(ctx, sm),
			}
			if v.Staff {
				v.PreviewOn = session.PreviewOn(ctx, sm, previewKeyword)
			}

			ctx = context.WithValue(ctx, ContextKeyViewer, v)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetViewer retrieves the viewer from the request context, defaulting to
// an anonymous viewer at the current instant.
func GetViewer(r *http.Request) model.Viewer {
	if v, ok := r.Context().Value(ContextKeyViewer).(model.Viewer); ok {
		return v
	}
	return model.Anonymous(time.Now().UTC())
}
