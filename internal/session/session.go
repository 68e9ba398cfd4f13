package session

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
)

// Session keys. The preview key is configurable; these are the fixed ones.
const (
	KeyUserID  = "user_id"
	KeyIsStaff = "is_staff"
)

// New creates a new session manager configured with SQLite store.
func New(db *sql.DB, isDev bool) *scs.SessionManager {
	sm := scs.New()

	sm.Store = sqlite3store.New(db)

	sm.Lifetime = 24 * time.Hour
	sm.Cookie.HttpOnly = true
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Secure = !isDev // Secure cookies in production only

	return sm
}

// SetUser records the signed-in user in the session.
func SetUser(ctx context.Context, sm *scs.SessionManager, userID int64, isStaff bool) {
	sm.Put(ctx, KeyUserID, userID)
	sm.Put(ctx, KeyIsStaff, isStaff)
}

// UserID returns the signed-in user id, zero when anonymous.
func UserID(ctx context.Context, sm *scs.SessionManager) int64 {
	return sm.GetInt64(ctx, KeyUserID)
}

// IsStaff reports whether the signed-in user has staff capability.
func IsStaff(ctx context.Context, sm *scs.SessionManager) bool {
	return sm.GetBool(ctx, KeyIsStaff)
}

// SetPreview stores the preview toggle under the configured keyword.
func SetPreview(ctx context.Context, sm *scs.SessionManager, keyword string, on bool) {
	if on {
		sm.Put(ctx, keyword, true)
		return
	}
	sm.Remove(ctx, keyword)
}

// PreviewOn reads the preview toggle under the configured keyword.
func PreviewOn(ctx context.Context, sm *scs.SessionManager, keyword string) bool {
	return sm.GetBool(ctx, keyword)
}
