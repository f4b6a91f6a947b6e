// Package session wraps scs with typed accessors for the auth session.
// It is the single place the bearer token and its display claims live;
// components receive a *Session instead of reading ambient storage.
package session

import (
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"

	"github.com/inkwellhq/inkwell/internal/model"
	"github.com/inkwellhq/inkwell/internal/token"
)

// Session keys. The token is opaque; name/email/image are display claims
// decoded at sign-in and never treated as authorization.
const (
	keyToken        = "auth_token"
	keyName         = "display_name"
	keyEmail        = "email"
	keyProfileImage = "profile_image"

	keyViewedProfileName  = "viewed_profile_name"
	keyViewedProfileEmail = "viewed_profile_email"
	keyViewedProfileImage = "viewed_profile_image"

	viewedPostPrefix = "viewed_post_"
)

// NewManager creates a session manager backed by the SQLite store.
func NewManager(db *sql.DB, isDev bool) *scs.SessionManager {
	sm := scs.New()
	sm.Store = sqlite3store.New(db)
	sm.Lifetime = 24 * time.Hour
	sm.Cookie.HttpOnly = true
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Secure = !isDev

	return sm
}

// Session gives typed access to the current visitor's session state.
type Session struct {
	sm *scs.SessionManager
}

// New wraps a session manager.
func New(sm *scs.SessionManager) *Session {
	return &Session{sm: sm}
}

// Manager exposes the underlying scs manager for middleware wiring.
func (s *Session) Manager() *scs.SessionManager {
	return s.sm
}

// SignIn stores the bearer token and the display claims decoded from its
// payload. A token whose payload cannot be decoded still signs the user
// in; the display fields just stay empty.
func (s *Session) SignIn(r *http.Request, bearer string) {
	ctx := r.Context()
	s.sm.Put(ctx, keyToken, bearer)

	claims, err := token.DecodeDisplayClaims(bearer)
	if err != nil {
		return
	}
	s.sm.Put(ctx, keyName, claims.Name)
	s.sm.Put(ctx, keyEmail, claims.Email)
	s.sm.Put(ctx, keyProfileImage, claims.ProfileImage)
}

// RefreshDisplay updates the stored display fields after a profile edit,
// without touching the token.
func (s *Session) RefreshDisplay(r *http.Request, user model.User) {
	ctx := r.Context()
	s.sm.Put(ctx, keyName, user.Name)
	s.sm.Put(ctx, keyProfileImage, user.ProfileImage)
}

// SignOut destroys the session.
func (s *Session) SignOut(r *http.Request) error {
	return s.sm.Destroy(r.Context())
}

// Token returns the stored bearer token, or "" when signed out.
func (s *Session) Token(r *http.Request) string {
	return s.sm.GetString(r.Context(), keyToken)
}

// IsAuthenticated reports whether a bearer token is present. Presence is
// a UI signal only; the API rejects stale or invalid tokens itself.
func (s *Session) IsAuthenticated(r *http.Request) bool {
	return s.Token(r) != ""
}

// Name returns the signed-in user's display name.
func (s *Session) Name(r *http.Request) string {
	return s.sm.GetString(r.Context(), keyName)
}

// Email returns the signed-in user's email.
func (s *Session) Email(r *http.Request) string {
	return s.sm.GetString(r.Context(), keyEmail)
}

// ProfileImage returns the signed-in user's avatar URL.
func (s *Session) ProfileImage(r *http.Request) string {
	return s.sm.GetString(r.Context(), keyProfileImage)
}

// CacheViewedProfile remembers the most recently viewed profile so the
// profile page can render its header before the fetch completes.
func (s *Session) CacheViewedProfile(r *http.Request, user model.User) {
	ctx := r.Context()
	s.sm.Put(ctx, keyViewedProfileName, user.Name)
	s.sm.Put(ctx, keyViewedProfileEmail, user.Email)
	s.sm.Put(ctx, keyViewedProfileImage, user.ProfileImage)
}

// ViewedProfile returns the cached recently viewed profile, if any.
func (s *Session) ViewedProfile(r *http.Request) (model.User, bool) {
	ctx := r.Context()
	email := s.sm.GetString(ctx, keyViewedProfileEmail)
	if email == "" {
		return model.User{}, false
	}
	return model.User{
		Name:         s.sm.GetString(ctx, keyViewedProfileName),
		Email:        email,
		ProfileImage: s.sm.GetString(ctx, keyViewedProfileImage),
	}, true
}

// MarkViewed records that a view increment was sent for a post, so a
// second render in the same session does not send another.
func (s *Session) MarkViewed(r *http.Request, postID int64) {
	s.sm.Put(r.Context(), viewedPostKey(postID), true)
}

// HasViewed reports whether a view increment was already sent for a post
// during this session.
func (s *Session) HasViewed(r *http.Request, postID int64) bool {
	return s.sm.GetBool(r.Context(), viewedPostKey(postID))
}

func viewedPostKey(postID int64) string {
	return viewedPostPrefix + strconv.FormatInt(postID, 10)
}
