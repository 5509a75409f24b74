package auth

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"yatube/models"
)

const (
	SessionName = "session-cookie"
	LoginURL    = "/auth/login/"

	userIDKey = "user_id"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

type contextKey struct{}

// UserFinder loads the user stored in the session.
type UserFinder interface {
	FindByID(ctx context.Context, id uint) (*models.User, error)
}

// Sessions wraps the cookie store holding the logged-in user id.
type Sessions struct {
	store sessions.Store
	users UserFinder
}

// NewSessions builds a cookie store keyed by key. An empty key generates a
// random one, which invalidates sessions on every restart.
func NewSessions(key string, users UserFinder) *Sessions {
	secret := []byte(key)
	if len(secret) == 0 {
		logrus.Warn("SESSION_KEY is not set, generating a random key")
		secret = securecookie.GenerateRandomKey(32)
	}
	store := sessions.NewCookieStore(secret)
	store.Options.HttpOnly = true
	store.Options.SameSite = http.SameSiteLaxMode
	store.MaxAge(86400 * 14)
	return &Sessions{store: store, users: users}
}

// Login stores the user id in the session cookie.
func (s *Sessions) Login(w http.ResponseWriter, r *http.Request, user *models.User) error {
	session, _ := s.store.Get(r, SessionName)
	session.Values[userIDKey] = user.ID
	return session.Save(r, w)
}

// Logout expires the session cookie.
func (s *Sessions) Logout(w http.ResponseWriter, r *http.Request) error {
	session, _ := s.store.Get(r, SessionName)
	delete(session.Values, userIDKey)
	session.Options.MaxAge = -1
	return session.Save(r, w)
}

// Middleware puts the session user, if any, into the request context. A
// broken cookie or a deleted user is treated as a guest.
func (s *Sessions) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, err := s.store.Get(r, SessionName)
		if err != nil {
			logrus.WithError(err).Debug("Ignoring undecodable session cookie")
			next.ServeHTTP(w, r)
			return
		}
		id, ok := session.Values[userIDKey].(uint)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}
		user, err := s.users.FindByID(r.Context(), id)
		if err != nil {
			logrus.WithError(err).WithField("user_id", id).Debug("Session user not found")
			next.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	})
}

// WithUser returns a context carrying user.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, contextKey{}, user)
}

// CurrentUser returns the authenticated user or nil for guests.
func CurrentUser(r *http.Request) *models.User {
	user, _ := r.Context().Value(contextKey{}).(*models.User)
	return user
}

// RequireLogin redirects guests to the login page with a next parameter.
func RequireLogin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if CurrentUser(r) == nil {
			http.Redirect(w, r, LoginRedirectURL(r.URL.RequestURI()), http.StatusFound)
			return
		}
		next(w, r)
	}
}

// LoginRedirectURL is the login page returning to next afterwards. Slashes
// in next are left readable.
func LoginRedirectURL(next string) string {
	return LoginURL + "?next=" + strings.ReplaceAll(url.QueryEscape(next), "%2F", "/")
}

// SafeNext returns next when it is a local path, otherwise fallback.
func SafeNext(next, fallback string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.Contains(next, `\`) {
		return fallback
	}
	return next
}

// HashPassword hashes a password for storage.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword compares a stored hash with a password.
func CheckPassword(user *models.User, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(user.PwHash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}
