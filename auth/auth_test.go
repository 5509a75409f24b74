package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gorilla/securecookie"

	"yatube/models"
)

const testKey = "development-key-development-key!!"

type fakeUsers map[uint]*models.User

func (f fakeUsers) FindByID(_ context.Context, id uint) (*models.User, error) {
	if u, ok := f[id]; ok {
		return u, nil
	}
	return nil, errors.New("not found")
}

func sessionCookie(t *testing.T, rr *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rr.Result().Cookies() {
		if c.Name == SessionName {
			return c
		}
	}
	t.Fatal("session cookie not found")
	return nil
}

func TestLoginStoresUserInCookie(t *testing.T) {
	petya := &models.User{ID: 42, Username: "Petya"}
	s := NewSessions(testKey, fakeUsers{42: petya})

	rr := httptest.NewRecorder()
	if err := s.Login(rr, httptest.NewRequest(http.MethodPost, "/auth/login/", nil), petya); err != nil {
		t.Fatalf("login: %v", err)
	}
	cookie := sessionCookie(t, rr)

	// Decode the cookie the way a browser would send it back.
	codec := securecookie.New([]byte(testKey), nil)
	values := make(map[interface{}]interface{})
	if err := codec.Decode(SessionName, cookie.Value, &values); err != nil {
		t.Fatalf("decode session cookie: %v", err)
	}
	if values[userIDKey] != uint(42) {
		t.Fatalf("expected user id 42 in session, got %v", values[userIDKey])
	}

	var seen *models.User
	h := s.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = CurrentUser(r)
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	h.ServeHTTP(httptest.NewRecorder(), req)
	if seen == nil || seen.Username != "Petya" {
		t.Fatalf("expected Petya in context, got %+v", seen)
	}
}

func TestMiddlewareTreatsBadCookieAsGuest(t *testing.T) {
	s := NewSessions(testKey, fakeUsers{})
	called := false
	h := s.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		if CurrentUser(r) != nil {
			t.Error("expected guest")
		}
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionName, Value: "garbage"})
	h.ServeHTTP(httptest.NewRecorder(), req)
	if !called {
		t.Fatal("handler not called")
	}
}

func TestLogoutExpiresCookie(t *testing.T) {
	s := NewSessions(testKey, fakeUsers{})
	rr := httptest.NewRecorder()
	if err := s.Logout(rr, httptest.NewRequest(http.MethodGet, "/auth/logout/", nil)); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if c := sessionCookie(t, rr); c.MaxAge >= 0 {
		t.Fatalf("expected expired cookie, got MaxAge %d", c.MaxAge)
	}
}

func TestRequireLogin(t *testing.T) {
	h := RequireLogin(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/new/", nil))
	if rr.Code != http.StatusFound {
		t.Fatalf("expected redirect, got %d", rr.Code)
	}
	if loc := rr.Header().Get("Location"); loc != "/auth/login/?next=/new/" {
		t.Fatalf("unexpected redirect %q", loc)
	}

	rr = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/new/", nil)
	req = req.WithContext(WithUser(req.Context(), &models.User{ID: 1}))
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 for logged in user, got %d", rr.Code)
	}
}

func TestSafeNext(t *testing.T) {
	tests := map[string]string{
		"":                    "/",
		"/new/":               "/new/",
		"//evil.example":      "/",
		"https://evil.example": "/",
		`/\evil.example`:      "/",
	}
	for next, want := range tests {
		if got := SafeNext(next, "/"); got != want {
			t.Errorf("SafeNext(%q) = %q, want %q", next, got, want)
		}
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("password123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	user := &models.User{PwHash: hash}
	if err := CheckPassword(user, "password123"); err != nil {
		t.Fatalf("expected password to match: %v", err)
	}
	if err := CheckPassword(user, "wrongpassword"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginRedirectURLRoundTrips(t *testing.T) {
	for _, next := range []string{"/new/", "/leo/1/edit/", "/?page=2&x=a b"} {
		u, err := url.Parse(LoginRedirectURL(next))
		if err != nil {
			t.Fatalf("parse %q: %v", next, err)
		}
		if u.Path != LoginURL {
			t.Errorf("path = %q", u.Path)
		}
		if got := u.Query().Get("next"); got != next {
			t.Errorf("next = %q, want %q", got, next)
		}
	}
}
