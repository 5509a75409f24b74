package forms

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"

	"yatube/models"
)

var errNoGroup = errors.New("no group")

type fakeGroups map[uint]*models.Group

func (g fakeGroups) FindByID(_ context.Context, id uint) (*models.Group, error) {
	if group, ok := g[id]; ok {
		return group, nil
	}
	return nil, errNoGroup
}

// smallGIF is a 2x1 GIF image.
var smallGIF = []byte{
	0x47, 0x49, 0x46, 0x38, 0x39, 0x61, 0x02, 0x00,
	0x01, 0x00, 0x80, 0x00, 0x00, 0x00, 0x00, 0x00,
	0xFF, 0xFF, 0xFF, 0x21, 0xF9, 0x04, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x2C, 0x00, 0x00, 0x00, 0x00,
	0x02, 0x00, 0x01, 0x00, 0x00, 0x02, 0x02, 0x0C,
	0x0A, 0x00, 0x3B,
}

func TestPostFormValidation(t *testing.T) {
	groups := fakeGroups{7: {ID: 7, Title: "Группа"}}

	tests := []struct {
		name       string
		values     url.Values
		image      *Upload
		wantValid  bool
		wantErrors []string
	}{
		{"text only", url.Values{"text": {"тестовый текст"}}, nil, true, nil},
		{"whitespace text is accepted", url.Values{"text": {"   "}}, nil, true, nil},
		{"empty text", url.Values{"text": {""}}, nil, false, []string{"text"}},
		{"missing text", url.Values{}, nil, false, []string{"text"}},
		{"text at limit", url.Values{"text": {strings.Repeat("А", 200)}}, nil, true, nil},
		{"text too long", url.Values{"text": {strings.Repeat("А", 201)}}, nil, false, []string{"text"}},
		{"known group", url.Values{"text": {"t"}, "group": {"7"}}, nil, true, nil},
		{"unknown group", url.Values{"text": {"t"}, "group": {"8"}}, nil, false, []string{"group"}},
		{"garbage group", url.Values{"text": {"t"}, "group": {"x"}}, nil, false, []string{"group"}},
		{"gif image", url.Values{"text": {"t"}}, &Upload{Filename: "small.gif", Data: smallGIF}, true, nil},
		{"not an image", url.Values{"text": {"t"}}, &Upload{Filename: "a.gif", Data: []byte("plain text")}, false, []string{"image"}},
		{"empty text and bad group", url.Values{"group": {"8"}}, nil, false, []string{"text", "group"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewPostForm(tt.values, tt.image)
			ok, err := f.Valid(context.Background(), groups, errNoGroup)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if ok != tt.wantValid {
				t.Fatalf("valid = %v, want %v (errors: %s)", ok, tt.wantValid, f.Errors)
			}
			for _, field := range tt.wantErrors {
				if f.Errors.Get(field) == "" {
					t.Errorf("expected error on %q, got %s", field, f.Errors)
				}
			}
			if len(f.Errors) != len(tt.wantErrors) {
				t.Errorf("expected %d fields with errors, got %s", len(tt.wantErrors), f.Errors)
			}
			if f.Text != tt.values.Get("text") {
				t.Errorf("submitted text not kept: %q", f.Text)
			}
		})
	}
}

func TestPostFormLookupError(t *testing.T) {
	boom := errors.New("database down")
	f := NewPostForm(url.Values{"text": {"t"}, "group": {"1"}}, nil)

	_, err := f.Valid(context.Background(), failingGroups{boom}, errNoGroup)
	if !errors.Is(err, boom) {
		t.Fatalf("expected lookup error, got %v", err)
	}
}

type failingGroups struct{ err error }

func (g failingGroups) FindByID(context.Context, uint) (*models.Group, error) { return nil, g.err }

func TestPostFormApply(t *testing.T) {
	groups := fakeGroups{3: {ID: 3, Title: "g"}}
	groupID := uint(9)
	p := &models.Post{Text: "old", GroupID: &groupID}

	f := NewPostForm(url.Values{"text": {"new"}, "group": {"3"}}, nil)
	if ok, _ := f.Valid(context.Background(), groups, errNoGroup); !ok {
		t.Fatalf("expected valid form: %s", f.Errors)
	}
	f.Apply(p)
	if p.Text != "new" || p.GroupID == nil || *p.GroupID != 3 {
		t.Fatalf("unexpected post after apply: %+v", p)
	}

	f = NewPostForm(url.Values{"text": {"no group"}}, nil)
	if ok, _ := f.Valid(context.Background(), groups, errNoGroup); !ok {
		t.Fatal("expected valid form")
	}
	f.Apply(p)
	if p.GroupID != nil {
		t.Fatal("expected group cleared")
	}
}

func TestPostFormFrom(t *testing.T) {
	id := uint(4)
	f := PostFormFrom(&models.Post{Text: "hello", GroupID: &id})
	if f.Text != "hello" || !f.SelectedGroup(4) || f.SelectedGroup(5) {
		t.Fatalf("unexpected prefilled form %+v", f)
	}
}

func TestCommentForm(t *testing.T) {
	if f := NewCommentForm(url.Values{"text": {"Some random text first"}}); !f.Valid() {
		t.Fatalf("expected valid comment: %s", f.Errors)
	}
	f := NewCommentForm(url.Values{"comment_1": {"wrong field"}})
	if f.Valid() {
		t.Fatal("expected comment without text to be invalid")
	}
	if f.Errors.Get("text") != MsgRequired {
		t.Fatalf("unexpected error %q", f.Errors.Get("text"))
	}
}

func TestSignupForm(t *testing.T) {
	base := func() url.Values {
		return url.Values{
			"username":  {"Петя"},
			"email":     {"petya@example.com"},
			"password":  {"password123"},
			"password2": {"password123"},
		}
	}
	tests := []struct {
		name   string
		mutate func(url.Values)
		field  string
		msg    string
	}{
		{"valid", func(url.Values) {}, "", ""},
		{"empty username", func(v url.Values) { v.Set("username", "") }, "username", "You have to enter a username"},
		{"bad characters", func(v url.Values) { v.Set("username", "bad name") }, "username", "letters, digits"},
		{"reserved", func(v url.Values) { v.Set("username", "Follow") }, "username", "already taken"},
		{"single dot", func(v url.Values) { v.Set("username", ".") }, "username", "letter or digit"},
		{"double dot", func(v url.Values) { v.Set("username", "..") }, "username", "letter or digit"},
		{"dots around a name", func(v url.Values) { v.Set("username", ".leo.") }, "", ""},
		{"empty password", func(v url.Values) { v.Set("password", ""); v.Set("password2", "") }, "password", "You have to enter a password"},
		{"short password", func(v url.Values) { v.Set("password", "short"); v.Set("password2", "short") }, "password", "at least 8"},
		{"mismatch", func(v url.Values) { v.Set("password2", "password124") }, "password2", "The two passwords do not match"},
		{"invalid email", func(v url.Values) { v.Set("email", "invalid-email") }, "email", "valid email"},
		{"empty email allowed", func(v url.Values) { v.Set("email", "") }, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := base()
			tt.mutate(v)
			f := NewSignupForm(v)
			ok := f.Valid()
			if tt.field == "" {
				if !ok {
					t.Fatalf("expected valid, got %s", f.Errors)
				}
				return
			}
			if ok {
				t.Fatal("expected invalid form")
			}
			if !strings.Contains(f.Errors.Get(tt.field), tt.msg) {
				t.Fatalf("expected %q on %s, got %s", tt.msg, tt.field, f.Errors)
			}
		})
	}
}

func TestLoginForm(t *testing.T) {
	f := NewLoginForm(url.Values{"username": {"u"}, "password": {"p"}, "next": {"/new/"}})
	if !f.Valid() || f.Next != "/new/" {
		t.Fatalf("expected valid login form, got %+v", f)
	}
	f = NewLoginForm(url.Values{})
	if f.Valid() {
		t.Fatal("expected invalid login form")
	}
	if f.Errors.Get("username") == "" || f.Errors.Get("password") == "" {
		t.Fatalf("expected both fields flagged, got %s", f.Errors)
	}
}
