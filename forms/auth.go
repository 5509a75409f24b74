package forms

import (
	"net/mail"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	usernameMaxLength = 150
	passwordMinLength = 8
)

var usernamePattern = regexp.MustCompile(`^[\p{L}\p{N}_.@+-]+$`)

// reservedUsernames collide with top-level routes.
var reservedUsernames = map[string]bool{
	"new": true, "follow": true, "group": true, "about": true,
	"auth": true, "media": true, "metrics": true, "static": true,
}

// SignupForm carries the registration fields.
type SignupForm struct {
	Username  string
	Email     string
	FirstName string
	LastName  string
	Password  string
	Password2 string
	Errors    Errors
}

func NewSignupForm(values url.Values) *SignupForm {
	return &SignupForm{
		Username:  strings.TrimSpace(values.Get("username")),
		Email:     strings.TrimSpace(values.Get("email")),
		FirstName: strings.TrimSpace(values.Get("first_name")),
		LastName:  strings.TrimSpace(values.Get("last_name")),
		Password:  values.Get("password"),
		Password2: values.Get("password2"),
		Errors:    Errors{},
	}
}

// Valid checks the fields that need no storage lookup; uniqueness is
// checked by the caller.
func (f *SignupForm) Valid() bool {
	f.Errors = Errors{}

	switch {
	case f.Username == "":
		f.Errors.Add("username", "You have to enter a username")
	case utf8.RuneCountInString(f.Username) > usernameMaxLength:
		f.Errors.Add("username", "Username is too long")
	case !usernamePattern.MatchString(f.Username):
		f.Errors.Add("username", "Username may contain only letters, digits and @/./+/-/_ characters")
	case reservedUsernames[strings.ToLower(f.Username)]:
		f.Errors.Add("username", "The username is already taken")
	case strings.Trim(f.Username, ".") == "":
		// "/./" and "/../" are cleaned away by the router.
		f.Errors.Add("username", "Username must contain a letter or digit")
	}

	if f.Email != "" {
		if _, err := mail.ParseAddress(f.Email); err != nil || !strings.Contains(f.Email, "@") {
			f.Errors.Add("email", "You have to enter a valid email address")
		}
	}

	switch {
	case f.Password == "":
		f.Errors.Add("password", "You have to enter a password")
	case utf8.RuneCountInString(f.Password) < passwordMinLength:
		f.Errors.Add("password", "The password must contain at least 8 characters")
	case f.Password != f.Password2:
		f.Errors.Add("password2", "The two passwords do not match")
	}

	return !f.Errors.Any()
}

// LoginForm carries the credentials and the page to return to.
type LoginForm struct {
	Username string
	Password string
	Next     string
	Errors   Errors
}

func NewLoginForm(values url.Values) *LoginForm {
	return &LoginForm{
		Username: strings.TrimSpace(values.Get("username")),
		Password: values.Get("password"),
		Next:     values.Get("next"),
		Errors:   Errors{},
	}
}

func (f *LoginForm) Valid() bool {
	f.Errors = Errors{}
	if f.Username == "" {
		f.Errors.Add("username", "You have to enter a username")
	}
	if f.Password == "" {
		f.Errors.Add("password", "You have to enter a password")
	}
	return !f.Errors.Any()
}
