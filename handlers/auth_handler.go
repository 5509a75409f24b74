package handlers

import (
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"yatube/auth"
	"yatube/dto"
	"yatube/forms"
	"yatube/models"
	"yatube/monitoring"
	"yatube/repositories"
	"yatube/templates"
)

const msgUsernameTaken = "The username is already taken"

// Signup registers a user and logs them in.
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		h.render(w, r, http.StatusOK, templates.Signup, dto.SignupPage{Layout: h.layout(r), Form: forms.NewSignupForm(nil)})
		return
	}
	if err := r.ParseForm(); err != nil {
		h.badRequest(w, r, err)
		return
	}

	ctx := r.Context()
	form := forms.NewSignupForm(r.PostForm)
	if form.Valid() {
		exists, err := h.repos.Users.Exists(ctx, form.Username)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		if exists {
			form.Errors.Add("username", msgUsernameTaken)
		}
	}
	if form.Errors.Any() {
		monitoring.FormRejections.WithLabelValues("signup").Inc()
		h.render(w, r, http.StatusBadRequest, templates.Signup, dto.SignupPage{Layout: h.layout(r), Form: form})
		return
	}

	hash, err := auth.HashPassword(form.Password)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	user := &models.User{
		Username:  form.Username,
		Email:     form.Email,
		FirstName: form.FirstName,
		LastName:  form.LastName,
		PwHash:    hash,
	}
	if err := h.repos.Users.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrAlreadyExists) {
			form.Errors.Add("username", msgUsernameTaken)
			h.render(w, r, http.StatusBadRequest, templates.Signup, dto.SignupPage{Layout: h.layout(r), Form: form})
			return
		}
		h.fail(w, r, err)
		return
	}

	monitoring.RegisterSuccess.Inc()
	logrus.WithField("username", user.Username).Info("User registered")
	if err := h.sessions.Login(w, r, user); err != nil {
		h.fail(w, r, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusFound)
}

// Login checks credentials and starts a session.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		form := forms.NewLoginForm(nil)
		form.Next = r.URL.Query().Get("next")
		h.render(w, r, http.StatusOK, templates.Login, dto.LoginPage{Layout: h.layout(r), Form: form})
		return
	}
	if err := r.ParseForm(); err != nil {
		h.badRequest(w, r, err)
		return
	}

	form := forms.NewLoginForm(r.PostForm)
	if !form.Valid() {
		monitoring.LoginFailure.WithLabelValues("missing_fields").Inc()
		h.render(w, r, http.StatusBadRequest, templates.Login, dto.LoginPage{Layout: h.layout(r), Form: form})
		return
	}

	user, err := h.repos.Users.FindByUsername(r.Context(), form.Username)
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		monitoring.LoginFailure.WithLabelValues("unknown_user").Inc()
		h.rejectLogin(w, r, form)
		return
	case err != nil:
		h.fail(w, r, err)
		return
	}
	if err := auth.CheckPassword(user, form.Password); err != nil {
		monitoring.LoginFailure.WithLabelValues("wrong_password").Inc()
		h.rejectLogin(w, r, form)
		return
	}

	if err := h.sessions.Login(w, r, user); err != nil {
		h.fail(w, r, err)
		return
	}
	monitoring.LoginSuccess.Inc()
	http.Redirect(w, r, auth.SafeNext(form.Next, "/"), http.StatusFound)
}

// Logout ends the session.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Logout(w, r); err != nil {
		h.fail(w, r, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusFound)
}

func (h *Handler) rejectLogin(w http.ResponseWriter, r *http.Request, form *forms.LoginForm) {
	form.Errors.Add("__all__", auth.ErrInvalidCredentials.Error())
	h.render(w, r, http.StatusUnauthorized, templates.Login, dto.LoginPage{Layout: h.layout(r), Form: form})
}
