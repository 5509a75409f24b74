package handlers

import (
	"net/http"

	"yatube/dto"
	"yatube/templates"
)

// AboutAuthor renders the static page about the project author.
func (h *Handler) AboutAuthor(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, templates.AboutAuthor, dto.StaticPage{Layout: h.layout(r)})
}

// AboutTech renders the static page about the technologies used.
func (h *Handler) AboutTech(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, templates.AboutTech, dto.StaticPage{Layout: h.layout(r)})
}

// NotFound renders the 404 page with the requested path.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusNotFound, templates.NotFound, dto.ErrorPage{
		Layout: h.layout(r),
		Status: http.StatusNotFound,
	})
}
