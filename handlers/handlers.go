package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"yatube/auth"
	"yatube/dto"
	"yatube/forms"
	"yatube/media"
	"yatube/pagination"
	"yatube/repositories"
	"yatube/templates"
)

// maxUploadSize bounds a multipart post submission.
const maxUploadSize = 10 << 20

var errBadPostID = errors.New("malformed post id")

// Renderer turns a view model into a response.
type Renderer interface {
	Render(w http.ResponseWriter, status int, page string, data any) error
}

type Handler struct {
	repos    *repositories.Repositories
	sessions *auth.Sessions
	media    *media.Store
	views    Renderer
}

func NewHandler(repos *repositories.Repositories, sessions *auth.Sessions, store *media.Store, views Renderer) *Handler {
	return &Handler{
		repos:    repos,
		sessions: sessions,
		media:    store,
		views:    views,
	}
}

func (h *Handler) layout(r *http.Request) dto.Layout {
	return dto.Layout{Path: r.URL.Path, Viewer: auth.CurrentUser(r)}
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, page string, data any) {
	if err := h.views.Render(w, status, page, data); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"page": page,
			"path": r.URL.Path,
		}).Error("Failed to render page")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// fail maps err to a not-found page or logs it and shows the error page.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, repositories.ErrNotFound) || errors.Is(err, errBadPostID) {
		h.NotFound(w, r)
		return
	}
	logrus.WithError(err).WithFields(logrus.Fields{
		"method": r.Method,
		"path":   r.URL.Path,
	}).Error("Request failed")
	h.render(w, r, http.StatusInternalServerError, templates.ServerError, dto.ErrorPage{
		Layout: h.layout(r),
		Status: http.StatusInternalServerError,
	})
}

func pageNumber(r *http.Request) int {
	return pagination.ParseNumber(r.URL.Query().Get("page"))
}

func postID(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(mux.Vars(r)["post_id"], 10, 32)
	if err != nil {
		return 0, errBadPostID
	}
	return uint(id), nil
}

func postURL(username string, id uint) string {
	return "/" + username + "/" + strconv.FormatUint(uint64(id), 10) + "/"
}

func profileURL(username string) string {
	return "/" + username + "/"
}

// readImage returns the uploaded "image" file, or nil when none was sent.
func readImage(r *http.Request) (*forms.Upload, error) {
	file, header, err := r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 && header.Filename == "" {
		return nil, nil
	}
	return &forms.Upload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

// parsePostBody parses url-encoded or multipart bodies up to maxUploadSize.
func parsePostBody(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	err := r.ParseMultipartForm(maxUploadSize)
	if errors.Is(err, http.ErrNotMultipart) {
		return nil
	}
	return err
}
