package templates

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"yatube/media"
)

// Page names.
const (
	Index       = "index"
	Group       = "group"
	Follow      = "follow"
	NewPost     = "new"
	Profile     = "profile"
	Post        = "post"
	Signup      = "signup"
	Login       = "login"
	AboutAuthor = "about_author"
	AboutTech   = "about_tech"
	NotFound    = "404"
	ServerError = "500"
)

//go:embed html
var files embed.FS

var funcs = template.FuncMap{
	"mediaURL": media.URL,
	"date": func(t time.Time) string {
		return t.Format("2 January 2006 15:04")
	},
	// pageURL keeps the current path and sets the page parameter.
	"pageURL": func(path string, n int) string {
		return path + "?" + url.Values{"page": {strconv.Itoa(n)}}.Encode()
	},
	"deref": func(id *uint) uint {
		if id == nil {
			return 0
		}
		return *id
	},
}

// Renderer executes named pages inside the shared layout.
type Renderer struct {
	pages map[string]*template.Template
}

// New parses the layout, the partials and every page.
func New() (*Renderer, error) {
	base, err := template.New("base").Funcs(funcs).ParseFS(files, "html/base.html", "html/partials/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	pageFiles, err := fs.Glob(files, "html/pages/*.html")
	if err != nil {
		return nil, err
	}
	r := &Renderer{pages: make(map[string]*template.Template, len(pageFiles))}
	for _, file := range pageFiles {
		t, err := template.Must(base.Clone()).ParseFS(files, file)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", file, err)
		}
		name := file[len("html/pages/") : len(file)-len(".html")]
		r.pages[name] = t
	}
	return r, nil
}

// Render writes page with data and status. The page is executed into a
// buffer first so a template error never leaves a half-written response.
func (r *Renderer) Render(w http.ResponseWriter, status int, page string, data any) error {
	t, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "base", data); err != nil {
		return fmt.Errorf("render %s: %w", page, err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
