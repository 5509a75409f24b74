// Package cache holds a process-wide page cache. Entries expire after a TTL
// or when Clear is called; writes elsewhere never invalidate them.
package cache

import (
	"bytes"
	"net/http"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"yatube/monitoring"
)

// Page is a captured response.
type Page struct {
	Status int
	Header http.Header
	Body   []byte
}

// Pages caches rendered pages by key.
type Pages struct {
	store *gocache.Cache
	ttl   time.Duration
}

// NewPages creates a cache whose entries live for ttl. A zero ttl disables
// caching.
func NewPages(ttl time.Duration) *Pages {
	cleanup := 2 * ttl
	if cleanup <= 0 {
		cleanup = time.Minute
	}
	return &Pages{store: gocache.New(ttl, cleanup), ttl: ttl}
}

func (p *Pages) Get(key string) (*Page, bool) {
	v, ok := p.store.Get(key)
	if !ok {
		return nil, false
	}
	return v.(*Page), true
}

func (p *Pages) Set(key string, page *Page) {
	if p.ttl <= 0 {
		return
	}
	p.store.Set(key, page, gocache.DefaultExpiration)
}

// Clear drops every cached page.
func (p *Pages) Clear() {
	p.store.Flush()
}

func (p *Pages) Len() int {
	return p.store.ItemCount()
}

type captureWriter struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
}

func (w *captureWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *captureWriter) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

// Middleware serves GET requests from the cache, keyed by keyFn, and stores
// successful responses.
func (p *Pages) Middleware(keyFn func(*http.Request) string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				next.ServeHTTP(w, r)
				return
			}
			key := keyFn(r)
			if page, ok := p.Get(key); ok {
				monitoring.CacheHits.Inc()
				for k, v := range page.Header {
					w.Header()[k] = v
				}
				w.WriteHeader(page.Status)
				w.Write(page.Body)
				return
			}
			monitoring.CacheMisses.Inc()

			cw := &captureWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(cw, r)
			if cw.status != http.StatusOK {
				return
			}
			header := w.Header().Clone()
			header.Del("Set-Cookie")
			p.Set(key, &Page{
				Status: cw.status,
				Header: header,
				Body:   cw.buf.Bytes(),
			})
		})
	}
}
