package media

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// URLPrefix is where stored files are served from.
const URLPrefix = "/media/"

const postsDir = "posts"

var (
	ErrEmptyFile = errors.New("empty file")
	ErrNotImage  = errors.New("unsupported image type")
)

// imageExtensions maps sniffed content types to the extension files are
// stored under, which in turn fixes the type they are served with.
var imageExtensions = map[string]string{
	"image/gif":  ".gif",
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/webp": ".webp",
}

// Store saves uploaded images under a root directory.
type Store struct {
	root string
}

// NewStore creates root if needed.
func NewStore(root string) (*Store, error) {
	if err := os.MkdirAll(filepath.Join(root, postsDir), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create media root: %w", err)
	}
	return &Store{root: root}, nil
}

// SavePostImage writes data under a fresh name and returns the relative
// path stored on the post, e.g. "posts/<uuid>.gif". The extension follows
// the sniffed content, never the client's file name.
func (s *Store) SavePostImage(data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyFile
	}
	ext, ok := ImageExtension(data)
	if !ok {
		return "", ErrNotImage
	}
	name := uuid.NewString() + ext
	rel := path.Join(postsDir, name)
	if err := os.WriteFile(filepath.Join(s.root, filepath.FromSlash(rel)), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to save image: %w", err)
	}
	return rel, nil
}

// Remove deletes a previously stored file; a missing file is not an error.
func (s *Store) Remove(rel string) error {
	if rel == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.root, filepath.FromSlash(path.Clean("/" + rel))))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove image: %w", err)
	}
	return nil
}

// Handler serves stored files under URLPrefix without directory listings.
func (s *Store) Handler() http.Handler {
	fs := http.FileServer(http.Dir(s.root))
	return http.StripPrefix(URLPrefix, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "" || strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("X-Content-Type-Options", "nosniff")
		fs.ServeHTTP(w, r)
	}))
}

// URL returns the public URL of a stored path.
func URL(rel string) string {
	if rel == "" {
		return ""
	}
	return URLPrefix + rel
}

// ImageExtension reports the stored extension for data, and false when data
// is not an image type the store accepts.
func ImageExtension(data []byte) (string, bool) {
	ext, ok := imageExtensions[http.DetectContentType(data)]
	return ext, ok
}
