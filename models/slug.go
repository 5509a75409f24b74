package models

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const slugMaxLength = 50

var (
	slugStrip = regexp.MustCompile(`[^\w\s-]`)
	slugSpace = regexp.MustCompile(`[-\s]+`)
	slugValid = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)
)

// Slugify converts a title into a URL-safe ASCII token. Characters without
// an ASCII decomposition are dropped, so the result may be empty.
func Slugify(title string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, title)
	if err != nil {
		folded = title
	}

	var b strings.Builder
	for _, r := range folded {
		if r < unicode.MaxASCII {
			b.WriteRune(r)
		}
	}

	s := strings.ToLower(b.String())
	s = slugStrip.ReplaceAllString(s, "")
	s = slugSpace.ReplaceAllString(strings.TrimSpace(s), "-")
	s = strings.Trim(s, "-_")
	if len(s) > slugMaxLength {
		s = strings.TrimRight(s[:slugMaxLength], "-_")
	}
	return s
}

// ValidSlug reports whether s is made of letters, digits, hyphens and
// underscores only.
func ValidSlug(s string) bool {
	return len(s) <= slugMaxLength && slugValid.MatchString(s)
}
