// Package slug derives and validates business slugs: the identifier used both
// as a URL path segment and as the business's subdomain label.
//
// Two character spaces coexist. Slugs generated from a business name contain
// only [a-z0-9]; slugs edited by the owner may also contain hyphens.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/google/uuid"
	gosimple "github.com/gosimple/slug"
)

// MaxLength is the maximum length of any slug.
const MaxLength = 50

var (
	editablePattern  = regexp.MustCompile(`^[a-z0-9-]{3,50}$`)
	generatedPattern = regexp.MustCompile(`^[a-z0-9]{3,50}$`)
)

// Slugify turns a free-text business name into a candidate slug.
//
// The result contains only lowercase ASCII letters and digits, never starts
// with a digit and is at most MaxLength long. Whitespace is removed rather than
// replaced, and every other character (punctuation, underscores, non-ASCII) is
// dropped. The result may be empty; callers decide on a fallback.
//
//	Slugify("A+ Library & Books") // "alibrarybooks"
//	Slugify("My Cool Shop 123")   // "mycoolshop123"
//	Slugify("123")                // ""
func Slugify(text string) string {
	if text == "" {
		return ""
	}

	s := strings.ToLower(strings.TrimSpace(text))

	var b strings.Builder
	b.Grow(min(len(s), MaxLength))
	for _, r := range s {
		if b.Len() == MaxLength {
			break
		}
		switch {
		case unicode.IsSpace(r):
			continue
		case r >= 'a' && r <= 'z':
			b.WriteRune(r)
		case r >= '0' && r <= '9':
			// a slug never starts with a digit
			if b.Len() > 0 {
				b.WriteRune(r)
			}
		}
	}
	return b.String()
}

// ValidEditable reports whether s is acceptable as an owner-edited slug:
// 3 to 50 characters of lowercase letters, digits and hyphens.
func ValidEditable(s string) bool {
	return editablePattern.MatchString(s)
}

// ValidGenerated reports whether s is a well-formed generated slug:
// 3 to 50 characters of lowercase letters and digits, no hyphens.
func ValidGenerated(s string) bool {
	return generatedPattern.MatchString(s)
}

// RandomSuffix returns a short lowercase hex disambiguator.
func RandomSuffix() string {
	return uuid.NewString()[:4]
}

// WithSuffix appends suffix to base, shortening base so the result stays
// within MaxLength.
func WithSuffix(base, suffix string) string {
	if len(suffix) >= MaxLength {
		return suffix[:MaxLength]
	}
	if keep := MaxLength - len(suffix); len(base) > keep {
		base = base[:keep]
	}
	return base + suffix
}

// Suggest proposes a hyphenated slug from a business name, transliterating
// non-ASCII characters. It returns "" when no valid editable slug results.
//
//	Suggest("Aadarsh Library") // "aadarsh-library"
func Suggest(name string) string {
	s := gosimple.Make(name)
	if len(s) > MaxLength {
		s = strings.TrimRight(s[:MaxLength], "-")
	}
	if !ValidEditable(s) {
		return ""
	}
	return s
}
