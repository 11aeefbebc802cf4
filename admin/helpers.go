package admin

import (
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var lower = cases.Lower(language.Und)

// Slugify turns text into a URL slug: lower case, whitespace runs become a
// hyphen, characters other than ASCII letters, digits, "_" and "-" are
// dropped, hyphen runs collapse and leading and trailing hyphens are
// trimmed.
//
//	Slugify("Hello, World!  Foo--Bar_Baz") == "hello-world-foo-bar_baz"
func Slugify(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	last := rune(0)
	for _, r := range lower.String(text) {
		switch {
		case unicode.IsSpace(r) || r == '-':
			r = '-'
			if last == '-' {
				continue
			}
		case isWord(r):
		default:
			continue
		}
		b.WriteRune(r)
		last = r
	}
	return strings.Trim(b.String(), "-")
}

func isWord(r rune) bool {
	return r == '_' || ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') || ('0' <= r && r <= '9')
}

// DateLayout is the date format used by FormatDate.
const DateLayout = time.DateOnly

// FormatDate formats t as an ISO 8601 date in UTC.
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}
