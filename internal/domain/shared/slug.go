package shared

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// FoldAccents strips combining marks so "Café" becomes "Cafe"
func FoldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// Slugify lowercases text and collapses every run of characters outside
// [a-z0-9] into a single dash: "Gopal Ji's Store" → "gopal-ji-s-store".
func Slugify(text string) string {
	return buildSlug(text, func(r rune) sepAction { return separator })
}

// StrictSlugify lowercases text, turns whitespace and dashes into a single
// dash and drops other punctuation: "Kid's Top" → "kids-top".
func StrictSlugify(text string) string {
	return buildSlug(text, func(r rune) sepAction {
		if unicode.IsSpace(r) || r == '-' || r == '_' {
			return separator
		}
		return drop
	})
}

type sepAction int

const (
	separator sepAction = iota
	drop
)

func buildSlug(text string, classify func(rune) sepAction) string {
	folded := strings.ToLower(FoldAccents(text))
	var b strings.Builder
	b.Grow(len(folded))
	pendingDash := false
	for _, r := range folded {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
			continue
		}
		if classify(r) == separator {
			pendingDash = true
		}
	}
	return b.String()
}
