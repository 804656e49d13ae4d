package catalog

import (
	"strings"
	"unicode"

	"github.com/stockpile/backend/internal/application/validation"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Slugify derives a URL slug from a display name: accents are stripped,
// letters lowered and runs of other characters collapsed to a single "-".
func Slugify(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, name)
	if err != nil {
		folded = name
	}

	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(folded) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// deriveSlug fills a blank slug from the name on create so the derived
// value goes through the uniqueness check.
func deriveSlug(in validation.Fields, op validation.Operation) validation.Fields {
	if op != validation.Create || in.Filled("slug") || !in.Filled("name") {
		return in
	}
	return in.Merge(validation.Fields{"slug": Slugify(in.String("name"))})
}
