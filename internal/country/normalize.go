package country

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldReplacer rewrites symbols that carry meaning in country names.
var foldReplacer = strings.NewReplacer("&", " and ", "'", "", "’", "")

// NormalizeName folds a country name to its lookup key: diacritics removed,
// lowercased, punctuation turned into spaces and runs of spaces collapsed.
// "Côte d'Ivoire" and "COTE DIVOIRE" both become "cote divoire".
func NormalizeName(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	folded = foldReplacer.Replace(strings.ToLower(folded))

	var b strings.Builder
	b.Grow(len(folded))
	space := false
	for _, r := range folded {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if space && b.Len() > 0 {
				b.WriteByte(' ')
			}
			space = false
			b.WriteRune(r)
			continue
		}
		space = true
	}
	return b.String()
}
