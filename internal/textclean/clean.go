package textclean

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldAccents maps "café" to "cafe" and "Zoë" to "Zoe".
func foldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// CleanText lowercases text, folds accents, replaces everything that is not a
// letter or digit with a space and drops stopwords. The result is a single
// space-separated string of the remaining words.
func CleanText(text string, stopwords Stopwords) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}

	folded := foldAccents(strings.ToLower(text))
	stripped := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return ' '
	}, folded)

	fields := strings.Fields(stripped)
	kept := fields[:0]
	for _, word := range fields {
		if stopwords.Contains(word) {
			continue
		}
		kept = append(kept, word)
	}
	return strings.Join(kept, " ")
}
