package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalise folds s into the form used for stop matching: every whitespace
// or hyphen rune is removed, everything is lowercased and diacritics are
// stripped. Separators go first so the final NFC sees the joined string,
// which keeps Normalise(Normalise(s)) == Normalise(s).
func Normalise(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	for _, r := range s {
		if r == '-' || unicode.IsSpace(r) {
			continue
		}

		b.WriteRune(r)
	}

	lowered := strings.ToLower(b.String())

	stripped, _, err := transform.String(stripDiacritics(), lowered)
	if err != nil {
		return lowered
	}

	return stripped
}

// Contains reports whether the normalised form of needle is a substring of
// the normalised form of haystack.
func Contains(haystack string, needle string) bool {
	return strings.Contains(Normalise(haystack), Normalise(needle))
}

// A transform.Chain carries state so a fresh one is needed per call.
func stripDiacritics() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}
