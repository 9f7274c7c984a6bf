package source

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var asciiFold = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// foldName lowercases a name and strips combining diacritics so that
// "José Núñez" yields usable email local parts.
func foldName(s string) string {
	folded, _, err := transform.String(asciiFold, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(folded)
}

// splitName returns the first and last whitespace-separated tokens of a
// name. ok is false when the name has fewer than two tokens and no
// first/last split can be formed.
func splitName(name string) (first, last string, ok bool) {
	parts := strings.Fields(name)
	if len(parts) < 2 {
		return "", "", false
	}
	return parts[0], parts[len(parts)-1], true
}
