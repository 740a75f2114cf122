// Package textutil provides text normalization helpers for matching
// keywords in French documents, where scans frequently lose or mangle
// diacritics.
package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold lowercases s and removes diacritical marks, so "Événements" and
// "evenements" compare equal.
func Fold(s string) string {
	folded, _, err := transform.String(stripMarks, s)
	if err != nil {
		return strings.ToLower(s)
	}
	return strings.ToLower(folded)
}

// ContainsFold reports whether s contains substr after folding both.
func ContainsFold(s, substr string) bool {
	return strings.Contains(Fold(s), Fold(substr))
}
