package jigsaw

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Sanitizer: facts reach the layout engine as letters, digits, whitespace
// and a fixed punctuation allowlist only. Input is NFC-normalized first so
// decomposed accents survive as single allowed letters instead of being
// half-stripped.

// allowedPunct is the punctuation permitted in fact text.
var allowedPunct = map[rune]bool{
	'.': true, ',': true, '!': true, '?': true, ';': true, ':': true,
	'\'': true, '"': true, '-': true, '(': true, ')': true,
	'%': true, '&': true, '/': true, '+': true,
}

func allowedRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) || allowedPunct[r]
}

var sanitizer = transform.Chain(
	norm.NFC,
	runes.Remove(runes.Predicate(func(r rune) bool { return !allowedRune(r) })),
)

// Sanitize strips disallowed characters from raw fact text and collapses
// runs of whitespace. It never fails: if the transform chain errors on
// malformed input the offending bytes are simply dropped.
func Sanitize(text string) string {
	cleaned, _, err := transform.String(sanitizer, text)
	if err != nil {
		var b strings.Builder
		for _, r := range text {
			if allowedRune(r) {
				b.WriteRune(r)
			}
		}
		cleaned = b.String()
	}
	return strings.Join(strings.Fields(cleaned), " ")
}
