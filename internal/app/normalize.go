package app

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NFD, drop combining marks, recompose. Turns "Nazaré" into "Nazare".
var deaccent = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize canonicalizes a string for comparison: lower-case, accented
// letters reduced to their base letter, everything outside [a-z0-9] treated
// as a separator, separator runs (including embedded newlines) collapsed to
// a single space, trimmed. Idempotent; never fails, any input yields a
// string.
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ToLower(s)
	if out, _, err := transform.String(deaccent, s); err == nil {
		s = out
	}
	var b strings.Builder
	b.Grow(len(s))
	pending := false
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pending && b.Len() > 0 {
				b.WriteByte(' ')
			}
			pending = false
			b.WriteRune(r)
			continue
		}
		// whitespace and punctuation both separate tokens; OCR tends to
		// replace one with the other across line breaks
		pending = true
	}
	return b.String()
}
