package game

import "strings"

// Normalize canonicalizes free-text input before any comparison: lowercase,
// strip everything outside [a-z] and spaces, collapse whitespace runs, trim.
// Digits, punctuation and accented characters are removed, not transliterated.
// Total function — never fails, and idempotent.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r)
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			b.WriteByte(' ')
		}
	}

	// Fields collapses internal runs and trims the edges in one pass.
	return strings.Join(strings.Fields(b.String()), " ")
}
