package clashgo

import "strings"

// tagAlphabet is the character set the game generates tags from.
const tagAlphabet = "0289PYLQGRJCUV"

// NormalizeTag canonicalizes a clan or player tag: it uppercases, strips
// every character outside A-Z and 0-9, folds the letter O to zero (the game
// never issues O, but players type it), and prefixes a single '#'.
//
// Normalization is idempotent and side-effect-free, so it is safe to apply
// to already-canonical tags before every lookup or request.
//
//	NormalizeTag(" #abc123 ") // "#ABC123"
//	NormalizeTag("po-89")     // "#P089"
func NormalizeTag(raw string) string {
	var sb strings.Builder
	sb.Grow(len(raw) + 1)
	sb.WriteByte('#')

	for _, r := range strings.ToUpper(raw) {
		switch {
		case r == 'O':
			sb.WriteByte('0')
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// IsValidTag reports whether raw normalizes to a plausible in-game tag:
// non-empty and drawn entirely from the alphabet the game issues. It is an
// advisory check; the API is the final authority.
func IsValidTag(raw string) bool {
	tag := NormalizeTag(raw)
	if len(tag) < 2 {
		return false
	}
	for _, r := range tag[1:] {
		if !strings.ContainsRune(tagAlphabet, r) {
			return false
		}
	}
	return true
}
