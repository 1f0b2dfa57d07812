package compare

import (
	"regexp"
	"strings"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// Normalize canonicalizes text for matching: lowercase, trimmed, en-dashes
// replaced with hyphens, whitespace runs collapsed to single spaces, and
// unit spellings coalesced to their bare suffix form ("10 watt" and "10 w"
// both become "10w"). Applying Normalize to its own output is a no-op.
func Normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "–", "-")
	s = whitespaceRe.ReplaceAllString(s, " ")

	// Unit normalisation. " watt" must collapse before " w" so that
	// "10 watt" becomes "10w" rather than "10watt".
	s = strings.ReplaceAll(s, " watt", "w")
	s = strings.ReplaceAll(s, " w", "w")
	s = strings.ReplaceAll(s, " lm", "lm")
	s = strings.ReplaceAll(s, " k", "k")

	return s
}
