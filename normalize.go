package dupfinder

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// isWordRune reports whether r is a letter or a number in any script.
// Underscores, hyphens, marks and punctuation are not word runes.
func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r)
}

// blankNonWord maps every rune that is not a letter or number to a space.
func blankNonWord(r rune) rune {
	if isWordRune(r) {
		return r
	}
	return ' '
}

// Normalize replaces every rune of text that is not a letter or a number
// with a single space. Punctuation, underscores, hyphens and whitespace are
// all blanked, one space per rune, so the rune count is preserved.
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	out, _, err := transform.String(runes.Map(blankNonWord), text)
	if err != nil {
		return strings.Map(blankNonWord, text)
	}
	return out
}
