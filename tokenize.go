package dupfinder

import (
	"strings"
	"unicode"
)

type runeClass int

const (
	classSpace runeClass = iota
	classWord
	classPunct
)

func classify(r rune) runeClass {
	switch {
	case isWordRune(r) || r == '_':
		return classWord
	case unicode.IsSpace(r):
		return classSpace
	default:
		return classPunct
	}
}

// Tokenize splits text into word and punctuation tokens. A token is a
// maximal run of word runes (letters, numbers, underscore) or a maximal run
// of punctuation runes; whitespace only separates. Order and repeats are
// kept. On normalized text the result is the whitespace-delimited words.
func Tokenize(text string) []string {
	var (
		tokens  []string
		current strings.Builder
		class   = classSpace
	)
	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}
	for _, r := range text {
		c := classify(r)
		if c != class {
			flush()
			class = c
		}
		if c != classSpace {
			current.WriteRune(r)
		}
	}
	flush()
	return tokens
}

// Distinct returns the distinct tokens in order of first appearance.
func Distinct(tokens []string) []string {
	seen := make(map[string]struct{}, len(tokens))
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
