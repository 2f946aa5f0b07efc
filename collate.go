package dupfinder

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// collationKey is the canonical sort key of a word: its full upper-case
// form, then its case-swapped form. Words equal ignoring case are ordered
// lower-case variants first.
type collationKey struct {
	upper   string
	swapped string
}

// keyer builds collation keys. cases.Caser is stateful, so a keyer must not
// be shared between goroutines.
type keyer struct {
	upper cases.Caser
	lower cases.Caser
}

func newKeyer() *keyer {
	return &keyer{
		upper: cases.Upper(language.Und),
		lower: cases.Lower(language.Und),
	}
}

func (k *keyer) key(s string) collationKey {
	return collationKey{upper: k.upper.String(s), swapped: k.swapCase(s)}
}

// swapCase upper-cases lower-case runes and lower-cases upper-case runes
// using full case mapping (ß becomes SS); other runes are unchanged.
func (k *keyer) swapCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			b.WriteString(k.lower.String(string(r)))
		case unicode.IsLower(r):
			b.WriteString(k.upper.String(string(r)))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func (a collationKey) less(b collationKey) bool {
	if a.upper != b.upper {
		return a.upper < b.upper
	}
	return a.swapped < b.swapped
}

// Less reports whether a sorts before b in canonical order: by upper-cased
// form, then by case-swapped form, both compared by code point. Identical
// keys fall back to the raw strings so the order is total.
func Less(a, b string) bool {
	k := newKeyer()
	ka, kb := k.key(a), k.key(b)
	if ka != kb {
		return ka.less(kb)
	}
	return a < b
}

// SortWords sorts words in place in canonical order.
func SortWords(words []string) {
	k := newKeyer()
	keys := make(map[string]collationKey, len(words))
	for _, w := range words {
		if _, ok := keys[w]; !ok {
			keys[w] = k.key(w)
		}
	}
	sort.SliceStable(words, func(i, j int) bool {
		ki, kj := keys[words[i]], keys[words[j]]
		if ki != kj {
			return ki.less(kj)
		}
		return words[i] < words[j]
	})
}
