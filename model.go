package dupfinder

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Document is a text submitted for analysis. It is immutable once built.
type Document struct {
	text string
}

// NewDocument validates text and returns it as a Document.
// Blank text is rejected with ErrEmptyInput. The stored text is in
// Unicode NFC so that the analyzer and the tokenizer see the same
// composition of accented letters.
func NewDocument(text string) (Document, error) {
	if strings.TrimSpace(text) == "" {
		return Document{}, ErrEmptyInput
	}
	return Document{text: norm.NFC.String(text)}, nil
}

// Text returns the document text.
func (d Document) Text() string {
	return d.text
}

// LemmaMap groups the surface forms of one document by lemma.
type LemmaMap struct {
	// Lemmas maps lemma → surface forms attested for it. Every bucket
	// also contains the lemma itself.
	Lemmas map[string]map[string]struct{}
	// Forms maps surface form → candidate lemmas, as returned by the
	// analyzer. Ambiguous forms have several lemmas.
	Forms map[string]map[string]struct{}
	// Skipped holds the analyzer entries that could not be parsed.
	Skipped []Interpretation
}

func newLemmaMap() *LemmaMap {
	return &LemmaMap{
		Lemmas: make(map[string]map[string]struct{}),
		Forms:  make(map[string]map[string]struct{}),
	}
}

// Members returns the surface forms grouped under lemma, in canonical order.
func (m *LemmaMap) Members(lemma string) []string {
	return sortedSet(m.Lemmas[lemma])
}

// CandidateLemmas returns the lemmas the analyzer proposed for form,
// in canonical order.
func (m *LemmaMap) CandidateLemmas(form string) []string {
	return sortedSet(m.Forms[form])
}

func addToSet(sets map[string]map[string]struct{}, key, member string) {
	set, ok := sets[key]
	if !ok {
		set = make(map[string]struct{})
		sets[key] = set
	}
	set[member] = struct{}{}
}

func sortedSet(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	SortWords(out)
	return out
}
