package dupfinder

import (
	"context"
	"errors"
	"fmt"
)

// GroupByLemma runs the analyzer once over the raw text and groups the
// surface forms it reports by lemma. Each (form, lemma) pair puts form
// into the lemma's bucket, and the lemma is added to its own bucket too,
// so a lemma written verbatim next to one of its inflected forms lands in
// the same group. Ambiguous forms are placed in every candidate bucket.
//
// Entries that cannot be parsed are skipped and kept in Skipped. Any
// analyzer failure aborts grouping with an error wrapping
// ErrAnalyzerUnavailable.
func GroupByLemma(ctx context.Context, a Analyzer, text string) (*LemmaMap, error) {
	if a == nil {
		return nil, fmt.Errorf("%w: no analyzer configured", ErrAnalyzerUnavailable)
	}
	entries, err := a.Analyze(ctx, text)
	if err != nil {
		if errors.Is(err, ErrAnalyzerUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrAnalyzerUnavailable, err)
	}

	m := newLemmaMap()
	for _, in := range entries {
		form, lemma, err := ParseInterpretation(in)
		if err != nil {
			m.Skipped = append(m.Skipped, in)
			continue
		}
		addToSet(m.Forms, form, lemma)
	}
	for form, lemmas := range m.Forms {
		for lemma := range lemmas {
			addToSet(m.Lemmas, lemma, form)
			addToSet(m.Lemmas, lemma, lemma)
		}
	}
	return m, nil
}
